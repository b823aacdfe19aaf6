package agent

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// SchemaNotAvailable is the sentinel text used when no schema was cached.
	SchemaNotAvailable = "Graph schema not available."

	// SchemaSummaryNotAvailable is returned when the input contains none of
	// the recognized schema sections.
	SchemaSummaryNotAvailable = "Graph schema summary not available."

	maxDigestRelationships = 10
)

// SummarizeSchema compresses a full textual graph schema into a compact
// digest: sorted unique node labels, sorted unique relationship types, and up
// to ten example relationship patterns. The input is expected in the
// three-section format
//
//	Node properties:
//	:`Label` {prop: TYPE, ...}
//	Relationship properties:
//	:`TYPE` {prop: TYPE, ...}
//	The relationships:
//	(:Label)-[:TYPE]->(:Label)
//
// Empty input and the not-available sentinel pass through unchanged. Input
// with no recognizable section maps to SchemaSummaryNotAvailable, so applying
// the function to its own output is safe.
func SummarizeSchema(fullSchema string) string {
	if fullSchema == "" || fullSchema == SchemaNotAvailable {
		return fullSchema
	}

	var (
		nodeLabels    []string
		relTypes      []string
		relationships []string

		inNodeProps, inRelProps, inRels bool
	)

	for _, line := range strings.Split(fullSchema, "\n") {
		switch {
		case strings.Contains(line, "Node properties:"):
			inNodeProps, inRelProps, inRels = true, false, false
			continue
		case strings.Contains(line, "Relationship properties:"):
			inNodeProps, inRelProps, inRels = false, true, false
			continue
		case strings.Contains(line, "The relationships:"):
			inNodeProps, inRelProps, inRels = false, false, true
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case inNodeProps && strings.HasPrefix(trimmed, ":`"):
			if label := backtickedName(trimmed); label != "" {
				nodeLabels = append(nodeLabels, label)
			}
		case inRelProps && strings.HasPrefix(trimmed, ":`"):
			if relType := backtickedName(trimmed); relType != "" {
				relTypes = append(relTypes, relType)
			}
		case inRels && strings.Contains(line, ")-[:"):
			relationships = append(relationships, trimmed)
		}
	}

	var parts []string
	if len(nodeLabels) > 0 {
		parts = append(parts, fmt.Sprintf("Node labels: %s", strings.Join(sortedUnique(nodeLabels), ", ")))
	}
	if len(relTypes) > 0 {
		parts = append(parts, fmt.Sprintf("Relationship types: %s", strings.Join(sortedUnique(relTypes), ", ")))
	}
	if len(relationships) > 0 {
		if len(relationships) > maxDigestRelationships {
			relationships = relationships[:maxDigestRelationships]
		}
		parts = append(parts, "Key relationships:\n"+strings.Join(relationships, "\n"))
	}

	if len(parts) == 0 {
		return SchemaSummaryNotAvailable
	}
	return strings.Join(parts, "\n")
}

// backtickedName extracts the name between the first pair of backticks, e.g.
// ":`Person` {name: STRING}" yields "Person".
func backtickedName(line string) string {
	segments := strings.Split(line, "`")
	if len(segments) < 2 {
		return ""
	}
	return segments[1]
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
