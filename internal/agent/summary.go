package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// buildSummary reduces a tool result to one summary string. A dedicated
// summarizer that panics is treated as absent: summarization must never abort
// the call, the raw result stays available to the caller either way.
func buildSummary(cfg ToolConfig, content []ContentItem) string {
	if cfg.Summarize != nil {
		if summary, ok := safeSummarize(cfg.Summarize, content); ok {
			return summary
		}
	}
	return genericSummary(cfg.Name, content)
}

func safeSummarize(fn SummarizeFunc, content []ContentItem) (summary string, ok bool) {
	defer func() {
		if recover() != nil {
			summary, ok = "", false
		}
	}()
	return fn(content), true
}

// genericSummary is the fallback for tools without a dedicated summarizer.
func genericSummary(toolName string, content []ContentItem) string {
	if len(content) == 0 {
		return fmt.Sprintf("Tool '%s' returned no results.", toolName)
	}
	if len(content) == 1 && content[0].Text != "" {
		return content[0].Text
	}
	snippet, err := json.Marshal(content[:1])
	if err != nil {
		snippet = []byte("[]")
	}
	return fmt.Sprintf("Tool '%s' returned %d rows. First entry: %s", toolName, len(content), snippet)
}

// SummarizeRankings reduces an influence-ranking result to its top entries.
func SummarizeRankings(content []ContentItem) string {
	if len(content) == 0 {
		return "No influential nodes found."
	}

	if rows, ok := content[0].JSON.([]any); ok {
		if len(rows) > 5 {
			rows = rows[:5]
		}
		formatted := make([]string, 0, len(rows))
		for _, row := range rows {
			entry, _ := row.(map[string]any)
			name := firstField(entry, "nodeName", "name")
			if name == nil {
				name = "Unknown"
			}
			formatted = append(formatted, fmt.Sprintf("%v (score=%v)", name, firstField(entry, "score", "articleRank")))
		}
		return fmt.Sprintf("Top ranked nodes: %s", strings.Join(formatted, ", "))
	}

	if content[0].Text != "" {
		return content[0].Text
	}
	return "Influence ranking computed."
}

// SummarizeCommunities reduces a community-detection result to its headline
// statistics.
func SummarizeCommunities(content []ContentItem) string {
	if len(content) == 0 {
		return "No communities detected."
	}

	if data, ok := content[0].JSON.(map[string]any); ok {
		count := firstField(data, "communityCount")
		if count == nil {
			count = "multiple"
		}
		return fmt.Sprintf("Detected %v communities. Largest size: %v, modularity: %v",
			count, data["largestCommunitySize"], data["modularity"])
	}

	if content[0].Text != "" {
		return content[0].Text
	}
	return "Leiden algorithm completed."
}

// SummarizeBridges reduces a bridge-detection result to an edge count plus a
// few example source->target pairs.
func SummarizeBridges(content []ContentItem) string {
	if len(content) == 0 {
		return "No bridge edges found."
	}

	if bridges, ok := content[0].JSON.([]any); ok {
		shown := bridges
		if len(shown) > 5 {
			shown = shown[:5]
		}
		examples := make([]string, 0, len(shown))
		for _, b := range shown {
			row, _ := b.(map[string]any)
			examples = append(examples, fmt.Sprintf("%v->%v", row["source"], row["target"]))
		}
		return fmt.Sprintf("Found %d bridge edges. Examples: %s", len(bridges), strings.Join(examples, ", "))
	}

	if content[0].Text != "" {
		return content[0].Text
	}
	return "Bridge detection completed."
}

// SummarizeTextResult returns the text of the first item, or a JSON rendering
// of it when no text is present.
func SummarizeTextResult(content []ContentItem) string {
	if len(content) == 0 {
		return "No data returned."
	}
	if content[0].Text != "" {
		return content[0].Text
	}
	rendered, err := json.Marshal(content[0])
	if err != nil {
		return "Result summarization unavailable."
	}
	return string(rendered)
}

// firstField returns the first non-nil value among the given keys.
func firstField(entry map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := entry[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// renderInputSchema produces a one-line human-readable rendering of a JSON
// schema for use in the selection prompt.
func renderInputSchema(schema map[string]any) string {
	if schema == nil {
		return ""
	}
	if schema["type"] == "object" {
		if props, ok := schema["properties"].(map[string]any); ok && len(props) > 0 {
			names := make([]string, 0, len(props))
			for name := range props {
				names = append(names, name)
			}
			sort.Strings(names)
			return fmt.Sprintf("object with properties [%s]", strings.Join(names, ", "))
		}
	}
	if desc, ok := schema["description"].(string); ok {
		return desc
	}
	return ""
}
