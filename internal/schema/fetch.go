package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

const (
	// nodePropsQuery collects the properties declared per node label.
	nodePropsQuery = `
		CALL apoc.meta.data()
		YIELD label, other, elementType, type, property
		WHERE NOT type = "RELATIONSHIP" AND elementType = "node"
		WITH label AS name, collect({property: property, type: type}) AS properties
		RETURN name, properties
		ORDER BY name
	`

	// relPropsQuery collects the properties declared per relationship type.
	relPropsQuery = `
		CALL apoc.meta.data()
		YIELD label, other, elementType, type, property
		WHERE NOT type = "RELATIONSHIP" AND elementType = "relationship"
		WITH label AS name, collect({property: property, type: type}) AS properties
		RETURN name, properties
		ORDER BY name
	`

	// relPatternsQuery collects the (start)-[type]->(end) patterns.
	relPatternsQuery = `
		CALL apoc.meta.data()
		YIELD label, other, elementType, type, property
		WHERE type = "RELATIONSHIP" AND elementType = "node"
		UNWIND other AS otherLabel
		RETURN label AS start, property AS relType, toString(otherLabel) AS end
		ORDER BY start, relType, end
	`
)

// Fetcher reads the graph schema from Neo4j via APOC and renders it in the
// three-section textual format the digest parser consumes:
//
//	Node properties:
//	:`Label` {prop: TYPE, ...}
//	Relationship properties:
//	:`TYPE` {prop: TYPE, ...}
//	The relationships:
//	(:Label)-[:TYPE]->(:Label)
type Fetcher struct {
	driver   neo4j.Driver
	database string
}

// NewFetcher creates a schema fetcher bound to a database.
func NewFetcher(driver neo4j.Driver, database string) *Fetcher {
	return &Fetcher{driver: driver, database: database}
}

// FetchSchema queries Neo4j and renders the schema text. Requires the APOC
// plugin on the server.
func (f *Fetcher) FetchSchema(ctx context.Context) (string, error) {
	nodeProps, err := f.propertyLines(ctx, nodePropsQuery)
	if err != nil {
		return "", fmt.Errorf("failed to fetch node properties: %w", err)
	}
	relProps, err := f.propertyLines(ctx, relPropsQuery)
	if err != nil {
		return "", fmt.Errorf("failed to fetch relationship properties: %w", err)
	}
	patterns, err := f.patternLines(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch relationship patterns: %w", err)
	}

	var b strings.Builder
	b.WriteString("Node properties:\n")
	for _, line := range nodeProps {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("Relationship properties:\n")
	for _, line := range relProps {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("The relationships:\n")
	for _, line := range patterns {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// propertyLines renders one ":`Name` {prop: TYPE, ...}" line per record.
func (f *Fetcher) propertyLines(ctx context.Context, query string) ([]string, error) {
	res, err := neo4j.ExecuteQuery(ctx, f.driver, query, nil, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(f.database), neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(res.Records))
	for _, record := range res.Records {
		row := record.AsMap()
		name, _ := row["name"].(string)
		if name == "" {
			continue
		}

		var props []string
		if collected, ok := row["properties"].([]any); ok {
			for _, p := range collected {
				entry, _ := p.(map[string]any)
				property, _ := entry["property"].(string)
				propType, _ := entry["type"].(string)
				if property != "" {
					props = append(props, fmt.Sprintf("%s: %s", property, propType))
				}
			}
		}
		lines = append(lines, fmt.Sprintf(":`%s` {%s}", name, strings.Join(props, ", ")))
	}
	return lines, nil
}

// patternLines renders one "(:Start)-[:TYPE]->(:End)" line per record.
func (f *Fetcher) patternLines(ctx context.Context) ([]string, error) {
	res, err := neo4j.ExecuteQuery(ctx, f.driver, relPatternsQuery, nil, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(f.database), neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(res.Records))
	for _, record := range res.Records {
		row := record.AsMap()
		start, _ := row["start"].(string)
		relType, _ := row["relType"].(string)
		end, _ := row["end"].(string)
		if start == "" || relType == "" || end == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("(:%s)-[:%s]->(:%s)", start, relType, end))
	}
	return lines, nil
}
