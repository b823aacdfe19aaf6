// Command graph-agent is a minimal runner for the graph analytics agent: it
// wires configuration, the MCP execution backend, the completion backend and
// the schema cache together, then routes a single question.
//
//	graph-agent "Who are the most influential people?"
//	graph-agent -refresh-schema
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"github.com/neo4j/graph-agent/internal/agent"
	"github.com/neo4j/graph-agent/internal/config"
	"github.com/neo4j/graph-agent/internal/llm"
	"github.com/neo4j/graph-agent/internal/logger"
	"github.com/neo4j/graph-agent/internal/mcpclient"
	"github.com/neo4j/graph-agent/internal/schema"
	"github.com/neo4j/graph-agent/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: graph-agent <question> | graph-agent -refresh-schema")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logSvc := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx := context.Background()

	if os.Args[1] == "-refresh-schema" {
		if err := refreshSchema(ctx, cfg); err != nil {
			log.Fatalf("Failed to refresh schema: %v", err)
		}
		fmt.Printf("Schema cache updated: %s\n", cfg.SchemaCachePath)
		return
	}
	question := os.Args[1]

	var completion agent.CompletionClient
	if cfg.UseSemanticSelector {
		completion, err = llm.New(cfg.Model, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey)
		if err != nil {
			log.Fatalf("Failed to create completion client: %v", err)
		}
	}

	a, err := agent.New(agent.Options{
		AllowedToolNames:    cfg.AllowedToolNames,
		IdentifierProperty:  cfg.IdentifierProperty,
		UseSemanticSelector: cfg.UseSemanticSelector,
		Model:               cfg.Model,
		Completion:          completion,
		Schema:              schema.NewFileCache(cfg.SchemaCachePath),
		Log:                 logSvc,
		NewExecutionClient: func(ctx context.Context) (agent.ExecutionClient, error) {
			return mcpclient.NewStdioClient(ctx, cfg.MCPServerCommand, os.Environ(), cfg.MCPServerArgs...)
		},
	})
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Warning: failed to close agent: %v", err)
		}
	}()

	events := setupTelemetry(cfg)

	result, err := a.Run(ctx, question, "", nil)
	if err != nil {
		events.EmitEvent(telemetry.NewRoutingErrorEvent(errorKind(err)))
		log.Fatalf("Routing failed: %v", err)
	}
	events.EmitEvent(telemetry.NewRoutingEvent(result.ToolName, selectionMode(cfg)))

	fmt.Printf("Tool: %s\n", result.ToolName)
	fmt.Printf("Summary: %s\n", result.Summary)
}

// refreshSchema fetches the schema text from Neo4j and stores it in the file
// cache the agent reads from.
func refreshSchema(ctx context.Context, cfg *config.Config) error {
	if cfg.URI == "" || cfg.Username == "" || cfg.Password == "" {
		return fmt.Errorf("NEO4J_URI, NEO4J_USERNAME and NEO4J_PASSWORD must be set to refresh the schema")
	}

	driver, err := neo4j.NewDriver(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	defer func() {
		if err := driver.Close(ctx); err != nil {
			log.Printf("Warning: failed to close driver: %v", err)
		}
	}()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("failed to verify connectivity: %w", err)
	}

	text, err := schema.NewFetcher(driver, cfg.Database).FetchSchema(ctx)
	if err != nil {
		return err
	}
	return schema.NewFileCache(cfg.SchemaCachePath).Store(text)
}

func setupTelemetry(cfg *config.Config) *telemetry.Service {
	if !cfg.Telemetry {
		return nil
	}
	events, err := telemetry.New(
		config.GetEnv("GRAPH_AGENT_TELEMETRY_TOKEN"),
		config.GetEnvWithDefault("GRAPH_AGENT_TELEMETRY_ENDPOINT", "https://api.mixpanel.com"),
	)
	if err != nil {
		log.Printf("Warning: telemetry disabled: %v", err)
		return nil
	}
	events.Enable()
	return events
}

func selectionMode(cfg *config.Config) string {
	if cfg.UseSemanticSelector {
		return "semantic"
	}
	return "keyword"
}

func errorKind(err error) string {
	var execErr *agent.ExecutionError
	switch {
	case errors.Is(err, agent.ErrNoSelection):
		return "selection"
	case errors.Is(err, agent.ErrUnknownTool):
		return "unknown-tool"
	case errors.As(err, &execErr):
		return "execution"
	default:
		return "other"
	}
}
