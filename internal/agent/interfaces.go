package agent

//go:generate mockgen -destination=mocks/mock_agent.go -package=mocks github.com/neo4j/graph-agent/internal/agent ExecutionClient,CompletionClient,SchemaProvider

import (
	"context"
)

// ToolInfo is the live tool metadata reported by the execution backend.
type ToolInfo struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// ContentItem is one entry of a tool result. A tool may return plain text,
// a structured payload, or both.
type ContentItem struct {
	Text string `json:"text,omitempty"`
	JSON any    `json:"json,omitempty"`
}

// ExecutionClient is the execution backend for graph analytics tools.
// Implementations must tolerate concurrent use once constructed.
type ExecutionClient interface {
	// ListTools returns the tools exposed by the backend.
	ListTools(ctx context.Context) ([]ToolInfo, error)

	// CallTool executes a tool by name and returns its result content.
	CallTool(ctx context.Context, name string, args map[string]any) ([]ContentItem, error)

	// Close releases backend resources.
	Close() error
}

// CompletionOptions control a single completion request.
type CompletionOptions struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	JSONResponse bool // request a structured JSON object response
}

// CompletionClient is the language-model completion backend.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// SchemaProvider supplies the cached textual graph schema.
// An empty string means no schema is available; the provider never refreshes.
type SchemaProvider interface {
	LoadCachedSchema() string
}
