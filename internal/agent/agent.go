// Package agent routes natural-language questions to graph analytics tools:
// it selects a tool (semantically via a language model, or by keyword
// fallback), synthesizes the argument object, delegates execution to an MCP
// backend, and reduces the raw result to a short summary.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/graph-agent/internal/logger"
)

// DefaultIdentifierProperty is the node property used to identify nodes in
// results when a tool does not define one itself.
const DefaultIdentifierProperty = "name"

// AnalyticsResult is the unit of work product: the resolved tool, the exact
// arguments sent, the raw result content, and the summary. Immutable once
// returned.
type AnalyticsResult struct {
	ToolName  string
	Inputs    map[string]any
	RawResult []ContentItem
	Summary   string
}

// Options configure an Agent.
type Options struct {
	// Tools is the tool registry; nil selects the built-in defaults.
	Tools []ToolConfig

	// AllowedToolNames restricts the registry and the metadata fetch to the
	// listed names when non-empty.
	AllowedToolNames []string

	// IdentifierProperty is injected as nodeIdentifierProperty when a tool's
	// defaults do not define one. Empty selects DefaultIdentifierProperty.
	IdentifierProperty string

	// UseSemanticSelector routes questions through the language model. When
	// false, the keyword matcher is used instead. Semantic mode has no
	// keyword fallback: a null answer fails the call.
	UseSemanticSelector bool

	// Model is the completion model used for semantic selection.
	Model string

	// NewExecutionClient lazily constructs the execution backend on first
	// use. Required.
	NewExecutionClient func(ctx context.Context) (ExecutionClient, error)

	// Completion is the language-model backend; required only when
	// UseSemanticSelector is set.
	Completion CompletionClient

	// Schema supplies the cached graph schema for selection prompts. May be
	// nil, in which case prompts carry the not-available sentinel.
	Schema SchemaProvider

	Log *logger.Service
}

// Agent routes questions to graph analytics tools. Safe for concurrent use.
type Agent struct {
	catalog            *Catalog
	allowed            []string
	identifierProperty string
	useSemantic        bool
	model              string

	completion CompletionClient
	schema     SchemaProvider
	log        *logger.Service

	newClient func(ctx context.Context) (ExecutionClient, error)

	clientMu sync.Mutex
	client   ExecutionClient

	metaMu         sync.Mutex
	metadata       map[string]ToolInfo
	metadataLoaded bool
}

// New validates the options and builds an Agent. It fails when the effective
// tool registry would be empty, when no execution-client factory was given,
// or when semantic selection is requested without a completion backend.
func New(opts Options) (*Agent, error) {
	catalog, err := NewCatalog(opts.Tools, opts.AllowedToolNames)
	if err != nil {
		return nil, err
	}
	if opts.NewExecutionClient == nil {
		return nil, fmt.Errorf("execution client factory is required")
	}
	if opts.UseSemanticSelector && opts.Completion == nil {
		return nil, fmt.Errorf("completion backend is required when the semantic selector is enabled")
	}

	identifier := opts.IdentifierProperty
	if identifier == "" {
		identifier = DefaultIdentifierProperty
	}
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}

	return &Agent{
		catalog:            catalog,
		allowed:            opts.AllowedToolNames,
		identifierProperty: identifier,
		useSemantic:        opts.UseSemanticSelector,
		model:              opts.Model,
		completion:         opts.Completion,
		schema:             opts.Schema,
		log:                log,
		newClient:          opts.NewExecutionClient,
	}, nil
}

// Tools returns the configured tools in registry order.
func (a *Agent) Tools() []ToolConfig {
	return a.catalog.Configs()
}

// Run executes the best-fit analytics tool for a question. A non-empty
// toolName skips selection; overrides are caller-supplied arguments and
// always win over selector hints and defaults.
func (a *Agent) Run(ctx context.Context, question, toolName string, overrides map[string]any) (*AnalyticsResult, error) {
	suggested := map[string]any{}

	if toolName == "" && a.useSemantic {
		if selection := a.selectTool(ctx, question); selection != nil {
			toolName = selection.Tool
			suggested = selection.Inputs
			a.log.Debug("semantic selector resolved tool", "tool", selection.Tool, "reason", selection.Reason)
		}
	}

	if toolName == "" {
		// Semantic mode deliberately has no keyword fallback: once it is
		// enabled, a null answer means the question is unresolvable.
		if a.useSemantic {
			return nil, fmt.Errorf("%w: the semantic selector did not find a suitable tool", ErrNoSelection)
		}
		matched, keyword, ok := MatchKeyword(a.catalog.Configs(), question)
		if !ok {
			return nil, fmt.Errorf("%w: no keyword matched", ErrNoSelection)
		}
		a.log.Info("keyword match found", "keyword", keyword, "tool", matched)
		toolName = matched
	}

	cfg, known := a.catalog.Get(toolName)
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, toolName)
	}

	inputs := a.prepareInputs(cfg, question, suggested, overrides)

	client, err := a.getClient(ctx)
	if err != nil {
		return nil, &ExecutionError{Tool: toolName, Err: err}
	}
	content, err := client.CallTool(ctx, toolName, inputs)
	if err != nil {
		return nil, &ExecutionError{Tool: toolName, Err: err}
	}

	return &AnalyticsResult{
		ToolName:  toolName,
		Inputs:    inputs,
		RawResult: content,
		Summary:   buildSummary(cfg, content),
	}, nil
}

// getClient returns the execution client, constructing it on first use. The
// mutex guards only the lazy initialization; the client itself must tolerate
// concurrent use once established.
func (a *Agent) getClient(ctx context.Context) (ExecutionClient, error) {
	a.clientMu.Lock()
	defer a.clientMu.Unlock()
	if a.client == nil {
		client, err := a.newClient(ctx)
		if err != nil {
			return nil, err
		}
		a.client = client
	}
	return a.client, nil
}

// Close tears down the execution client. A later Run reinitializes it lazily.
func (a *Agent) Close() error {
	a.clientMu.Lock()
	defer a.clientMu.Unlock()
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}
