package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const (
	selectionTemperature = 0.0
	selectionMaxTokens   = 600
)

// Selection is the outcome of a successful semantic selection: a registry
// tool name plus optional argument hints. It is consumed immediately by the
// router and never persisted.
type Selection struct {
	Tool   string
	Inputs map[string]any
	Reason string
}

// toolMetadata returns the live tool metadata keyed by name, fetching it from
// the execution backend on first use. The result is cached for the lifetime
// of the agent; an empty fetch does not stick, so a later call retries.
func (a *Agent) toolMetadata(ctx context.Context) (map[string]ToolInfo, error) {
	a.metaMu.Lock()
	if a.metadataLoaded && len(a.metadata) > 0 {
		cached := a.metadata
		a.metaMu.Unlock()
		return cached, nil
	}
	a.metaMu.Unlock()

	client, err := a.getClient(ctx)
	if err != nil {
		return nil, err
	}
	tools, err := client.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]ToolInfo)
	for _, tool := range tools {
		if tool.Name == "" {
			continue
		}
		if len(a.allowed) > 0 && !slices.Contains(a.allowed, tool.Name) {
			continue
		}
		if _, known := a.catalog.Get(tool.Name); known {
			metadata[tool.Name] = tool
		}
	}

	a.metaMu.Lock()
	defer a.metaMu.Unlock()
	if len(metadata) > 0 {
		a.metadata = metadata
		a.metadataLoaded = true
	}
	return a.metadata, nil
}

// selectTool asks the language model to pick a tool and argument hints for
// the question. A nil Selection means "no selection": parse failures, empty
// completions, backend errors, and unknown tool names all degrade to it
// rather than failing the call.
func (a *Agent) selectTool(ctx context.Context, question string) *Selection {
	if a.model == "" {
		a.log.Debug("model not set, skipping semantic tool selection")
		return nil
	}

	metadata, err := a.toolMetadata(ctx)
	if err != nil {
		a.log.Warn("failed to load tool metadata", "error", err)
		return nil
	}
	if len(metadata) == 0 {
		a.log.Warn("no tool metadata available for semantic selection")
		return nil
	}

	prompt := a.buildSelectionPrompt(question, metadata)

	completion, err := a.completion.Complete(ctx, prompt, CompletionOptions{
		Model:        a.model,
		Temperature:  selectionTemperature,
		MaxTokens:    selectionMaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		a.log.Warn("completion with JSON response format failed, retrying without it", "error", err)
		completion, err = a.completion.Complete(ctx, prompt, CompletionOptions{
			Model:       a.model,
			Temperature: selectionTemperature,
			MaxTokens:   selectionMaxTokens,
		})
		if err != nil {
			a.log.Warn("semantic tool selection failed", "error", err)
			return nil
		}
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		a.log.Error("completion backend returned an empty response", "model", a.model, "tools", len(metadata))
		return nil
	}

	data, ok := parseSelectionResponse(completion)
	if !ok {
		a.log.Warn("tool selection response is not valid JSON", "response", truncate(completion, 200))
		return nil
	}

	toolName, _ := firstField(data, "tool", "tool_name").(string)
	if toolName == "" {
		a.log.Info("selector returned no tool", "question", question)
		return nil
	}
	if _, known := a.catalog.Get(toolName); !known {
		a.log.Warn("selector chose an unknown tool", "tool", toolName, "available", a.catalog.Names())
		return nil
	}

	inputs, _ := firstField(data, "inputs", "arguments").(map[string]any)
	if inputs == nil {
		inputs = map[string]any{}
	}
	reason, _ := data["reason"].(string)

	return &Selection{Tool: toolName, Inputs: inputs, Reason: reason}
}

// buildSelectionPrompt renders the routing prompt: the compact schema digest
// plus one numbered section per candidate tool with its server-reported
// description, input shape, and static defaults.
func (a *Agent) buildSelectionPrompt(question string, metadata map[string]ToolInfo) string {
	var sections []string
	idx := 0
	for _, name := range a.catalog.Names() {
		meta, ok := metadata[name]
		if !ok {
			continue
		}
		idx++

		cfg, _ := a.catalog.Get(name)
		description := meta.Description
		if description == "" {
			description = cfg.Description
		}

		lines := []string{
			fmt.Sprintf("%d. %s", idx, name),
			fmt.Sprintf("   Description: %s", description),
		}
		if rendered := renderInputSchema(meta.InputSchema); rendered != "" {
			lines = append(lines, fmt.Sprintf("   Input schema: %s", rendered))
		}
		if len(cfg.Defaults) > 0 {
			if defaults, err := json.Marshal(cfg.Defaults); err == nil {
				lines = append(lines, fmt.Sprintf("   Default args: %s", defaults))
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	schemaText := a.schemaDigest()

	return fmt.Sprintf(`You are a routing assistant that selects the best graph analytics tool for a question.

Graph Schema (for reference when constructing tool arguments):
%s

Available tools (only choose from these):
%s

For the given user question, choose the single most appropriate tool and optional JSON arguments.
When constructing arguments, use the graph schema above to determine valid node labels and relationship types.
If no tool applies, set tool to null.

Respond STRICTLY with JSON using this schema:
{
  "tool": "<tool-name or null>",
  "inputs": { "key": "value", ... },
  "reason": "<short explanation>"
}

Question: %s`, schemaText, strings.Join(sections, "\n"), question)
}

// schemaDigest loads the cached schema and compresses it for prompt use.
func (a *Agent) schemaDigest() string {
	full := SchemaNotAvailable
	if a.schema != nil {
		if cached := a.schema.LoadCachedSchema(); cached != "" {
			full = cached
		}
	}
	return SummarizeSchema(full)
}

// parseSelectionResponse parses the completion as a JSON object, stripping a
// surrounding fenced code block first when present.
func parseSelectionResponse(completion string) (map[string]any, bool) {
	if strings.HasPrefix(completion, "```") {
		lines := strings.Split(completion, "\n")
		if len(lines) > 2 {
			completion = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(completion), &data); err != nil {
		return nil, false
	}
	return data, true
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
