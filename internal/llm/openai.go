// Package llm implements the agent's completion backend on top of any
// OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/neo4j/graph-agent/internal/agent"
)

// Client calls an OpenAI-compatible completion API. Safe for concurrent use.
type Client struct {
	llm *openai.LLM
}

// New creates a completion client. baseURL and apiKey fall back to the
// OPENAI_BASE_URL and OPENAI_API_KEY environment variables when empty.
func New(model, baseURL, apiKey string) (*Client, error) {
	opts := []openai.Option{}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if apiKey != "" {
		opts = append(opts, openai.WithToken(apiKey))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// Complete runs a single-prompt completion with the given options.
func (c *Client) Complete(ctx context.Context, prompt string, opts agent.CompletionOptions) (string, error) {
	callOpts := []llms.CallOption{
		llms.WithTemperature(opts.Temperature),
	}
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if opts.JSONResponse {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	return llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, callOpts...)
}
