// Package mcpclient adapts a stdio MCP client to the agent's execution
// backend contract.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/neo4j/graph-agent/internal/agent"
)

const (
	clientName    = "graph-agent"
	clientVersion = "0.1.0"
)

// Client wraps a stdio MCP client. Safe for concurrent use once constructed.
type Client struct {
	c *client.Client
}

// NewStdioClient launches the MCP server as a subprocess, starts the client
// transport and performs the initialize handshake.
func NewStdioClient(ctx context.Context, command string, env []string, args ...string) (*Client, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}
	if _, err := c.Initialize(ctx, initRequest); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	return &Client{c: c}, nil
}

// ListTools returns the tools exposed by the server.
func (cl *Client) ListTools(ctx context.Context) ([]agent.ToolInfo, error) {
	result, err := cl.c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	infos := make([]agent.ToolInfo, 0, len(result.Tools))
	for _, tool := range result.Tools {
		infos = append(infos, agent.ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: inputSchemaToMap(tool.InputSchema),
		})
	}
	return infos, nil
}

// CallTool executes a tool and converts its result content. A result flagged
// as an error by the server is surfaced as an error here.
func (cl *Client) CallTool(ctx context.Context, name string, args map[string]any) ([]agent.ContentItem, error) {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := cl.c.CallTool(ctx, request)
	if err != nil {
		return nil, err
	}
	if result.IsError {
		return nil, fmt.Errorf("tool returned an error: %s", firstText(result))
	}

	return resultToContentItems(result), nil
}

// Close shuts down the client and the server subprocess.
func (cl *Client) Close() error {
	return cl.c.Close()
}

// resultToContentItems flattens an MCP tool result into content items. The
// structured payload, when present, becomes the first item so summarizers
// can reach it without scanning.
func resultToContentItems(result *mcp.CallToolResult) []agent.ContentItem {
	var items []agent.ContentItem
	if result.StructuredContent != nil {
		items = append(items, agent.ContentItem{JSON: result.StructuredContent})
	}
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			items = append(items, agent.ContentItem{Text: text.Text})
		}
	}
	return items
}

func firstText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			return text.Text
		}
	}
	return "no error details provided"
}

// inputSchemaToMap converts the typed tool input schema to the generic
// mapping shape the selection prompt renderer expects.
func inputSchemaToMap(schema mcp.ToolInputSchema) map[string]any {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
