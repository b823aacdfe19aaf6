package mcpclient

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestResultToContentItems(t *testing.T) {
	t.Run("structured payload comes first", func(t *testing.T) {
		result := &mcp.CallToolResult{
			StructuredContent: map[string]any{"communityCount": 3},
			Content: []mcp.Content{
				mcp.NewTextContent("summary text"),
			},
		}

		items := resultToContentItems(result)
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		payload, ok := items[0].JSON.(map[string]any)
		if !ok || payload["communityCount"] != 3 {
			t.Errorf("Expected the structured payload first, got %+v", items[0])
		}
		if items[1].Text != "summary text" {
			t.Errorf("Expected the text content second, got %+v", items[1])
		}
	})

	t.Run("text-only result", func(t *testing.T) {
		result := &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent("a"),
				mcp.NewTextContent("b"),
			},
		}

		items := resultToContentItems(result)
		if len(items) != 2 || items[0].Text != "a" || items[1].Text != "b" {
			t.Errorf("Expected both text items in order, got %+v", items)
		}
	})

	t.Run("empty result yields no items", func(t *testing.T) {
		if items := resultToContentItems(&mcp.CallToolResult{}); len(items) != 0 {
			t.Errorf("Expected no items, got %+v", items)
		}
	})
}

func TestFirstText(t *testing.T) {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent("boom")},
	}
	if got := firstText(result); got != "boom" {
		t.Errorf("Expected the first text content, got %q", got)
	}
	if got := firstText(&mcp.CallToolResult{}); got != "no error details provided" {
		t.Errorf("Expected the placeholder, got %q", got)
	}
}

func TestInputSchemaToMap(t *testing.T) {
	schema := mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"topK": map[string]any{"type": "integer"},
		},
	}

	out := inputSchemaToMap(schema)
	if out["type"] != "object" {
		t.Errorf("Expected the object type to survive, got %v", out)
	}
	props, ok := out["properties"].(map[string]any)
	if !ok {
		t.Fatalf("Expected a properties map, got %v", out)
	}
	if _, ok := props["topK"]; !ok {
		t.Errorf("Expected the topK property, got %v", props)
	}
}
