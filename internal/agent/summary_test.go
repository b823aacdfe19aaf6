package agent

import (
	"strings"
	"testing"
)

func TestSummarizeRankings(t *testing.T) {
	t.Run("empty result sentinel", func(t *testing.T) {
		if got := SummarizeRankings(nil); got != "No influential nodes found." {
			t.Errorf("Expected no-results message, got %q", got)
		}
	})

	t.Run("formats top entries with scores", func(t *testing.T) {
		content := []ContentItem{{JSON: []any{
			map[string]any{"name": "Alice", "score": 0.9},
			map[string]any{"nodeName": "Bob", "articleRank": 0.7},
		}}}

		got := SummarizeRankings(content)
		if !strings.Contains(got, "Alice") || !strings.Contains(got, "0.9") {
			t.Errorf("Expected Alice with score 0.9, got %q", got)
		}
		if !strings.Contains(got, "Bob (score=0.7)") {
			t.Errorf("Expected nodeName/articleRank fallbacks, got %q", got)
		}
	})

	t.Run("limits to five entries", func(t *testing.T) {
		rows := make([]any, 8)
		for i := range rows {
			rows[i] = map[string]any{"name": "n", "score": i}
		}
		got := SummarizeRankings([]ContentItem{{JSON: rows}})
		if count := strings.Count(got, "score="); count != 5 {
			t.Errorf("Expected 5 entries, got %d: %q", count, got)
		}
	})

	t.Run("degrades to text when the payload is not a list", func(t *testing.T) {
		got := SummarizeRankings([]ContentItem{{Text: "ranking done"}})
		if got != "ranking done" {
			t.Errorf("Expected text passthrough, got %q", got)
		}
		got = SummarizeRankings([]ContentItem{{}})
		if got != "Influence ranking computed." {
			t.Errorf("Expected completion message, got %q", got)
		}
	})
}

func TestSummarizeCommunities(t *testing.T) {
	t.Run("empty result sentinel", func(t *testing.T) {
		if got := SummarizeCommunities(nil); got != "No communities detected." {
			t.Errorf("Expected no-results message, got %q", got)
		}
	})

	t.Run("reports headline statistics", func(t *testing.T) {
		content := []ContentItem{{JSON: map[string]any{
			"communityCount":       12,
			"largestCommunitySize": 40,
			"modularity":           0.82,
		}}}

		got := SummarizeCommunities(content)
		if !strings.Contains(got, "Detected 12 communities") {
			t.Errorf("Expected community count, got %q", got)
		}
		if !strings.Contains(got, "Largest size: 40") || !strings.Contains(got, "modularity: 0.82") {
			t.Errorf("Expected size and modularity, got %q", got)
		}
	})

	t.Run("missing count degrades to multiple", func(t *testing.T) {
		got := SummarizeCommunities([]ContentItem{{JSON: map[string]any{"modularity": 0.5}}})
		if !strings.Contains(got, "Detected multiple communities") {
			t.Errorf("Expected 'multiple' placeholder, got %q", got)
		}
	})

	t.Run("degrades to text or completion message", func(t *testing.T) {
		if got := SummarizeCommunities([]ContentItem{{Text: "done"}}); got != "done" {
			t.Errorf("Expected text passthrough, got %q", got)
		}
		if got := SummarizeCommunities([]ContentItem{{}}); got != "Leiden algorithm completed." {
			t.Errorf("Expected completion message, got %q", got)
		}
	})
}

func TestSummarizeBridges(t *testing.T) {
	t.Run("empty result sentinel", func(t *testing.T) {
		if got := SummarizeBridges(nil); got != "No bridge edges found." {
			t.Errorf("Expected no-results message, got %q", got)
		}
	})

	t.Run("reports count and example pairs", func(t *testing.T) {
		bridges := make([]any, 7)
		for i := range bridges {
			bridges[i] = map[string]any{"source": "a", "target": "b"}
		}

		got := SummarizeBridges([]ContentItem{{JSON: bridges}})
		if !strings.Contains(got, "Found 7 bridge edges") {
			t.Errorf("Expected total count, got %q", got)
		}
		if count := strings.Count(got, "a->b"); count != 5 {
			t.Errorf("Expected 5 example pairs, got %d: %q", count, got)
		}
	})

	t.Run("degrades to text or completion message", func(t *testing.T) {
		if got := SummarizeBridges([]ContentItem{{Text: "done"}}); got != "done" {
			t.Errorf("Expected text passthrough, got %q", got)
		}
		if got := SummarizeBridges([]ContentItem{{}}); got != "Bridge detection completed." {
			t.Errorf("Expected completion message, got %q", got)
		}
	})
}

func TestSummarizeTextResult(t *testing.T) {
	if got := SummarizeTextResult(nil); got != "No data returned." {
		t.Errorf("Expected no-results message, got %q", got)
	}
	if got := SummarizeTextResult([]ContentItem{{Text: "42 nodes"}}); got != "42 nodes" {
		t.Errorf("Expected text passthrough, got %q", got)
	}
	got := SummarizeTextResult([]ContentItem{{JSON: map[string]any{"count": 42}}})
	if !strings.Contains(got, "42") {
		t.Errorf("Expected JSON rendering of first item, got %q", got)
	}
}

func TestBuildSummary(t *testing.T) {
	t.Run("empty-result sentinels for every built-in tool", func(t *testing.T) {
		want := map[string]string{
			"article_rank": "No influential nodes found.",
			"leiden":       "No communities detected.",
			"bridges":      "No bridge edges found.",
			"count_nodes":  "No data returned.",
		}
		for _, cfg := range DefaultToolConfigs() {
			if got := buildSummary(cfg, nil); got != want[cfg.Name] {
				t.Errorf("Tool %s: expected %q, got %q", cfg.Name, want[cfg.Name], got)
			}
		}
	})

	t.Run("panicking summarizer falls back to the generic path", func(t *testing.T) {
		cfg := ToolConfig{
			Name:      "panicky",
			Summarize: func([]ContentItem) string { panic("boom") },
		}

		got := buildSummary(cfg, []ContentItem{{Text: "raw text"}})
		if got != "raw text" {
			t.Errorf("Expected generic fallback, got %q", got)
		}
	})

	t.Run("generic summary shapes", func(t *testing.T) {
		cfg := ToolConfig{Name: "plain"}

		if got := buildSummary(cfg, nil); got != "Tool 'plain' returned no results." {
			t.Errorf("Expected no-results message, got %q", got)
		}
		if got := buildSummary(cfg, []ContentItem{{Text: "hello"}}); got != "hello" {
			t.Errorf("Expected single-text passthrough, got %q", got)
		}

		multi := []ContentItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}
		got := buildSummary(cfg, multi)
		if !strings.Contains(got, "returned 3 rows") || !strings.Contains(got, "First entry") {
			t.Errorf("Expected row count with first entry, got %q", got)
		}
	})
}

func TestRenderInputSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]any
		want   string
	}{
		{
			name: "object schema lists sorted properties",
			schema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"topK": 1, "limit": 2},
			},
			want: "object with properties [limit, topK]",
		},
		{
			name:   "falls back to the description",
			schema: map[string]any{"description": "free-form args"},
			want:   "free-form args",
		},
		{
			name:   "nil schema renders empty",
			schema: nil,
			want:   "",
		},
		{
			name:   "object without properties renders empty",
			schema: map[string]any{"type": "object"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderInputSchema(tt.schema); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
