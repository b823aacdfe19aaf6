package agent

import (
	"errors"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	t.Run("nil configs select the built-in defaults", func(t *testing.T) {
		catalog, err := NewCatalog(nil, nil)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		names := catalog.Names()
		want := []string{"article_rank", "leiden", "bridges", "count_nodes"}
		if len(names) != len(want) {
			t.Fatalf("Expected %d tools, got %d: %v", len(want), len(names), names)
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("Expected tool %q at position %d, got %q", name, i, names[i])
			}
		}
	})

	t.Run("allow-list filters the registry", func(t *testing.T) {
		catalog, err := NewCatalog(nil, []string{"leiden", "bridges"})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if _, ok := catalog.Get("article_rank"); ok {
			t.Error("Expected article_rank to be filtered out")
		}
		if _, ok := catalog.Get("leiden"); !ok {
			t.Error("Expected leiden to be allowed")
		}
	})

	t.Run("empty effective registry is a construction error", func(t *testing.T) {
		_, err := NewCatalog(nil, []string{"no_such_tool"})
		if !errors.Is(err, ErrNoToolsConfigured) {
			t.Errorf("Expected ErrNoToolsConfigured, got: %v", err)
		}

		_, err = NewCatalog([]ToolConfig{}, nil)
		if !errors.Is(err, ErrNoToolsConfigured) {
			t.Errorf("Expected ErrNoToolsConfigured for empty configs, got: %v", err)
		}
	})

	t.Run("caller-supplied configs replace the defaults", func(t *testing.T) {
		catalog, err := NewCatalog([]ToolConfig{{Name: "custom", Keywords: []string{"x"}}}, nil)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if _, ok := catalog.Get("leiden"); ok {
			t.Error("Expected built-in tools to be absent when configs are supplied")
		}
		if _, ok := catalog.Get("custom"); !ok {
			t.Error("Expected the supplied tool to be registered")
		}
	})
}

func TestDefaultToolConfigs(t *testing.T) {
	configs := DefaultToolConfigs()

	defaults := map[string]map[string]any{}
	for _, cfg := range configs {
		defaults[cfg.Name] = cfg.Defaults
		if len(cfg.Keywords) == 0 {
			t.Errorf("Tool %q has no keywords", cfg.Name)
		}
		if cfg.Summarize == nil {
			t.Errorf("Tool %q has no dedicated summarizer", cfg.Name)
		}
	}

	if got := defaults["article_rank"]["maxIterations"]; got != 20 {
		t.Errorf("Expected article_rank maxIterations 20, got %v", got)
	}
	if got := defaults["leiden"]["minCommunitySize"]; got != 5 {
		t.Errorf("Expected leiden minCommunitySize 5, got %v", got)
	}
	if len(defaults["bridges"]) != 0 {
		t.Errorf("Expected bridges to have no defaults, got %v", defaults["bridges"])
	}
}
