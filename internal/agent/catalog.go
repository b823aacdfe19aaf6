package agent

import (
	"slices"
)

// SummarizeFunc reduces a tool's raw result content to a short text summary.
type SummarizeFunc func(content []ContentItem) string

// ToolConfig describes one graph analytics tool known to the agent.
type ToolConfig struct {
	Name        string
	Description string
	Keywords    []string
	Defaults    map[string]any
	// Summarize is the dedicated result summarizer; nil means the generic
	// summary applies.
	Summarize SummarizeFunc
}

// Catalog is the registry of configured tools. Iteration order is the
// insertion order of the configs it was built from; keyword matching depends
// on it.
type Catalog struct {
	order   []string
	configs map[string]ToolConfig
}

// NewCatalog builds the effective registry from the given configs (or the
// built-in defaults when configs is nil), filtered by the allow-list when it
// is non-empty. An empty effective registry is a construction error.
func NewCatalog(configs []ToolConfig, allowed []string) (*Catalog, error) {
	if configs == nil {
		configs = DefaultToolConfigs()
	}

	c := &Catalog{configs: make(map[string]ToolConfig, len(configs))}
	for _, cfg := range configs {
		if len(allowed) > 0 && !slices.Contains(allowed, cfg.Name) {
			continue
		}
		if _, exists := c.configs[cfg.Name]; exists {
			continue
		}
		c.order = append(c.order, cfg.Name)
		c.configs[cfg.Name] = cfg
	}

	if len(c.configs) == 0 {
		return nil, ErrNoToolsConfigured
	}
	return c, nil
}

// Get returns the config for a tool name.
func (c *Catalog) Get(name string) (ToolConfig, bool) {
	cfg, ok := c.configs[name]
	return cfg, ok
}

// Configs returns all configs in insertion order.
func (c *Catalog) Configs() []ToolConfig {
	out := make([]ToolConfig, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.configs[name])
	}
	return out
}

// Names returns all tool names in insertion order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

// DefaultToolConfigs returns the built-in graph analytics tools.
func DefaultToolConfigs() []ToolConfig {
	return []ToolConfig{
		{
			Name:        "article_rank",
			Description: "Ranks nodes by influence using ArticleRank (PageRank variant).",
			Keywords:    []string{"influencer", "important", "central", "rank", "pagerank"},
			Defaults:    map[string]any{"maxIterations": 20, "tolerance": 0.0001},
			Summarize:   SummarizeRankings,
		},
		{
			Name:        "leiden",
			Description: "Community detection using the Leiden algorithm.",
			Keywords:    []string{"community", "cluster", "group", "modularity"},
			Defaults:    map[string]any{"minCommunitySize": 5, "tolerance": 0.0001},
			Summarize:   SummarizeCommunities,
		},
		{
			Name:        "bridges",
			Description: "Detects bridge edges connecting graph components.",
			Keywords:    []string{"bridge", "bottleneck", "critical connection", "cut edge"},
			Defaults:    map[string]any{},
			Summarize:   SummarizeBridges,
		},
		{
			Name:        "count_nodes",
			Description: "Counts nodes per label.",
			Keywords:    []string{"count nodes", "size", "how many nodes", "dataset size"},
			Defaults:    map[string]any{},
			Summarize:   SummarizeTextResult,
		},
	}
}
