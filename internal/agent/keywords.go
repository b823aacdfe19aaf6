package agent

import (
	"strings"
)

// MatchKeyword returns the first tool whose keyword list matches the
// question. Matching is case-insensitive; a keyword matches when it appears
// as a substring of the question, or when any whitespace-delimited token of
// the question contains it or starts with it (so "community" matches
// "communities").
//
// Ties between tools sharing an overlapping keyword are resolved by config
// order, not by specificity. This is a known limitation of the keyword
// fallback; the semantic selector is the primary strategy.
func MatchKeyword(configs []ToolConfig, question string) (tool, keyword string, ok bool) {
	normalized := strings.ToLower(question)
	words := strings.Fields(normalized)

	for _, cfg := range configs {
		for _, kw := range cfg.Keywords {
			kwLower := strings.ToLower(kw)
			if strings.Contains(normalized, kwLower) {
				return cfg.Name, kw, true
			}
			for _, word := range words {
				if strings.Contains(word, kwLower) || strings.HasPrefix(word, kwLower) {
					return cfg.Name, kw, true
				}
			}
		}
	}
	return "", "", false
}
