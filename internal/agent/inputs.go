package agent

import (
	"maps"
	"regexp"
	"strings"
)

// geoFilterPattern captures a run of capitalized words after "in ", e.g.
// "in Springfield". The run is greedy: "in Springfield and Lakeview" captures
// "Springfield and Lakeview" as a single term. That over-capture is part of
// the documented contract; see ExtractGeoFilters.
var geoFilterPattern = regexp.MustCompile(`in ([A-Z][A-Za-z0-9_ -]+)`)

// ExtractGeoFilters returns geographic filter terms mined from the question
// text: every "in <Capitalized words>" occurrence, trimmed of trailing
// spaces, commas and periods. The heuristic is deliberately naive and is kept
// isolated here so its exact behavior stays testable.
func ExtractGeoFilters(question string) []string {
	matches := geoFilterPattern.FindAllStringSubmatch(question, -1)
	if len(matches) == 0 {
		return nil
	}
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		terms = append(terms, strings.Trim(m[1], " ,."))
	}
	return terms
}

// geoDefaultLabels are the node labels assumed when a geographic filter was
// extracted but the tool did not specify labels itself.
var geoDefaultLabels = []string{"Area", "Municipality"}

// prepareInputs builds the final argument mapping for a tool call. Layers are
// applied lowest trust first, so each later layer overrides the ones before
// it: tool defaults, identifier-property injection, the geographic heuristic,
// selector-suggested inputs, and finally caller overrides.
func (a *Agent) prepareInputs(cfg ToolConfig, question string, suggested, overrides map[string]any) map[string]any {
	inputs := make(map[string]any, len(cfg.Defaults)+len(suggested)+len(overrides)+3)
	maps.Copy(inputs, cfg.Defaults)

	if _, ok := inputs["nodeIdentifierProperty"]; !ok {
		inputs["nodeIdentifierProperty"] = a.identifierProperty
	}

	if geos := ExtractGeoFilters(question); len(geos) > 0 {
		if _, ok := inputs["nodeLabels"]; !ok {
			inputs["nodeLabels"] = geoDefaultLabels
		}
		if _, ok := inputs["filterNames"]; !ok {
			inputs["filterNames"] = geos
		}
	}

	maps.Copy(inputs, suggested)
	maps.Copy(inputs, overrides)
	return inputs
}
