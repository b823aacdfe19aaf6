package telemetry

// TrackEvent is the wire shape for a single analytics event.
type TrackEvent struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

// NewRoutingEvent records a completed routing decision.
func NewRoutingEvent(tool, selectionMode string) TrackEvent {
	return TrackEvent{
		Event: "GRAPH_AGENT_ROUTED",
		Properties: map[string]any{
			"tool":          tool,
			"selectionMode": selectionMode,
		},
	}
}

// NewRoutingErrorEvent records a failed routing attempt. kind is the error
// taxonomy bucket (selection, unknown-tool, execution).
func NewRoutingErrorEvent(kind string) TrackEvent {
	return TrackEvent{
		Event: "GRAPH_AGENT_ROUTING_ERROR",
		Properties: map[string]any{
			"kind": kind,
		},
	}
}
