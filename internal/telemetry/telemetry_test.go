package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	urls       []string
	bodies     [][]byte
	statusCode int
	err        error
}

func (m *mockHTTPClient) Post(url, _ string, body io.Reader) (*http.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, _ := io.ReadAll(body)
	m.urls = append(m.urls, url)
	m.bodies = append(m.bodies, b)
	status := m.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestEmitEvent(t *testing.T) {
	t.Run("disabled service drops events", func(t *testing.T) {
		client := &mockHTTPClient{}
		svc, err := NewWithClient("token", "https://api.mixpanel.com", client)
		require.NoError(t, err)

		svc.EmitEvent(NewRoutingEvent("leiden", "semantic"))
		assert.Empty(t, client.urls)
	})

	t.Run("nil service is safe", func(t *testing.T) {
		var svc *Service
		svc.EmitEvent(NewRoutingEvent("leiden", "semantic"))
	})

	t.Run("enabled service posts to the track endpoint", func(t *testing.T) {
		client := &mockHTTPClient{}
		svc, err := NewWithClient("token", "https://api.mixpanel.com/", client)
		require.NoError(t, err)
		svc.Enable()

		svc.EmitEvent(NewRoutingEvent("article_rank", "keyword"))

		require.Len(t, client.urls, 1)
		assert.Equal(t, "https://api.mixpanel.com/track", client.urls[0])

		var events []TrackEvent
		require.NoError(t, json.Unmarshal(client.bodies[0], &events))
		require.Len(t, events, 1)
		assert.Equal(t, "GRAPH_AGENT_ROUTED", events[0].Event)
		assert.Equal(t, "article_rank", events[0].Properties["tool"])
		assert.Equal(t, "keyword", events[0].Properties["selectionMode"])
		assert.Equal(t, "token", events[0].Properties["token"])
		assert.NotEmpty(t, events[0].Properties["distinct_id"])
		assert.NotNil(t, events[0].Properties["time"])
	})

	t.Run("disable stops delivery again", func(t *testing.T) {
		client := &mockHTTPClient{}
		svc, err := NewWithClient("token", "https://api.mixpanel.com", client)
		require.NoError(t, err)
		svc.Enable()
		svc.Disable()

		svc.EmitEvent(NewRoutingErrorEvent("execution"))
		assert.Empty(t, client.urls)
	})

	t.Run("transport and status errors are swallowed", func(t *testing.T) {
		svc, err := NewWithClient("token", "https://api.mixpanel.com", &mockHTTPClient{err: io.ErrClosedPipe})
		require.NoError(t, err)
		svc.Enable()
		svc.EmitEvent(NewRoutingEvent("bridges", "explicit"))

		svc, err = NewWithClient("token", "https://api.mixpanel.com", &mockHTTPClient{statusCode: http.StatusBadRequest})
		require.NoError(t, err)
		svc.Enable()
		svc.EmitEvent(NewRoutingEvent("bridges", "explicit"))
	})
}

func TestEventConstructors(t *testing.T) {
	routed := NewRoutingEvent("count_nodes", "explicit")
	assert.Equal(t, "GRAPH_AGENT_ROUTED", routed.Event)
	assert.Equal(t, "count_nodes", routed.Properties["tool"])
	assert.Equal(t, "explicit", routed.Properties["selectionMode"])

	failed := NewRoutingErrorEvent("unknown-tool")
	assert.Equal(t, "GRAPH_AGENT_ROUTING_ERROR", failed.Event)
	assert.Equal(t, "unknown-tool", failed.Properties["kind"])
}
