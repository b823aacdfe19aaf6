// Package telemetry emits anonymous routing events. Disabled unless
// explicitly initialized; failures are logged and never surfaced.
package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient is the transport used to deliver events; http.DefaultClient
// satisfies it, tests inject their own.
type HTTPClient interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
}

type defaultHTTPClient struct{}

func (defaultHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return http.Post(url, contentType, body)
}

// Service sends track events to an analytics endpoint.
type Service struct {
	token       string
	endpoint    string
	distinctID  string
	startupTime int64
	client      HTTPClient
	enabled     bool
}

// New configures a telemetry service. Events are dropped until Enable is
// called.
func New(token, endpoint string) (*Service, error) {
	return NewWithClient(token, endpoint, defaultHTTPClient{})
}

// NewWithClient configures a telemetry service with an injected transport.
func NewWithClient(token, endpoint string, client HTTPClient) (*Service, error) {
	distinctID, err := uuid.NewV6()
	if err != nil {
		return nil, fmt.Errorf("error while generating distinct id for telemetry: %w", err)
	}
	return &Service{
		token:       token,
		endpoint:    endpoint,
		distinctID:  distinctID.String(),
		startupTime: time.Now().Unix(),
		client:      client,
	}, nil
}

// Enable turns event delivery on.
func (s *Service) Enable() {
	s.enabled = true
}

// Disable turns event delivery off.
func (s *Service) Disable() {
	s.enabled = false
}

// EmitEvent delivers one event, best effort.
func (s *Service) EmitEvent(event TrackEvent) {
	if s == nil || !s.enabled {
		return
	}
	event.Properties["distinct_id"] = s.distinctID
	event.Properties["token"] = s.token
	event.Properties["time"] = time.Now().Unix()

	if err := s.sendTrackEvents([]TrackEvent{event}); err != nil {
		log.Printf("Telemetry error: %s", err.Error())
	}
}

func (s *Service) sendTrackEvents(events []TrackEvent) error {
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("error while marshalling track events: %w", err)
	}
	url := strings.TrimRight(s.endpoint, "/") + "/track"

	resp, err := s.client.Post(url, "application/json; charset=utf-8", bytes.NewBuffer(b))
	if err != nil {
		return fmt.Errorf("error while emitting telemetry events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telemetry endpoint returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
