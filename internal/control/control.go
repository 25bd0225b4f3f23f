// Package control is the HTTP client for a local bot-control service.
// The service supervises a game bot and exposes its event log and a live
// state snapshot as JSON. One request per call, no retries: this client
// exists for one-shot debugging, not monitoring.
package control

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is where the bot-control service listens by default.
const DefaultBaseURL = "http://localhost:3000"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// Event is one entry from the service's event log. Timestamp and Data are
// kept as raw JSON — the service decides their shape, we only display them.
type Event struct {
	Type      string          `json:"type"`
	Timestamp json.RawMessage `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// State is the bot's live snapshot. All four fields are required: a
// response missing any of them means the service is in a bad way, and the
// caller should treat it the same as a transport failure.
type State struct {
	Health   json.Number     `json:"health"`
	Food     json.Number     `json:"food"`
	Position json.RawMessage `json:"position"`
	GameMode string          `json:"gameMode"`
}

// eventsResponse wraps the event list on the wire.
type eventsResponse struct {
	Events []Event `json:"events"`
}

// stateResponse mirrors State with presence tracking, so a missing field
// is distinguishable from a zero value.
type stateResponse struct {
	Health   *json.Number    `json:"health"`
	Food     *json.Number    `json:"food"`
	Position json.RawMessage `json:"position"`
	GameMode *string         `json:"gameMode"`
}

// Client talks to one bot-control service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL. Empty baseURL or zero
// timeout fall back to the defaults.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Events fetches the full event log, oldest first.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var resp eventsResponse
	if err := c.get(ctx, "/events", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return resp.Events, nil
}

// State fetches the live snapshot. A response missing any of the four
// required fields is an error.
func (c *Client) State(ctx context.Context) (*State, error) {
	var resp stateResponse
	if err := c.get(ctx, "/state", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch state: %w", err)
	}
	switch {
	case resp.Health == nil:
		return nil, fmt.Errorf("state response missing %q", "health")
	case resp.Food == nil:
		return nil, fmt.Errorf("state response missing %q", "food")
	case resp.Position == nil:
		return nil, fmt.Errorf("state response missing %q", "position")
	case resp.GameMode == nil:
		return nil, fmt.Errorf("state response missing %q", "gameMode")
	}
	return &State{
		Health:   *resp.Health,
		Food:     *resp.Food,
		Position: resp.Position,
		GameMode: *resp.GameMode,
	}, nil
}

// get issues one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, excerpt(body))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// excerpt trims a response body down to something printable in an error.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
