package control

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// startTestService serves fixed JSON bodies for /events and /state.
// An empty body means 500 for that path.
func startTestService(t *testing.T, eventsBody, stateBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		if eventsBody == "" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, eventsBody)
	})
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		if stateBody == "" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stateBody)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

const goodState = `{"health":20,"food":18,"position":{"x":0,"y":64,"z":0},"gameMode":"survival"}`

func TestEvents(t *testing.T) {
	srv := startTestService(t, `{"events":[
		{"type":"spawn","timestamp":1,"data":{}},
		{"type":"chat","timestamp":2,"data":{"msg":"hi"}}
	]}`, goodState)

	c := New(srv.URL, 0)
	events, err := c.Events(context.Background())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != "spawn" || events[1].Type != "chat" {
		t.Errorf("order not preserved: %s, %s", events[0].Type, events[1].Type)
	}
	if string(events[1].Data) != `{"msg":"hi"}` {
		t.Errorf("data not kept verbatim: %s", events[1].Data)
	}
	if string(events[1].Timestamp) != "2" {
		t.Errorf("timestamp not kept verbatim: %s", events[1].Timestamp)
	}
}

func TestEventsEmptyList(t *testing.T) {
	srv := startTestService(t, `{"events":[]}`, goodState)

	c := New(srv.URL, 0)
	events, err := c.Events(context.Background())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected 0 events, got %d", len(events))
	}
}

func TestEventsHTTPError(t *testing.T) {
	srv := startTestService(t, "", goodState)

	c := New(srv.URL, 0)
	_, err := c.Events(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestEventsMalformedBody(t *testing.T) {
	srv := startTestService(t, `this is not json`, goodState)

	c := New(srv.URL, 0)
	_, err := c.Events(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestState(t *testing.T) {
	srv := startTestService(t, `{"events":[]}`, goodState)

	c := New(srv.URL, 0)
	st, err := c.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}

	if st.Health.String() != "20" {
		t.Errorf("health: got %s, want 20", st.Health)
	}
	if st.Food.String() != "18" {
		t.Errorf("food: got %s, want 18", st.Food)
	}
	if string(st.Position) != `{"x":0,"y":64,"z":0}` {
		t.Errorf("position not kept verbatim: %s", st.Position)
	}
	if st.GameMode != "survival" {
		t.Errorf("gameMode: got %s, want survival", st.GameMode)
	}
}

func TestStateFractionalHealth(t *testing.T) {
	srv := startTestService(t, `{"events":[]}`,
		`{"health":19.5,"food":20,"position":[1,2,3],"gameMode":"survival"}`)

	c := New(srv.URL, 0)
	st, err := c.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if st.Health.String() != "19.5" {
		t.Errorf("health should survive verbatim: got %s", st.Health)
	}
	if string(st.Position) != "[1,2,3]" {
		t.Errorf("position shape should not matter: got %s", st.Position)
	}
}

func TestStateMissingField(t *testing.T) {
	cases := []struct {
		missing string
		body    string
	}{
		{"health", `{"food":18,"position":{},"gameMode":"survival"}`},
		{"food", `{"health":20,"position":{},"gameMode":"survival"}`},
		{"position", `{"health":20,"food":18,"gameMode":"survival"}`},
		{"gameMode", `{"health":20,"food":18,"position":{}}`},
	}

	for _, c := range cases {
		srv := startTestService(t, `{"events":[]}`, c.body)
		client := New(srv.URL, 0)

		_, err := client.State(context.Background())
		if err == nil {
			t.Errorf("missing %s: expected error", c.missing)
			continue
		}
		if !strings.Contains(err.Error(), c.missing) {
			t.Errorf("missing %s: error should name the field, got %v", c.missing, err)
		}
	}
}

func TestStateHTTPError(t *testing.T) {
	srv := startTestService(t, `{"events":[]}`, "")

	c := New(srv.URL, 0)
	_, err := c.State(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestConnectionRefused(t *testing.T) {
	// Grab a free port, then close it — nothing is listening.
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := lis.Addr().String()
	lis.Close()

	c := New("http://"+addr, 2*time.Second)
	if _, err := c.Events(context.Background()); err == nil {
		t.Error("Events: expected error against dead port")
	}
	if _, err := c.State(context.Background()); err == nil {
		t.Error("State: expected error against dead port")
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("", 0)
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL: got %s, want %s", c.baseURL, DefaultBaseURL)
	}
	if c.http.Timeout != DefaultTimeout {
		t.Errorf("timeout: got %s, want %s", c.http.Timeout, DefaultTimeout)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	srv := startTestService(t, `{"events":[]}`, goodState)

	c := New(srv.URL+"/", 0)
	if _, err := c.Events(context.Background()); err != nil {
		t.Fatalf("Events with trailing slash: %v", err)
	}
}
