// Package report formats bot-control data for human eyes. Pure writers,
// no network I/O, so every output shape is testable against a buffer.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"botprobe/internal/control"
)

// DefaultTail is how many trailing events a report covers.
const DefaultTail = 20

// DefaultTypes is the event allow-list: the types that matter when
// checking whether a bot died, respawned, and reconnected.
var DefaultTypes = []string{"death", "respawn_attempt", "spawn", "reconnect", "chat", "health"}

// EventOptions controls which events a report prints.
type EventOptions struct {
	// Tail keeps only the trailing N events before filtering.
	// Zero means DefaultTail; negative means no tail limit.
	Tail int
	// Types is the allow-list applied after the tail slice.
	// Nil means print every retained event.
	Types []string
}

// Events prints one line per retained event: the type followed by its data
// pretty-printed with a two-space indent. The tail slice happens first, the
// type filter second — an unlisted event still occupies a tail slot.
func Events(w io.Writer, events []control.Event, opts EventOptions) error {
	tail := opts.Tail
	if tail == 0 {
		tail = DefaultTail
	}
	if tail > 0 && len(events) > tail {
		events = events[len(events)-tail:]
	}

	for _, ev := range events {
		if opts.Types != nil && !contains(opts.Types, ev.Type) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", ev.Type, indentJSON(ev.Data)); err != nil {
			return err
		}
	}
	return nil
}

// State prints the four snapshot fields verbatim plus the success sentinel.
func State(w io.Writer, st *control.State) error {
	fmt.Fprintf(w, "Health: %s/20\n", st.Health)
	fmt.Fprintf(w, "Food: %s/20\n", st.Food)
	fmt.Fprintf(w, "Position: %s\n", compactJSON(st.Position))
	fmt.Fprintf(w, "Game Mode: %s\n", st.GameMode)
	_, err := fmt.Fprintf(w, "\nBot is alive and connected! ✓\n")
	return err
}

// StateError prints the caught-failure fallback: the error itself and the
// likeliest explanation. The caller is expected to carry on normally.
func StateError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error getting state: %s\n", err)
	fmt.Fprintln(w, "Bot may be disconnected")
}

// indentJSON renders raw JSON with a two-space indent. Data that does not
// re-indent (or is absent) is shown as-is rather than dropped.
func indentJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// compactJSON renders raw JSON on a single line.
func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
