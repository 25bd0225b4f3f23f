package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"botprobe/internal/control"
	"botprobe/internal/report"
)

var (
	eventsTail   int
	eventsAll    bool
	eventsFormat string
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntVar(&eventsTail, "tail", 0, "Number of trailing events to show (0 = config default, -1 = all)")
	eventsCmd.Flags().BoolVar(&eventsAll, "all", false, "Show every event type, not just the respawn allow-list")
	eventsCmd.Flags().StringVarP(&eventsFormat, "format", "f", "text", "Output format (text|json)")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the service's recent events",
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	events, err := client.Events(cmd.Context())
	if err != nil {
		return err
	}

	tail := eventsTail
	if tail == 0 {
		tail = cfg.Tail
	}
	types := cfg.EventTypes
	if eventsAll {
		types = nil
	}

	switch eventsFormat {
	case "json":
		if tail > 0 && len(events) > tail {
			events = events[len(events)-tail:]
		}
		if types != nil {
			events = filterByType(events, types)
		}
		out, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	case "text":
		printHeader("Recent bot events:")
		return report.Events(os.Stdout, events, report.EventOptions{Tail: tail, Types: types})
	default:
		return fmt.Errorf("unknown format %q (want text or json)", eventsFormat)
	}
}

func filterByType(events []control.Event, types []string) []control.Event {
	kept := make([]control.Event, 0, len(events))
	for _, ev := range events {
		for _, t := range types {
			if ev.Type == t {
				kept = append(kept, ev)
				break
			}
		}
	}
	return kept
}
