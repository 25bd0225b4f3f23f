package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"botprobe/internal/report"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report recent events and current bot state",
	Long: "Fetches the event log, prints the trailing events that match the\n" +
		"respawn-relevant allow-list, then fetches and prints the live\n" +
		"state snapshot.\n\n" +
		"The two calls fail differently on purpose: an unreachable event\n" +
		"log means the service itself is down and the command exits\n" +
		"non-zero, while a state failure usually just means the bot is\n" +
		"disconnected — it is reported in the summary and the command\n" +
		"still exits 0.",
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	events, err := client.Events(ctx)
	if err != nil {
		return err
	}

	printHeader("Recent bot events:")
	if err := report.Events(os.Stdout, events, report.EventOptions{
		Tail:  cfg.Tail,
		Types: cfg.EventTypes,
	}); err != nil {
		return err
	}

	fmt.Printf("\n%s%s%s\n", dim, rule, reset)
	fmt.Printf("%sCurrent bot state:%s\n", bold, reset)

	st, err := client.State(ctx)
	if err != nil {
		// Bot down ≠ service down: report and exit clean.
		report.StateError(os.Stdout, err)
		return nil
	}
	return report.State(os.Stdout, st)
}
