package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"botprobe/internal/report"
)

var stateFormat string

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().StringVarP(&stateFormat, "format", "f", "text", "Output format (text|json)")
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the bot's current state",
	Long: "Fetches the live state snapshot and prints health, food, position\n" +
		"and game mode. A fetch failure is reported as a likely disconnect\n" +
		"and the command exits 0 — use the exit code of 'events' to tell\n" +
		"whether the service itself is reachable.",
	RunE: runState,
}

func runState(cmd *cobra.Command, args []string) error {
	if stateFormat != "text" && stateFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", stateFormat)
	}

	client, _, err := newClient()
	if err != nil {
		return err
	}

	st, err := client.State(cmd.Context())
	if err != nil {
		report.StateError(os.Stdout, err)
		return nil
	}

	if stateFormat == "json" {
		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printHeader("Current bot state:")
	return report.State(os.Stdout, st)
}
