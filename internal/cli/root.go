package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"botprobe/internal/config"
	"botprobe/internal/control"
)

// ANSI colors, blanked when stdout is not a terminal.
var (
	bold  = "\033[1m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		bold, dim, reset = "", "", ""
	}
}

var (
	flagURL    string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "botprobe",
	Short: "Inspect a local bot-control service",
	Long: "Debugging client for a bot-control HTTP service. Fetches the\n" +
		"service's event log and live state snapshot and prints a\n" +
		"human-readable report. One request per call, no retries.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Bot-control service base URL (env: BOTPROBE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: ~/.botprobe/config.yaml)")
}

// resolveConfig builds the effective configuration.
// Resolution order for the base URL: --url → BOTPROBE_URL → config file → default.
func resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if u := os.Getenv("BOTPROBE_URL"); u != "" {
		cfg.BaseURL = u
	}
	if flagURL != "" {
		cfg.BaseURL = flagURL
	}
	return cfg, nil
}

// newClient resolves configuration and returns a client plus the config it
// was built from.
func newClient() (*control.Client, *config.Config, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, nil, err
	}
	return control.New(cfg.BaseURL, cfg.Timeout), cfg, nil
}

// rule is the 50-char separator the reports use.
const rule = "--------------------------------------------------"

func printHeader(title string) {
	fmt.Printf("%s%s%s\n", bold, title, reset)
	fmt.Printf("%s%s%s\n", dim, rule, reset)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
