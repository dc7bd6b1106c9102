package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/climber/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "climber",
		Short: "climber - structural selection expansion for Rust source",
		Long: `climber grows and shrinks a text selection by walking the tree-sitter
syntax tree of a Rust buffer, stopping at semantically meaningful spans:
a list element plus its comma, everything between delimiters, the whole
bracketed group, and so on up to the file.

Run 'climber edit FILE' for the interactive viewer.
Run 'climber steps FILE --line N --col M' to print the expansion chain.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")

	rootCmd.AddCommand(
		editCmd(),
		stepsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the --config flag, falling back to the default
// location when none is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}
	return config.Load(path, explicit)
}

// setupLogging routes zerolog to the configured file. Interactive commands
// discard logs when no file is configured, because the TUI owns the
// terminal; one-shot commands fall back to stderr.
func setupLogging(cfg *config.Config, interactive bool) error {
	var w io.Writer
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	case interactive:
		w = io.Discard
	default:
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(cfg.Log.LevelOrDefault())
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("climber %s (commit %s)\n", version, commit)
		},
	}
}
