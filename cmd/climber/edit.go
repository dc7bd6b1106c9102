package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/xonecas/climber/internal/climb"
	"github.com/xonecas/climber/internal/treesitter"
	"github.com/xonecas/climber/internal/tui"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit FILE",
		Short: "Open a file in the interactive selection viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, true); err != nil {
				return err
			}
			if !treesitter.Supported(path) {
				return fmt.Errorf("no grammar for %s", path)
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			parser := treesitter.NewService()
			if err := parser.Open(cmd.Context(), path, src); err != nil {
				return err
			}
			defer parser.Close(path)

			engine := climb.NewEngine(parser, cfg.Climb.MaxSteps)
			p := tea.NewProgram(
				tui.New(cfg, engine, path, src),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}
}
