package main

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"github.com/xonecas/climber/internal/climb"
	"github.com/xonecas/climber/internal/selection"
	"github.com/xonecas/climber/internal/treesitter"
)

// traceView is a headless editor view: it records committed spans instead
// of drawing them.
type traceView struct {
	cursor sitter.Point
	spans  []selection.Span
}

func (v *traceView) NodeAtCursor(root *sitter.Node) *sitter.Node {
	return treesitter.NodeAtPoint(root, v.cursor)
}

func (v *traceView) SetSelection(span selection.Span) {
	v.spans = append(v.spans, span)
}

func stepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps FILE",
		Short: "Print the expansion chain from a cursor position",
		Long: `Seed a selection at --line/--col (1-indexed) and grow it until the
whole file is selected, printing each committed span. Useful for
scripting and for inspecting rule-table behavior.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, false); err != nil {
				return err
			}

			line, _ := cmd.Flags().GetInt("line")
			col, _ := cmd.Flags().GetInt("col")
			limit, _ := cmd.Flags().GetInt("limit")
			if line < 1 || col < 1 {
				return fmt.Errorf("--line and --col are 1-indexed and required")
			}

			parser := treesitter.NewService()
			if err := parser.OpenFile(cmd.Context(), path); err != nil {
				return err
			}
			defer parser.Close(path)
			_, src, err := parser.TreeForDocument(cmd.Context(), path)
			if err != nil {
				return err
			}

			view := &traceView{cursor: sitter.Point{Row: uint32(line - 1), Column: uint32(col - 1)}}
			engine := climb.NewEngine(parser, cfg.Climb.MaxSteps)
			defer engine.EndSession(path)

			if err := engine.BeginSelection(cmd.Context(), path, path, view); err != nil {
				return err
			}
			for limit <= 0 || len(view.spans) < limit {
				err := engine.GrowSelection(cmd.Context(), path)
				if errors.Is(err, climb.ErrAtRoot) {
					break
				}
				if err != nil {
					return err
				}
			}

			offsets := lineOffsets(src)
			for i, sp := range view.spans {
				fmt.Printf("%2d  %-14s %s\n", i+1, sp, excerpt(src, offsets, sp))
			}
			return nil
		},
	}

	cmd.Flags().Int("line", 0, "cursor line (1-indexed)")
	cmd.Flags().Int("col", 0, "cursor column (1-indexed)")
	cmd.Flags().Int("limit", 0, "stop after this many selections (0 = until root)")
	return cmd
}

// lineOffsets returns the byte offset of each line start.
func lineOffsets(src []byte) []int {
	offsets := []int{0}
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// excerpt renders the selected text on one line, truncated.
func excerpt(src []byte, offsets []int, sp selection.Span) string {
	start := byteOffset(offsets, sp.Start, len(src))
	end := byteOffset(offsets, sp.End, len(src))
	if start > end {
		start, end = end, start
	}
	text := strings.ReplaceAll(string(src[start:end]), "\n", "\\n")
	const maxLen = 60
	if len(text) > maxLen {
		return text[:maxLen] + "…"
	}
	return text
}

func byteOffset(offsets []int, p selection.Pos, srcLen int) int {
	if int(p.Row) >= len(offsets) {
		return srcLen
	}
	off := offsets[p.Row] + int(p.Col)
	if off > srcLen {
		return srcLen
	}
	return off
}
