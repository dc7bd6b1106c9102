// Package tui is the interactive host for the climbing engine: a read-only
// file viewer with a structural selection the user grows and shrinks from
// the keyboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/climber/internal/climb"
	"github.com/xonecas/climber/internal/config"
)

// Model is the application model.
type Model struct {
	cfg    *config.Config
	engine *climb.Engine
	view   *bufferView

	path      string
	sessionID string
	language  string // Chroma lexer name

	lines  [][]rune // buffer contents, one entry per line
	row    int      // cursor row (0-indexed)
	col    int      // cursor column (0-indexed rune offset)
	scroll int      // first visible row

	width  int
	height int

	selecting bool // a selection session is active
	status    string

	keys   keyMap
	styles Styles
}

// New creates the TUI model over an already-opened document.
func New(cfg *config.Config, engine *climb.Engine, path string, src []byte) Model {
	lines := splitLines(string(src))
	return Model{
		cfg:       cfg,
		engine:    engine,
		view:      &bufferView{},
		path:      path,
		sessionID: path,
		language:  lexerForPath(path),
		lines:     lines,
		keys:      defaultKeyMap(),
		styles:    defaultStyles(cfg.UI.SyntaxThemeOrDefault()),
		status:    "v to select, +/- to grow/shrink",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.EndSession(m.sessionID)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Begin):
		m.begin()

	case key.Matches(msg, m.keys.Grow):
		m.grow()

	case key.Matches(msg, m.keys.Shrink):
		m.shrink()

	case key.Matches(msg, m.keys.Cancel):
		m.cancel()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	}
	return m, nil
}

func (m *Model) begin() {
	m.view.SetCursor(m.cursorPoint())
	err := m.engine.BeginSelection(context.Background(), m.sessionID, m.path, m.view)
	switch {
	case errors.Is(err, climb.ErrNoNode):
		m.status = "nothing to select"
	case err != nil:
		m.fail("begin selection", err)
	default:
		m.selecting = true
		m.status = "selection started"
	}
}

func (m *Model) grow() {
	if !m.selecting {
		m.begin()
		return
	}
	err := m.engine.GrowSelection(context.Background(), m.sessionID)
	switch {
	case errors.Is(err, climb.ErrAtRoot):
		m.status = "no further expansion"
	case err != nil:
		m.fail("grow selection", err)
	default:
		m.status = fmt.Sprintf("depth %d", m.engine.Depth(m.sessionID))
	}
}

func (m *Model) shrink() {
	if !m.selecting {
		return
	}
	if err := m.engine.ShrinkSelection(m.sessionID); err != nil {
		m.fail("shrink selection", err)
		return
	}
	m.status = fmt.Sprintf("depth %d", m.engine.Depth(m.sessionID))
}

func (m *Model) cancel() {
	if !m.selecting {
		return
	}
	m.engine.EndSession(m.sessionID)
	m.view.ClearSelection()
	m.selecting = false
	m.status = "selection cleared"
}

func (m *Model) fail(op string, err error) {
	log.Error().Err(err).Str("op", op).Msg("selection operation failed")
	m.status = fmt.Sprintf("%s: %v", op, err)
}

func (m *Model) moveCursor(dr, dc int) {
	m.row += dr
	m.col += dc
	m.clampCursor()
	m.clampScroll()
}

func (m *Model) clampCursor() {
	if m.row < 0 {
		m.row = 0
	}
	if m.row > len(m.lines)-1 {
		m.row = len(m.lines) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	if line := m.lines[m.row]; m.col > len(line) {
		m.col = len(line)
	}
}

func (m *Model) clampScroll() {
	text := m.textHeight()
	if text <= 0 {
		return
	}
	if m.row < m.scroll {
		m.scroll = m.row
	}
	if m.row >= m.scroll+text {
		m.scroll = m.row - text + 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// textHeight is the viewport height minus the status bar.
func (m *Model) textHeight() int {
	return m.height - 1
}

func splitLines(s string) [][]rune {
	raw := strings.Split(s, "\n")
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(strings.TrimSuffix(l, "\r"))
	}
	return lines
}

func lexerForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rs":
		return "rust"
	case ".go":
		return "go"
	default:
		return ""
	}
}
