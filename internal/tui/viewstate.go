package tui

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/climber/internal/selection"
	"github.com/xonecas/climber/internal/treesitter"
)

// bufferView is the editor-view surface the engine drives. It is shared
// between the bubbletea model (which is copied by value on every update)
// and the engine, so it lives behind a pointer and its own lock.
type bufferView struct {
	mu     sync.Mutex
	cursor sitter.Point
	span   *selection.Span
}

// SetCursor records the cursor position in tree coordinates.
func (v *bufferView) SetCursor(pt sitter.Point) {
	v.mu.Lock()
	v.cursor = pt
	v.mu.Unlock()
}

// NodeAtCursor implements climb.View.
func (v *bufferView) NodeAtCursor(root *sitter.Node) *sitter.Node {
	v.mu.Lock()
	pt := v.cursor
	v.mu.Unlock()
	return treesitter.NodeAtPoint(root, pt)
}

// SetSelection implements climb.View.
func (v *bufferView) SetSelection(span selection.Span) {
	v.mu.Lock()
	v.span = &span
	v.mu.Unlock()
}

// Selection returns the committed selection span, nil when none is shown.
func (v *bufferView) Selection() *selection.Span {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.span
}

// ClearSelection removes the selection overlay.
func (v *bufferView) ClearSelection() {
	v.mu.Lock()
	v.span = nil
	v.mu.Unlock()
}

// cursorPoint converts the rune-indexed cursor to a tree-sitter point with
// a byte column.
func (m *Model) cursorPoint() sitter.Point {
	line := m.lines[m.row]
	byteCol := len(string(line[:m.col]))
	return sitter.Point{Row: uint32(m.row), Column: uint32(byteCol)}
}
