package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/climber/internal/selection"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	gutterW := len(fmt.Sprintf("%d", len(m.lines)))
	if gutterW < 2 {
		gutterW = 2
	}
	span := m.view.Selection()
	tabWidth := m.cfg.UI.TabWidthOrDefault()

	var b strings.Builder
	for vi := 0; vi < m.textHeight(); vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}
		row := m.scroll + vi
		if row >= len(m.lines) {
			b.WriteString(strings.Repeat(" ", gutterW))
			continue
		}
		b.WriteString(m.styles.LineNumber.Render(fmt.Sprintf("%*d ", gutterW, row+1)))
		b.WriteString(m.renderLine(string(m.lines[row]), row, span, tabWidth))
	}
	b.WriteByte('\n')
	b.WriteString(m.statusBar())
	return b.String()
}

// renderLine renders one buffer line. Rows covered by the selection (and
// the cursor row) drop syntax colors so the overlay slicing stays exact;
// everything else gets the Chroma-highlighted form.
func (m Model) renderLine(line string, row int, span *selection.Span, tabWidth int) string {
	exp := expandTabs(line, tabWidth)

	if span != nil {
		if s, e, ok := lineSelection(*span, row, len(line)); ok {
			plain := ansi.Strip(exp)
			runes := []rune(plain)
			es := expandedCol(line, s, tabWidth)
			ee := expandedCol(line, e, tabWidth)
			if ee > len(runes) {
				ee = len(runes)
			}
			return string(runes[:es]) +
				m.styles.Selection.Render(string(runes[es:ee])) +
				string(runes[ee:])
		}
	}

	if row == m.row {
		return m.renderCursorLine(line, exp, tabWidth)
	}
	if m.language != "" && m.styles.SyntaxTheme != "" {
		return cachedHighlight(exp, m.language, m.styles.SyntaxTheme)
	}
	return exp
}

// renderCursorLine shows the cursor cell reversed, on plain text.
func (m Model) renderCursorLine(line, exp string, tabWidth int) string {
	runes := []rune(exp)
	byteCol := len(string(m.lines[m.row][:m.col]))
	cur := expandedCol(line, byteCol, tabWidth)
	if cur >= len(runes) {
		return exp + m.styles.Cursor.Render(" ")
	}
	return string(runes[:cur]) +
		m.styles.Cursor.Render(string(runes[cur])) +
		string(runes[cur+1:])
}

func (m Model) statusBar() string {
	left := fmt.Sprintf(" %s", m.path)
	right := fmt.Sprintf("Ln %d, Col %d ", m.row+1, m.col+1)
	mid := m.status

	gap := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right) - runewidth.StringWidth(mid)
	if gap < 1 {
		mid = runewidth.Truncate(mid, max(0, m.width-runewidth.StringWidth(left)-runewidth.StringWidth(right)-1), "…")
		gap = max(1, m.width-runewidth.StringWidth(left)-runewidth.StringWidth(right)-runewidth.StringWidth(mid))
	}
	pad := gap / 2
	bar := left + strings.Repeat(" ", pad) + mid + strings.Repeat(" ", gap-pad) + right
	bar = runewidth.Truncate(bar, m.width, "")
	return m.styles.StatusBar.Width(m.width).Render(bar)
}

// lineSelection returns the byte-column range of span on row, false when
// the span does not touch the row.
func lineSelection(span selection.Span, row, lineBytes int) (start, end int, ok bool) {
	r := uint32(row)
	if r < span.Start.Row || r > span.End.Row {
		return 0, 0, false
	}
	start = 0
	if r == span.Start.Row {
		start = int(span.Start.Col)
	}
	end = lineBytes
	if r == span.End.Row {
		end = int(span.End.Col)
	}
	if start > lineBytes {
		start = lineBytes
	}
	if end > lineBytes {
		end = lineBytes
	}
	return start, end, start < end
}

// expandTabs replaces tabs with spaces (tabWidth-aligned).
func expandTabs(s string, tabWidth int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
		} else {
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// expandedCol maps a byte column in the raw line to a rune column in the
// tab-expanded line.
func expandedCol(line string, byteCol, tabWidth int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	col := 0
	for _, r := range line[:byteCol] {
		if r == '\t' {
			col += tabWidth - (col % tabWidth)
		} else {
			col++
		}
	}
	return col
}
