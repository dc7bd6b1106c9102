package climb

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/climber/internal/selection"
)

// Seed classifies the node under the cursor into the initial selection:
// literal tokens with quoted content start as a sub-node selection over
// their interior, everything else as a whole-node range.
func Seed(node *sitter.Node, src []byte) (selection.Selection, error) {
	node = hoistLiteral(node)

	switch node.Type() {
	case "string_literal", "char_literal":
		if sel, ok := interior(node, 1, 1); ok {
			return sel, nil
		}
	case "raw_string_literal":
		// The opening marker is r, any number of #, and the quote; the
		// closing marker is one byte shorter (no r).
		text := node.Content(src)
		if k := strings.IndexByte(text, '"') + 1; k > 0 {
			if sel, ok := interior(node, uint32(k), uint32(k-1)); ok {
				return sel, nil
			}
		}
	}

	return selection.NewNodeRange(node)
}

// hoistLiteral lifts a content or escape node up to its enclosing literal:
// the smallest named node inside a string is its content, not the token
// the seeding rules classify.
func hoistLiteral(node *sitter.Node) *sitter.Node {
	if isLiteral(node.Type()) {
		return node
	}
	if p := node.Parent(); p != nil && isLiteral(p.Type()) {
		return p
	}
	return node
}

func isLiteral(typ string) bool {
	switch typ {
	case "string_literal", "char_literal", "raw_string_literal":
		return true
	}
	return false
}

// interior builds a sub-node selection between markers of the given byte
// lengths. An empty interior reports false; the caller falls back to the
// whole token.
func interior(node *sitter.Node, openLen, closeLen uint32) (selection.Selection, bool) {
	if node.EndByte()-node.StartByte() <= openLen+closeLen {
		return selection.Selection{}, false
	}
	start := selection.Pos{Row: node.StartPoint().Row, Col: node.StartPoint().Column + openLen}
	end := selection.Pos{Row: node.EndPoint().Row, Col: node.EndPoint().Column - closeLen}
	return selection.NewSubNode(node, node.StartByte()+openLen, node.EndByte()-closeLen, start, end), true
}
