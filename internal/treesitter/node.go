package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// SameNode reports whether two nodes denote the same tree position.
// Identity is structural (type + source range): accessor calls can return
// distinct wrapper objects for one underlying node, so pointer comparison
// is never used.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// NodeAtPoint returns the smallest named node covering a document point,
// or nil when the point falls outside the tree.
func NodeAtPoint(root *sitter.Node, pt sitter.Point) *sitter.Node {
	if root == nil {
		return nil
	}
	return root.NamedDescendantForPointRange(pt, pt)
}

// Children returns all children of a node in order, anonymous tokens
// included.
func Children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.Child(i))
	}
	return out
}

// Text returns the source text of a node.
func Text(n *sitter.Node, src []byte) string {
	return n.Content(src)
}
