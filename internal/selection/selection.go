// Package selection defines the two selection shapes the climbing engine
// works with — a run of sibling syntax nodes and a sub-range inside one
// token — plus the per-session history stack that makes shrink possible.
package selection

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Kind discriminates the two selection shapes.
type Kind int

const (
	// NodeRange is an ordered run of sibling nodes sharing one parent.
	NodeRange Kind = iota
	// SubNode is a sub-range strictly inside a single token, used for the
	// interior of string and character literals.
	SubNode
)

// Pos is a document coordinate: 0-indexed row and 0-indexed byte column,
// matching tree-sitter points.
type Pos struct {
	Row uint32
	Col uint32
}

// Before reports whether p comes before q in document order.
func (p Pos) Before(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Span is a half-open [Start, End) range in document coordinates.
type Span struct {
	Start Pos
	End   Pos
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return !other.Start.Before(s.Start) && !s.End.Before(other.End)
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Row, s.Start.Col, s.End.Row, s.End.Col)
}

// Selection is a tagged union: either a node-range or a sub-node range.
// The zero value is not a valid selection; use NewNodeRange or NewSubNode.
type Selection struct {
	kind   Kind
	nodes  []*sitter.Node // NodeRange only, in document order
	anchor *sitter.Node   // SubNode only

	// SubNode interior, both coordinate systems.
	start, end         Pos
	startByte, endByte uint32
}

// NewNodeRange wraps an ordered run of sibling nodes. All nodes must share
// the same immediate parent; a violation is a defect in the caller, reported
// as an error so the engine can surface it as an internal failure.
func NewNodeRange(nodes ...*sitter.Node) (Selection, error) {
	if len(nodes) == 0 {
		return Selection{}, fmt.Errorf("node-range selection must not be empty")
	}
	first := nodes[0].Parent()
	for _, n := range nodes[1:] {
		if !sameParent(first, n.Parent()) {
			return Selection{}, fmt.Errorf("node-range selection spans multiple parents (%s vs %s)",
				parentType(first), parentType(n.Parent()))
		}
	}
	return Selection{kind: NodeRange, nodes: nodes}, nil
}

// NewSubNode wraps an interior range of a single token. The range is given
// in both byte offsets and document coordinates; no same-parent invariant
// applies since there is exactly one anchor.
func NewSubNode(anchor *sitter.Node, startByte, endByte uint32, start, end Pos) Selection {
	return Selection{
		kind:      SubNode,
		anchor:    anchor,
		start:     start,
		end:       end,
		startByte: startByte,
		endByte:   endByte,
	}
}

// Kind returns the selection shape.
func (s Selection) Kind() Kind { return s.kind }

// Nodes returns the node run of a node-range selection, nil otherwise.
func (s Selection) Nodes() []*sitter.Node { return s.nodes }

// Anchor returns the anchor token of a sub-node selection, nil otherwise.
func (s Selection) Anchor() *sitter.Node { return s.anchor }

// Span resolves the selection to document coordinates.
func (s Selection) Span() Span {
	if s.kind == SubNode {
		return Span{Start: s.start, End: s.end}
	}
	first := s.nodes[0]
	last := s.nodes[len(s.nodes)-1]
	return Span{
		Start: Pos{Row: first.StartPoint().Row, Col: first.StartPoint().Column},
		End:   Pos{Row: last.EndPoint().Row, Col: last.EndPoint().Column},
	}
}

// ByteRange resolves the selection to a half-open byte interval.
func (s Selection) ByteRange() (uint32, uint32) {
	if s.kind == SubNode {
		return s.startByte, s.endByte
	}
	return s.nodes[0].StartByte(), s.nodes[len(s.nodes)-1].EndByte()
}

// Equal compares by resolved document coordinates, not node identity:
// distinct node sets can denote an identical span (a parent wrapping a
// single already-whole child).
func (s Selection) Equal(o Selection) bool {
	return s.Span() == o.Span()
}

// sameParent compares parents structurally: two accessor calls may return
// distinct wrapper objects for the same tree position.
func sameParent(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func parentType(n *sitter.Node) string {
	if n == nil {
		return "<root>"
	}
	return n.Type()
}
