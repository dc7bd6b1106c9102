// Package climb implements selection expansion over a tree-sitter syntax
// tree: a rule table classifying parent constructs, the climb step that
// computes the next larger selection, and the engine driving grow/shrink
// against a per-session history stack.
package climb

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/climber/internal/treesitter"
)

// Climb computes the next selection from a run of sibling nodes and their
// shared parent. The result may be {parent}, a subset of parent's children,
// or a set denoting the same text span as the input; the caller must test
// for coordinate progress before committing.
func Climb(current []*sitter.Node, parent *sitter.Node) ([]*sitter.Node, error) {
	if len(current) == 0 {
		return nil, internalf("climb with empty selection")
	}
	for _, n := range current {
		if p := n.Parent(); p != nil && !treesitter.SameNode(p, parent) {
			return nil, internalf("selection node %s is not a child of %s", n.Type(), parent.Type())
		}
	}

	r := rules[parent.Type()]
	switch r.kind {
	case delimitedList:
		return climbList(current, parent, r)
	case braceBlock:
		return climbBlock(current, parent, r)
	default:
		return []*sitter.Node{parent}, nil
	}
}

// climbList handles comma-separated delimited constructs. "Inner" children
// are everything between the open and close delimiter tokens, commas
// included.
func climbList(current []*sitter.Node, parent *sitter.Node, r rule) ([]*sitter.Node, error) {
	inner := innerChildren(parent, r)
	if len(inner) == 0 {
		return []*sitter.Node{parent}, nil
	}

	// Degenerate single-element form: no comma to anchor on, so the only
	// finer-grained stop would repeat the element itself. Applies to every
	// list tag; tuple forms cannot parse with one element.
	if len(inner) == 1 {
		if r.tupleForm {
			return nil, internalf("one-element %s form should not parse", parent.Type())
		}
		return []*sitter.Node{parent}, nil
	}

	if len(current) == 1 {
		return climbListElement(current[0], inner, parent)
	}

	// Already spanning all inner children: take the delimiters too.
	if treesitter.SameNode(current[0], inner[0]) &&
		treesitter.SameNode(current[len(current)-1], inner[len(inner)-1]) {
		return []*sitter.Node{parent}, nil
	}

	// A proper subset of the elements: select everything between the
	// delimiters.
	return inner, nil
}

// climbListElement grows a single element of a delimited list by consuming
// an adjacent comma: the rightmost element takes its leading comma, every
// other element its trailing one. With no comma on that side the whole
// parent is next.
func climbListElement(node *sitter.Node, inner []*sitter.Node, parent *sitter.Node) ([]*sitter.Node, error) {
	idx := -1
	for i, c := range inner {
		if treesitter.SameNode(c, node) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, internalf("selection %s not among children of %s", node.Type(), parent.Type())
	}

	if idx == len(inner)-1 {
		if idx > 0 && inner[idx-1].Type() == commaToken {
			return []*sitter.Node{inner[idx-1], node}, nil
		}
		return []*sitter.Node{parent}, nil
	}
	if inner[idx+1].Type() == commaToken {
		return []*sitter.Node{node, inner[idx+1]}, nil
	}
	return []*sitter.Node{parent}, nil
}

// climbBlock handles brace-delimited blocks: first everything between the
// braces, then the braces too.
func climbBlock(current []*sitter.Node, parent *sitter.Node, r rule) ([]*sitter.Node, error) {
	inner := innerChildren(parent, r)
	if len(inner) == 0 {
		return []*sitter.Node{parent}, nil
	}
	if treesitter.SameNode(current[0], inner[0]) &&
		treesitter.SameNode(current[len(current)-1], inner[len(inner)-1]) {
		return []*sitter.Node{parent}, nil
	}
	return inner, nil
}

// innerChildren returns parent's children with the open and close delimiter
// tokens trimmed from the ends.
func innerChildren(parent *sitter.Node, r rule) []*sitter.Node {
	children := treesitter.Children(parent)
	lo, hi := 0, len(children)
	if lo < hi && children[lo].Type() == r.open {
		lo++
	}
	if lo < hi && children[hi-1].Type() == r.close {
		hi--
	}
	return children[lo:hi]
}
