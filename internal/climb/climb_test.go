package climb

import (
	"context"
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/climber/internal/treesitter"
)

// parseRust parses a snippet and returns its root and source.
func parseRust(t *testing.T, src string) (*sitter.Node, []byte) {
	t.Helper()
	svc := treesitter.NewService()
	if err := svc.Open(context.Background(), testDoc, []byte(src)); err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { svc.Close(testDoc) })
	root, source, err := svc.TreeForDocument(context.Background(), testDoc)
	if err != nil {
		t.Fatalf("TreeForDocument: %v", err)
	}
	return root, source
}

// findNode returns the first node (depth-first) with the given type and
// source text.
func findNode(t *testing.T, root *sitter.Node, src []byte, typ, content string) *sitter.Node {
	t.Helper()
	var walk func(n *sitter.Node) *sitter.Node
	walk = func(n *sitter.Node) *sitter.Node {
		if n.Type() == typ && n.Content(src) == content {
			return n
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if found := walk(n.Child(i)); found != nil {
				return found
			}
		}
		return nil
	}
	node := walk(root)
	if node == nil {
		t.Fatalf("no %s node with content %q", typ, content)
	}
	return node
}

func contents(nodes []*sitter.Node, src []byte) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Content(src)
	}
	return out
}

func TestClimb_MiddleElementTakesTrailingComma(t *testing.T) {
	root, src := parseRust(t, "fn main() { let x = (123, 321, 444); }")
	node := findNode(t, root, src, "integer_literal", "321")

	next, err := Climb([]*sitter.Node{node}, node.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 2 || next[0].Content(src) != "321" || next[1].Type() != "," {
		t.Fatalf("next = %v, want element plus trailing comma", contents(next, src))
	}
}

func TestClimb_RightmostElementTakesLeadingComma(t *testing.T) {
	root, src := parseRust(t, "fn main() { let x = (123, 321, 444); }")
	node := findNode(t, root, src, "integer_literal", "444")

	next, err := Climb([]*sitter.Node{node}, node.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 2 || next[0].Type() != "," || next[1].Content(src) != "444" {
		t.Fatalf("next = %v, want leading comma plus element", contents(next, src))
	}
}

func TestClimb_PairExpandsToAllElements(t *testing.T) {
	root, src := parseRust(t, "fn main() { let x = (123, 321, 444); }")
	node := findNode(t, root, src, "integer_literal", "321")
	pair := []*sitter.Node{node, node.NextSibling()}

	next, err := Climb(pair, node.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	// Everything between the parentheses: three elements and two commas.
	if len(next) != 5 {
		t.Fatalf("next = %v, want all five inner children", contents(next, src))
	}
	if next[0].Content(src) != "123" || next[4].Content(src) != "444" {
		t.Fatalf("next = %v, want 123 through 444", contents(next, src))
	}
}

func TestClimb_FullContentsExpandToParent(t *testing.T) {
	root, src := parseRust(t, "fn main() { let x = (123, 321, 444); }")
	tuple := findNode(t, root, src, "tuple_expression", "(123, 321, 444)")
	inner := treesitter.Children(tuple)[1 : int(tuple.ChildCount())-1]

	next, err := Climb(inner, tuple)
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 1 || !treesitter.SameNode(next[0], tuple) {
		t.Fatalf("next = %v, want the whole tuple", contents(next, src))
	}
}

func TestClimb_DegenerateFieldInitializer(t *testing.T) {
	src := "fn main() { let s = S { x: 1 }; }"
	root, source := parseRust(t, src)
	field := findNode(t, root, source, "field_initializer", "x: 1")

	// One element, no comma: straight to the whole brace group.
	next, err := Climb([]*sitter.Node{field}, field.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 1 || next[0].Type() != "field_initializer_list" {
		t.Fatalf("next = %v, want the field initializer list", contents(next, source))
	}
}

func TestClimb_StructFieldsTakeTrailingComma(t *testing.T) {
	src := "struct Pair { left: u32, right: u32 }"
	root, source := parseRust(t, src)
	field := findNode(t, root, source, "field_declaration", "left: u32")

	next, err := Climb([]*sitter.Node{field}, field.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 2 || next[1].Type() != "," {
		t.Fatalf("next = %v, want field plus trailing comma", contents(next, source))
	}
}

func TestClimb_BlockMiddleStatement(t *testing.T) {
	root, src := parseRust(t, "fn main() { run(); walk(); halt(); }")
	stmt := findNode(t, root, src, "expression_statement", "walk();")

	next, err := Climb([]*sitter.Node{stmt}, stmt.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 3 {
		t.Fatalf("next = %v, want all three statements", contents(next, src))
	}

	// Growing the full statement run takes the braces too.
	whole, err := Climb(next, stmt.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(whole) != 1 || whole[0].Type() != "block" {
		t.Fatalf("whole = %v, want the block", contents(whole, src))
	}
}

func TestClimb_FallbackExpandsToParent(t *testing.T) {
	root, src := parseRust(t, "fn main() { let x = 1 + 2; }")
	node := findNode(t, root, src, "integer_literal", "1")

	next, err := Climb([]*sitter.Node{node}, node.Parent())
	if err != nil {
		t.Fatalf("Climb: %v", err)
	}
	if len(next) != 1 || next[0].Type() != "binary_expression" {
		t.Fatalf("next = %v, want the binary expression", contents(next, src))
	}
}

func TestClimb_EmptySelectionIsInternalError(t *testing.T) {
	root, _ := parseRust(t, "fn main() {}")

	_, err := Climb(nil, root)
	var ie *InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want InternalError", err)
	}
}

func TestClimb_ForeignNodeIsInternalError(t *testing.T) {
	root, src := parseRust(t, "fn main() { let x = (1, 2); let y = (3, 4); }")
	node := findNode(t, root, src, "integer_literal", "1")
	otherTuple := findNode(t, root, src, "tuple_expression", "(3, 4)")

	_, err := Climb([]*sitter.Node{node}, otherTuple)
	var ie *InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want InternalError", err)
	}
}
