package treesitter

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.rs", true},
		{"lib.RS", true},
		{"main.go", true},
		{"notes.txt", false},
		{"Makefile", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestService_OpenAndFetch(t *testing.T) {
	svc := NewService()
	src := []byte("fn main() {}\n")
	if err := svc.Open(context.Background(), "main.rs", src); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close("main.rs")

	root, got, err := svc.TreeForDocument(context.Background(), "main.rs")
	if err != nil {
		t.Fatalf("TreeForDocument: %v", err)
	}
	if string(got) != string(src) {
		t.Fatalf("source = %q, want %q", got, src)
	}
	if root.Type() != "source_file" {
		t.Fatalf("root type = %q, want source_file", root.Type())
	}
}

func TestService_UnknownDocument(t *testing.T) {
	svc := NewService()
	if _, _, err := svc.TreeForDocument(context.Background(), "ghost.rs"); err == nil {
		t.Fatal("fetch of unopened document succeeded")
	}
}

func TestService_UnsupportedExtension(t *testing.T) {
	svc := NewService()
	if err := svc.Open(context.Background(), "notes.txt", []byte("hi")); err == nil {
		t.Fatal("open of unsupported extension succeeded")
	}
}

func TestNodeAtPoint(t *testing.T) {
	svc := NewService()
	src := []byte("fn main() { let x = 42; }\n")
	if err := svc.Open(context.Background(), "main.rs", src); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close("main.rs")
	root, _, _ := svc.TreeForDocument(context.Background(), "main.rs")

	node := NodeAtPoint(root, sitter.Point{Row: 0, Column: 20}) // inside "42"
	if node == nil {
		t.Fatal("no node at point")
	}
	if node.Type() != "integer_literal" {
		t.Fatalf("node type = %q, want integer_literal", node.Type())
	}
}

func TestSameNode_DistinctWrappers(t *testing.T) {
	svc := NewService()
	src := []byte("fn main() {}\n")
	if err := svc.Open(context.Background(), "main.rs", src); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close("main.rs")
	root, _, _ := svc.TreeForDocument(context.Background(), "main.rs")

	// Two accessor calls for the same tree position.
	a := root.NamedChild(0)
	b := root.NamedChild(0)
	if !SameNode(a, b) {
		t.Fatal("wrappers of one node compare unequal")
	}
	if SameNode(a, root) {
		t.Fatal("distinct nodes compare equal")
	}
	if SameNode(a, nil) || !SameNode(nil, nil) {
		t.Fatal("nil handling broken")
	}
}

func TestChildrenOrder(t *testing.T) {
	svc := NewService()
	src := []byte("fn main() { f(1, 2); }\n")
	if err := svc.Open(context.Background(), "main.rs", src); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer svc.Close("main.rs")
	root, source, _ := svc.TreeForDocument(context.Background(), "main.rs")

	var args *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if args != nil {
			return
		}
		if n.Type() == "arguments" {
			args = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	if args == nil {
		t.Fatal("no arguments node")
	}

	kids := Children(args)
	if len(kids) != 5 { // ( 1 , 2 )
		t.Fatalf("children = %d, want 5", len(kids))
	}
	if Text(kids[0], source) != "(" || Text(kids[4], source) != ")" {
		t.Fatal("delimiters not at the ends")
	}
	if kids[2].Type() != "," {
		t.Fatalf("middle child = %q, want comma", kids[2].Type())
	}
}
