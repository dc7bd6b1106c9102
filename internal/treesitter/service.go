// Package treesitter wraps go-tree-sitter behind the document-keyed parser
// service the climbing engine consumes: it owns parse trees per open
// document and provides the node accessors the engine reads.
package treesitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/rust"
)

// langForExt returns the tree-sitter language for a file extension, or nil.
func langForExt(ext string) *sitter.Language {
	switch ext {
	case ".rs":
		return rust.GetLanguage()
	case ".go":
		return golang.GetLanguage()
	default:
		return nil
	}
}

// Supported returns true if the file extension has a tree-sitter grammar.
func Supported(path string) bool {
	return langForExt(strings.ToLower(filepath.Ext(path))) != nil
}

type document struct {
	src  []byte
	tree *sitter.Tree
}

// Service parses and caches one syntax tree per open document. Freshness is
// this service's contract: a document's tree reflects the source it was
// opened with, and callers re-fetch the root on every operation.
type Service struct {
	mu   sync.Mutex
	docs map[string]*document
}

// NewService creates an empty parser service.
func NewService() *Service {
	return &Service{docs: make(map[string]*document)}
}

// OpenFile reads a file from disk and opens it under its own path.
func (s *Service) OpenFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Open(ctx, path, src)
}

// Open parses source bytes and registers them under the document id.
// The id's file extension selects the grammar.
func (s *Service) Open(ctx context.Context, id string, src []byte) error {
	lang := langForExt(strings.ToLower(filepath.Ext(id)))
	if lang == nil {
		return fmt.Errorf("no grammar for %s", id)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.docs[id]; ok {
		old.tree.Close()
	}
	s.docs[id] = &document{src: src, tree: tree}
	return nil
}

// Close releases the tree for a document. Closing an unknown id is a no-op.
func (s *Service) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok {
		doc.tree.Close()
		delete(s.docs, id)
	}
}

// TreeForDocument returns the root node and source of an open document.
func (s *Service) TreeForDocument(ctx context.Context, id string) (*sitter.Node, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil, fmt.Errorf("document not open: %s", id)
	}
	return doc.tree.RootNode(), doc.src, nil
}
