package climb

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/xonecas/climber/internal/selection"
)

// DefaultMaxSteps bounds the grow driver loop. Real trees reach the root in
// a handful of no-progress iterations; hitting the ceiling means the rule
// table cycled without coordinate progress, which is a bug.
const DefaultMaxSteps = 1000

// ParserService supplies syntax trees per document id. Freshness is the
// service's contract; the engine re-fetches the root on every operation.
type ParserService interface {
	TreeForDocument(ctx context.Context, id string) (*sitter.Node, []byte, error)
}

// View is the editor surface the engine drives: it knows where the cursor
// is and how to show a committed selection.
type View interface {
	NodeAtCursor(root *sitter.Node) *sitter.Node
	SetSelection(span selection.Span)
}

// session is one buffer's selection state. Operations on a session are
// serialized by its mutex; the history is mutated in place.
type session struct {
	mu   sync.Mutex
	doc  string
	view View
	hist *selection.History
}

// Engine exposes begin/grow/shrink keyed by session id. Sessions over
// different documents are fully independent.
type Engine struct {
	parser   ParserService
	maxSteps int

	mu       sync.Mutex
	sessions map[string]*session
}

// NewEngine creates an engine over a parser service. maxSteps <= 0 selects
// DefaultMaxSteps.
func NewEngine(parser ParserService, maxSteps int) *Engine {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Engine{
		parser:   parser,
		maxSteps: maxSteps,
		sessions: make(map[string]*session),
	}
}

// BeginSelection seeds a new selection session at the view's cursor,
// replacing any previous session under the same id. Returns ErrNoNode when
// the cursor is outside the tree; no state is created in that case.
func (e *Engine) BeginSelection(ctx context.Context, sessionID, docID string, view View) error {
	root, src, err := e.parser.TreeForDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("begin selection: %w", err)
	}
	node := view.NodeAtCursor(root)
	if node == nil {
		return ErrNoNode
	}
	seed, err := Seed(node, src)
	if err != nil {
		return &InternalError{Invariant: err.Error()}
	}

	e.mu.Lock()
	e.sessions[sessionID] = &session{doc: docID, view: view, hist: selection.NewHistory(seed)}
	e.mu.Unlock()

	log.Debug().Str("session", sessionID).Str("node", node.Type()).
		Stringer("span", seed.Span()).Msg("selection seeded")
	view.SetSelection(seed.Span())
	return nil
}

// GrowSelection expands the session's selection to the next semantically
// meaningful span and pushes it onto the history. Returns ErrAtRoot when
// the selection already covers the tree root.
func (e *Engine) GrowSelection(ctx context.Context, sessionID string) error {
	sess, err := e.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The tree is re-fetched fresh each grow; a stale tree yields stale
	// results, which is the documented contract.
	root, _, err := e.parser.TreeForDocument(ctx, sess.doc)
	if err != nil {
		return fmt.Errorf("grow selection: %w", err)
	}

	top := sess.hist.Peek()

	// A literal-interior selection first promotes to the whole token,
	// delimiters included; only the next grow climbs.
	if top.Kind() == selection.SubNode {
		next, err := selection.NewNodeRange(top.Anchor())
		if err != nil {
			return &InternalError{Invariant: err.Error()}
		}
		return e.commit(sess, sessionID, next)
	}

	current := top.Nodes()
	var trail []string
	for steps := 0; steps < e.maxSteps; steps++ {
		parent := current[0].Parent()
		if parent == nil {
			// current[0] is the tree root (or a synthetic wrapper's only
			// occupant). Nothing encloses it: if the selection already
			// denotes its span, growing is done.
			if sameSpan(current, root) {
				return ErrAtRoot
			}
			parent = root
		}
		trail = append(trail, parent.Type())

		next, err := Climb(current, parent)
		if err != nil {
			if ie, ok := err.(*InternalError); ok {
				ie.Trail = trail
			}
			return err
		}
		if !nodesEqualSpan(next, current) {
			sel, err := selection.NewNodeRange(next...)
			if err != nil {
				return &InternalError{Invariant: err.Error(), Trail: trail}
			}
			return e.commit(sess, sessionID, sel)
		}
		// Same text span through a different node set: keep climbing from
		// the replacement.
		current = next
	}
	return &InternalError{
		Invariant: fmt.Sprintf("grow made no coordinate progress in %d steps", e.maxSteps),
		Trail:     trail,
	}
}

// ShrinkSelection pops the history and restores the previous selection.
// Shrinking past the seed selection is a no-op.
func (e *Engine) ShrinkSelection(sessionID string) error {
	sess, err := e.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	prev, ok := sess.hist.Pop()
	if !ok {
		return nil
	}
	log.Debug().Str("session", sessionID).Stringer("span", prev.Span()).
		Int("depth", sess.hist.Depth()).Msg("selection shrunk")
	sess.view.SetSelection(prev.Span())
	return nil
}

// Depth returns the history depth of a session, 0 when the session does
// not exist.
func (e *Engine) Depth(sessionID string) int {
	e.mu.Lock()
	sess, ok := e.sessions[sessionID]
	e.mu.Unlock()
	if !ok {
		return 0
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.hist.Depth()
}

// EndSession tears down a session's history. Hosts call this when the
// buffer closes or selection mode exits.
func (e *Engine) EndSession(sessionID string) {
	e.mu.Lock()
	delete(e.sessions, sessionID)
	e.mu.Unlock()
}

func (e *Engine) session(id string) (*session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no selection session: %s", id)
	}
	return sess, nil
}

func (e *Engine) commit(sess *session, sessionID string, sel selection.Selection) error {
	sess.hist.Push(sel)
	log.Debug().Str("session", sessionID).Stringer("span", sel.Span()).
		Int("depth", sess.hist.Depth()).Msg("selection grown")
	sess.view.SetSelection(sel.Span())
	return nil
}

// sameSpan reports whether a node run covers exactly one node's span.
func sameSpan(nodes []*sitter.Node, n *sitter.Node) bool {
	first, last := nodes[0], nodes[len(nodes)-1]
	return first.StartByte() == n.StartByte() && last.EndByte() == n.EndByte()
}

// nodesEqualSpan compares two node runs by document coordinates.
func nodesEqualSpan(a, b []*sitter.Node) bool {
	return a[0].StartByte() == b[0].StartByte() &&
		a[len(a)-1].EndByte() == b[len(b)-1].EndByte()
}
