package climb

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoNode reports that begin found nothing under the cursor. It is a
// user-visible condition, not a defect; no session state is touched.
var ErrNoNode = errors.New("nothing to select under cursor")

// ErrAtRoot reports that grow found no further expansion: the selection
// already spans the tree root. Callers show it as a status, never as a
// failure.
var ErrAtRoot = errors.New("no further expansion")

// InternalError is a programming-error class failure: a broken engine
// invariant or a rule-table bug. It aborts the operation before any
// history mutation and is never shown as a recoverable condition.
type InternalError struct {
	Invariant string
	Trail     []string // parent node types visited by the grow loop
}

func (e *InternalError) Error() string {
	if len(e.Trail) == 0 {
		return fmt.Sprintf("climb invariant violated: %s", e.Invariant)
	}
	return fmt.Sprintf("climb invariant violated: %s (visited %s)",
		e.Invariant, strings.Join(e.Trail, " -> "))
}

func internalf(format string, args ...any) error {
	return &InternalError{Invariant: fmt.Sprintf(format, args...)}
}
