package selection

// History is the append-only stack of past selections for one session.
// Begin seeds it with one entry, grow pushes, shrink pops. It never drops
// below depth 1, so an unbalanced shrink is harmless.
type History struct {
	stack []Selection
}

// NewHistory creates a history seeded with the initial selection.
func NewHistory(seed Selection) *History {
	return &History{stack: []Selection{seed}}
}

// Push appends a selection.
func (h *History) Push(s Selection) {
	h.stack = append(h.stack, s)
}

// Pop discards the top selection and returns the newly exposed one.
// Popping at depth 1 is a no-op and reports false.
func (h *History) Pop() (Selection, bool) {
	if len(h.stack) <= 1 {
		return Selection{}, false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.stack[len(h.stack)-1], true
}

// Peek returns the current top of the stack.
func (h *History) Peek() Selection {
	return h.stack[len(h.stack)-1]
}

// Depth returns the number of stacked selections.
func (h *History) Depth() int {
	return len(h.stack)
}
