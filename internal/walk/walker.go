// Package walk provides one generic, lazy depth-first walker shared by
// the token tree and the AST. Traversal uses an explicit stack of
// (node, next-child) frames; no recursion, so depth is bounded only by
// memory. Each node produces exactly one enter and one exit event,
// properly nested.
package walk

import (
	"errors"
)

var (
	// ErrNilChildren is returned when no children function is supplied.
	ErrNilChildren = errors.New("walk: nil children function")
	// ErrNilRoot is returned by the tree constructors on an absent root.
	ErrNilRoot = errors.New("walk: nil or invalid root")
)

type frame[N comparable] struct {
	node N
	next int
}

// Walker traverses an immutable tree lazily. The zero value is not
// usable; construct with New, Tokens or AST.
type Walker[N comparable] struct {
	root     N
	children func(N) []N
	stack    []frame[N]
	started  bool
	cur      N
}

// New builds a walker over root using children to enumerate each
// node's ordered children.
func New[N comparable](root N, children func(N) []N) (*Walker[N], error) {
	if children == nil {
		return nil, ErrNilChildren
	}
	return &Walker[N]{root: root, children: children}, nil
}

// Step yields the next event: (node, true) on entering, (node, false)
// on exiting. The third result is false once the walk is exhausted.
func (w *Walker[N]) Step() (N, bool, bool) {
	if !w.started {
		w.started = true
		w.stack = append(w.stack, frame[N]{node: w.root})
		w.cur = w.root
		return w.root, true, true
	}
	if len(w.stack) == 0 {
		var zero N
		return zero, false, false
	}

	top := &w.stack[len(w.stack)-1]
	kids := w.children(top.node)
	if top.next < len(kids) {
		child := kids[top.next]
		top.next++
		w.stack = append(w.stack, frame[N]{node: child})
		w.cur = child
		return child, true, true
	}

	node := top.node
	w.stack = w.stack[:len(w.stack)-1]
	w.cur = node
	return node, false, true
}

// Skip is Step for a caller that has seen an enter event and wants no
// part of the subtree: the most recently entered node is popped and its
// exit event returned, without descending.
func (w *Walker[N]) Skip() (N, bool, bool) {
	if !w.started || len(w.stack) == 0 {
		return w.Step()
	}
	node := w.stack[len(w.stack)-1].node
	w.stack = w.stack[:len(w.stack)-1]
	w.cur = node
	return node, false, true
}

// Reset restarts the walk from the root. The tree is immutable, so the
// replay is identical.
func (w *Walker[N]) Reset() {
	w.stack = w.stack[:0]
	w.started = false
	var zero N
	w.cur = zero
}

// More reports whether Step has events left to yield.
func (w *Walker[N]) More() bool {
	return !w.started || len(w.stack) > 0
}

// Current returns the node of the most recent event, or the zero value
// before the first Step.
func (w *Walker[N]) Current() N {
	return w.cur
}
