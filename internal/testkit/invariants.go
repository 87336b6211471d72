// Package testkit holds invariant checkers shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/walk"
)

// CheckTokenSpanInvariants verifies structural span rules on a token
// tree:
// 1) the root span covers the file content
// 2) every child span is contained in its parent's span
// 3) sibling spans never regress (children in source order)
func CheckTokenSpanInvariants(tree *token.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Get(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.File != sf.ID || root.Span.Start != 0 || root.Span.End != lenContent {
		return fmt.Errorf("root span %v does not cover content [0,%d)", root.Span, lenContent)
	}
	return checkTokenContainment(tree, tree.Root)
}

func checkTokenContainment(tree *token.Tree, id token.NodeID) error {
	n := tree.Get(id)
	var prevEnd uint32
	for i, c := range n.Children {
		cn := tree.Get(c)
		if cn == nil {
			return fmt.Errorf("node %d has dangling child %d", id, c)
		}
		if !n.Span.Contains(cn.Span) {
			return fmt.Errorf("child span %v escapes parent span %v", cn.Span, n.Span)
		}
		if i > 0 && cn.Span.Start < prevEnd {
			return fmt.Errorf("sibling span %v regresses before offset %d", cn.Span, prevEnd)
		}
		prevEnd = cn.Span.End
		if err := checkTokenContainment(tree, c); err != nil {
			return err
		}
	}
	return nil
}

// CheckASTSpanInvariants verifies that every reachable AST node's span
// contains the spans of its children.
func CheckASTSpanInvariants(b *ast.Builder, root ast.NodeID) error {
	if b == nil || !root.IsValid() {
		return fmt.Errorf("nil builder or root")
	}
	var visit func(id ast.NodeID) error
	visit = func(id ast.NodeID) error {
		n := b.Nodes.Get(id)
		if n == nil {
			return fmt.Errorf("dangling node id %d", id)
		}
		for _, c := range b.Children(id) {
			cn := b.Nodes.Get(c)
			if cn == nil {
				return fmt.Errorf("node %d has dangling child %d", id, c)
			}
			if !cn.Span.Empty() && !n.Span.Contains(cn.Span) {
				return fmt.Errorf("%s span %v escapes %s span %v",
					cn.Kind, cn.Span, n.Kind, n.Span)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root)
}

// CheckWalkerPairing drains a walker and verifies that every node gets
// exactly one enter and one exit event, properly nested.
func CheckWalkerPairing[N comparable](w *walk.Walker[N]) error {
	if w == nil {
		return fmt.Errorf("nil walker")
	}
	var open []N
	entered := map[N]int{}
	exited := map[N]int{}
	for {
		n, entering, ok := w.Step()
		if !ok {
			break
		}
		if entering {
			entered[n]++
			open = append(open, n)
			continue
		}
		exited[n]++
		if len(open) == 0 || open[len(open)-1] != n {
			return fmt.Errorf("exit event for %v does not close the innermost open node", n)
		}
		open = open[:len(open)-1]
	}
	if len(open) != 0 {
		return fmt.Errorf("%d nodes entered but never exited", len(open))
	}
	for n, c := range entered {
		if c != 1 {
			return fmt.Errorf("node %v entered %d times", n, c)
		}
		if exited[n] != 1 {
			return fmt.Errorf("node %v exited %d times", n, exited[n])
		}
	}
	return nil
}
