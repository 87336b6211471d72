package walk_test

import (
	"testing"

	"quill/internal/ast"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/walk"
)

// staticTree is a tiny fixed tree: 1 -> (2 -> (4, 5), 3).
var staticKids = map[int][]int{
	1: {2, 3},
	2: {4, 5},
}

func staticChildren(n int) []int { return staticKids[n] }

type event struct {
	node     int
	entering bool
}

func drain(t *testing.T, w *walk.Walker[int]) []event {
	t.Helper()
	var out []event
	for {
		n, entering, ok := w.Step()
		if !ok {
			return out
		}
		out = append(out, event{n, entering})
	}
}

func TestEnterExitPairing(t *testing.T) {
	w, err := walk.New(1, staticChildren)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := drain(t, w)
	want := []event{
		{1, true}, {2, true}, {4, true}, {4, false}, {5, true}, {5, false},
		{2, false}, {3, true}, {3, false}, {1, false},
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProperNesting(t *testing.T) {
	w, _ := walk.New(1, staticChildren)
	var open []int
	for {
		n, entering, ok := w.Step()
		if !ok {
			break
		}
		if entering {
			open = append(open, n)
		} else {
			if len(open) == 0 || open[len(open)-1] != n {
				t.Fatalf("exit of %d does not match innermost open %v", n, open)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		t.Fatalf("unbalanced events, still open: %v", open)
	}
}

func TestSkipPrunesSubtree(t *testing.T) {
	w, _ := walk.New(1, staticChildren)
	w.Step() // enter 1
	n, entering, ok := w.Step()
	if !ok || !entering || n != 2 {
		t.Fatalf("second event = %d %v", n, entering)
	}
	n, entering, ok = w.Skip()
	if !ok || entering || n != 2 {
		t.Fatalf("Skip = %d entering=%v", n, entering)
	}
	// 4 and 5 must not appear.
	got := drain(t, w)
	want := []event{{3, true}, {3, false}, {1, false}}
	if len(got) != len(want) {
		t.Fatalf("after skip: %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResetReplaysIdentically(t *testing.T) {
	w, _ := walk.New(1, staticChildren)
	first := drain(t, w)
	w.Reset()
	second := drain(t, w)
	if len(first) != len(second) {
		t.Fatalf("replay lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("replay event %d = %v, want %v", i, second[i], first[i])
		}
	}
}

func TestMoreAndCurrent(t *testing.T) {
	w, _ := walk.New(1, staticChildren)
	if !w.More() {
		t.Fatal("More before start")
	}
	w.Step()
	if w.Current() != 1 {
		t.Fatalf("Current = %d", w.Current())
	}
	drain(t, w)
	if w.More() {
		t.Fatal("More after exhaustion")
	}
}

func TestNilContract(t *testing.T) {
	if _, err := walk.New(1, nil); err == nil {
		t.Error("nil children accepted")
	}
	if _, err := walk.Tokens(nil); err == nil {
		t.Error("nil tree accepted")
	}
	if _, err := walk.AST(nil, ast.NoNodeID); err == nil {
		t.Error("nil builder accepted")
	}
	b := ast.NewBuilder(ast.Hints{})
	if _, err := walk.AST(b, ast.NodeID(42)); err == nil {
		t.Error("out-of-range root accepted")
	}
}

func TestTokensWalkLeavesInSourceOrder(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("a(if: $x)[b]"))
	w, tree, err := walk.TokensSource(fs.Get(id), lexer.Options{})
	if err != nil {
		t.Fatalf("TokensSource: %v", err)
	}

	var lastStart uint32
	for {
		n, entering, ok := w.Step()
		if !ok {
			break
		}
		if !entering {
			continue
		}
		node := tree.Get(n)
		if len(node.Children) > 0 {
			continue
		}
		if node.Span.Start < lastStart {
			t.Fatalf("leaf at %d entered after leaf at %d", node.Span.Start, lastStart)
		}
		lastStart = node.Span.Start
	}
}

func TestASTWalk(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("(set: $a to 1)[x]"))
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{})
	b := ast.NewBuilder(ast.Hints{})
	res, err := parser.Parse(fs, tree, b, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	w, err := walk.AST(b, res.Root)
	if err != nil {
		t.Fatalf("AST: %v", err)
	}
	counts := map[ast.NodeKind]int{}
	for {
		n, entering, ok := w.Step()
		if !ok {
			break
		}
		if entering {
			counts[b.Nodes.Get(n).Kind]++
		}
	}
	if counts[ast.NodeMacro] != 1 || counts[ast.NodeHook] != 1 || counts[ast.NodeBinary] != 1 {
		t.Errorf("kind counts = %v", counts)
	}
}
