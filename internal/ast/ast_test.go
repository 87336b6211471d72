package ast_test

import (
	"testing"

	"quill/internal/ast"
	"quill/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestArenaOneBased(t *testing.T) {
	a := ast.NewArena[int](4)
	if got := a.Get(0); got != nil {
		t.Fatal("Get(0) should be nil")
	}
	first := a.Allocate(7)
	if first != 1 {
		t.Fatalf("first index = %d, want 1", first)
	}
	if *a.Get(first) != 7 {
		t.Fatalf("Get(%d) = %d", first, *a.Get(first))
	}
	if a.Get(99) != nil {
		t.Fatal("out-of-range Get should be nil")
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	txt := b.Nodes.NewText(span(0, 3), "abc")

	if _, ok := b.Nodes.Text(txt); !ok {
		t.Fatal("Text accessor rejected a text node")
	}
	if _, ok := b.Nodes.Macro(txt); ok {
		t.Fatal("Macro accessor accepted a text node")
	}
	if _, ok := b.Nodes.Text(ast.NoNodeID); ok {
		t.Fatal("accessor accepted NoNodeID")
	}
}

func TestMacroChildrenOrder(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	name := b.Names.Intern("set")
	m := b.Nodes.NewMacro(span(0, 14), name, "set")
	arg := b.Nodes.NewVariable(span(6, 8), "a", false)
	chained := b.Nodes.NewMacro(span(14, 24), b.Names.Intern("if"), "if")
	hook := b.Nodes.NewHook(span(24, 27))

	data, _ := b.Nodes.Macro(m)
	data.Args = append(data.Args, arg)
	data.Chain = append(data.Chain, chained)
	data.Hook = hook

	kids := b.Children(m)
	want := []ast.NodeID{arg, chained, hook}
	if len(kids) != len(want) {
		t.Fatalf("children = %v, want %v", kids, want)
	}
	for i := range want {
		if kids[i] != want[i] {
			t.Fatalf("child %d = %d, want %d", i, kids[i], want[i])
		}
	}
}

func TestLeafChildrenNil(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	br := b.Nodes.NewBr(span(0, 1))
	lit := b.Nodes.NewLit(span(0, 2), ast.LitNumber, "42")
	for _, id := range []ast.NodeID{br, lit, ast.NoNodeID} {
		if kids := b.Children(id); kids != nil {
			t.Errorf("Children(%d) = %v, want nil", id, kids)
		}
	}
}
