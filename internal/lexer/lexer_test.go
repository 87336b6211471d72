package lexer_test

import (
	"testing"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

func lex(t *testing.T, input string) (*token.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tw", []byte(input))
	bag := diag.NewBag(64)
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, bag
}

func childKinds(tree *token.Tree, id token.NodeID) []token.Kind {
	kinds := make([]token.Kind, 0, 8)
	for _, c := range tree.Get(id).Children {
		kinds = append(kinds, tree.Get(c).Kind)
	}
	return kinds
}

func wantKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind %d = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestPlainTextAndBreaks(t *testing.T) {
	tree, bag := lex(t, "one\ntwo")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	wantKinds(t, childKinds(tree, tree.Root), []token.Kind{token.Text, token.Br, token.Text})

	root := tree.Get(tree.Root)
	first := tree.Get(root.Children[0])
	if first.Text != "one" || first.Span.Start != 0 || first.Span.End != 3 {
		t.Errorf("first text = %q span %v", first.Text, first.Span)
	}
}

func TestMacroTreeAndPairing(t *testing.T) {
	tree, bag := lex(t, "(set: $a to 1)")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	root := tree.Get(tree.Root)
	if len(root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Children))
	}
	macro := tree.Get(root.Children[0])
	if macro.Kind != token.Macro || macro.Name != "set" {
		t.Fatalf("macro = %s %q", macro.Kind, macro.Name)
	}
	if macro.InnerMode != token.ModeCode {
		t.Errorf("InnerMode = %s", macro.InnerMode)
	}
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.MacroFront, token.Variable, token.To, token.Number, token.GroupingBack,
	})

	front := macro.Children[0]
	back := macro.Children[len(macro.Children)-1]
	if tree.Get(front).Match != back || tree.Get(back).Match != front {
		t.Error("delimiters not paired both ways")
	}
	if macro.Span.Start != 0 || macro.Span.End != 14 {
		t.Errorf("macro span = %v", macro.Span)
	}
}

func TestMacroChainWithLeadingHook(t *testing.T) {
	tree, _ := lex(t, "(set: $a to 1)(if: true)[x]")
	root := tree.Get(tree.Root)
	wantKinds(t, childKinds(tree, tree.Root), []token.Kind{token.Macro, token.Macro, token.Hook})

	hook := tree.Get(root.Children[2])
	if !hook.Leading {
		t.Error("hook adjacent to macro should be flagged Leading")
	}
}

func TestDetachedHookNotLeading(t *testing.T) {
	tree, _ := lex(t, "(if: true) [x]")
	root := tree.Get(tree.Root)
	hook := tree.Get(root.Children[len(root.Children)-1])
	if hook.Kind != token.Hook || hook.Leading {
		t.Errorf("hook = %s Leading=%v, want non-leading Hook", hook.Kind, hook.Leading)
	}
}

func TestNestedHooks(t *testing.T) {
	tree, bag := lex(t, "[a[b]c]")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	outer := tree.Get(root.Children[0])
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.HookFront, token.Text, token.Hook, token.Text, token.HookBack,
	})
	inner := tree.Get(outer.Children[2])
	if inner.Span.Start != 2 || inner.Span.End != 5 {
		t.Errorf("inner span = %v", inner.Span)
	}
	if outer.Span.Start != 0 || outer.Span.End != 7 {
		t.Errorf("outer span = %v", outer.Span)
	}
}

func TestLinkPieces(t *testing.T) {
	tree, bag := lex(t, "[[Go north->Forest]]")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	link := tree.Get(root.Children[0])
	if link.Kind != token.Link {
		t.Fatalf("kind = %s", link.Kind)
	}
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.LinkFront, token.Text, token.LinkSep, token.Text, token.LinkBack,
	})
	sep := tree.Get(link.Children[2])
	if sep.Text != "->" {
		t.Errorf("sep = %q", sep.Text)
	}
}

func TestDoubleBracketWithoutCloserIsHooks(t *testing.T) {
	tree, _ := lex(t, "[[x\n]]")
	root := tree.Get(tree.Root)
	outer := tree.Get(root.Children[0])
	if outer.Kind != token.Hook {
		t.Fatalf("kind = %s, want Hook when ]] is not on the same line", outer.Kind)
	}
	inner := tree.Get(outer.Children[1])
	if inner.Kind != token.Hook {
		t.Fatalf("inner kind = %s", inner.Kind)
	}
}

func TestHookNamePrepended(t *testing.T) {
	tree, _ := lex(t, "|aside>[content]")
	root := tree.Get(tree.Root)
	hook := tree.Get(root.Children[0])
	if hook.Kind != token.Hook || hook.Name != "aside" {
		t.Fatalf("hook = %s %q", hook.Kind, hook.Name)
	}
	if hook.Span.Start != 0 {
		t.Errorf("hook should start at the marker, span = %v", hook.Span)
	}
	if k := tree.Get(hook.Children[0]).Kind; k != token.HookMarkPre {
		t.Errorf("first child = %s, want HookMarkPre", k)
	}
}

func TestHookNameAppended(t *testing.T) {
	tree, bag := lex(t, "[content]<aside|")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	hook := tree.Get(root.Children[0])
	if hook.Name != "aside" {
		t.Fatalf("hook name = %q", hook.Name)
	}
	if hook.Span.End != 16 {
		t.Errorf("span not extended over the marker: %v", hook.Span)
	}
	if k := tree.Get(hook.Children[len(hook.Children)-1]).Kind; k != token.HookMarkPost {
		t.Errorf("last child = %s, want HookMarkPost", k)
	}
}

func TestStrayHookMark(t *testing.T) {
	_, bag := lex(t, "text <aside| more")
	// Without a just-closed hook, <aside| is ordinary text.
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestVerbatimSwallowsMarkup(t *testing.T) {
	tree, bag := lex(t, "``(set:) [x] `tick` ``")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	if len(root.Children) != 1 {
		t.Fatalf("root children = %v", childKinds(tree, tree.Root))
	}
	v := tree.Get(root.Children[0])
	if v.Kind != token.Verbatim || v.Span.End != 22 {
		t.Errorf("verbatim = %s %v", v.Kind, v.Span)
	}
	// A verbatim span is a leaf, not an interior with its own mode.
	if len(v.Children) != 0 || v.InnerMode != token.ModeMarkup {
		t.Errorf("verbatim is not a plain leaf: children=%d mode=%s", len(v.Children), v.InnerMode)
	}
}

func TestCommentSwallowsMarkup(t *testing.T) {
	tree, _ := lex(t, "a<!-- [not a hook] -->b")
	wantKinds(t, childKinds(tree, tree.Root), []token.Kind{token.Text, token.Comment, token.Text})
}

func TestHeadingAndRule(t *testing.T) {
	tree, _ := lex(t, "## Title\n---\ntext")
	root := tree.Get(tree.Root)
	h := tree.Get(root.Children[0])
	if h.Kind != token.Heading || h.Name != "2" {
		t.Fatalf("heading = %s %q", h.Kind, h.Name)
	}
	kinds := childKinds(tree, tree.Root)
	wantKinds(t, kinds, []token.Kind{
		token.Heading, token.Text, token.Br, token.HR, token.Br, token.Text,
	})
}

func TestDashesMidLineAreText(t *testing.T) {
	tree, _ := lex(t, "a --- b")
	wantKinds(t, childKinds(tree, tree.Root), []token.Kind{token.Text})
}

func TestStyleMarks(t *testing.T) {
	tree, _ := lex(t, "''b''//i//~~s~~^^u^^")
	wantKinds(t, childKinds(tree, tree.Root), []token.Kind{
		token.StrongMark, token.Text, token.StrongMark,
		token.EmMark, token.Text, token.EmMark,
		token.DelMark, token.Text, token.DelMark,
		token.SupMark, token.Text, token.SupMark,
	})
}

func TestHTMLTag(t *testing.T) {
	tree, _ := lex(t, `<div class="x">hi</div>`)
	root := tree.Get(tree.Root)
	wantKinds(t, childKinds(tree, tree.Root), []token.Kind{token.Tag, token.Text, token.Tag})
	if name := tree.Get(root.Children[0]).Name; name != "div" {
		t.Errorf("tag name = %q", name)
	}
	if name := tree.Get(root.Children[2]).Name; name != "div" {
		t.Errorf("closing tag name = %q", name)
	}
}

func TestVariablesInMarkup(t *testing.T) {
	tree, _ := lex(t, "hi $name and _tmp.")
	root := tree.Get(tree.Root)
	kinds := childKinds(tree, tree.Root)
	wantKinds(t, kinds, []token.Kind{
		token.Text, token.Variable, token.Text, token.TempVariable, token.Text,
	})
	if n := tree.Get(root.Children[1]).Name; n != "name" {
		t.Errorf("variable name = %q", n)
	}
}

func TestCodeOperators(t *testing.T) {
	tree, bag := lex(t, "(a: $x is not in _y, 2 <= 3 and ...$rest)")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.MacroFront, token.Variable, token.IsNotIn, token.TempVariable,
		token.Comma, token.Number, token.Le, token.Number, token.And,
		token.Spread, token.Variable, token.GroupingBack,
	})
}

func TestMultiwordOperators(t *testing.T) {
	cases := []struct {
		src  string
		want token.Kind
	}{
		{"(a: 1 is 2)", token.Is},
		{"(a: 1 is not 2)", token.IsNot},
		{"(a: 1 is a num)", token.IsA},
		{"(a: 1 is an odd)", token.IsA},
		{"(a: 1 is not a num)", token.IsNotA},
		{"(a: 1 is in $l)", token.IsIn},
		{"(a: $l does not contain 1)", token.DoesNotContain},
		{"(a: $s does not match $p)", token.DoesNotMatch},
		{"(a: 1 of $l)", token.Belonging},
		{"(a: 1 of it)", token.BelongingIt},
	}
	for _, tc := range cases {
		tree, _ := lex(t, tc.src)
		macro := tree.Get(tree.Root)
		kinds := childKinds(tree, macro.Children[0])
		found := false
		for _, k := range kinds {
			if k == tc.want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%q: kinds %v missing %s", tc.src, kinds, tc.want)
		}
	}
}

func TestPossessiveAndTypeSignature(t *testing.T) {
	tree, _ := lex(t, "(set: num-type $n to $box's size)")
	root := tree.Get(tree.Root)
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.MacroFront, token.Identifier, token.TypeSignature, token.Variable,
		token.To, token.Variable, token.Possessive, token.Identifier,
		token.GroupingBack,
	})
}

func TestNegativeNumberVersusSubtraction(t *testing.T) {
	tree, _ := lex(t, "(a: -5, 2-3)")
	root := tree.Get(tree.Root)
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.MacroFront, token.Number, token.Comma,
		token.Number, token.Subtraction, token.Number,
		token.GroupingBack,
	})
	first := tree.Get(tree.Get(root.Children[0]).Children[1])
	if first.Text != "-5" {
		t.Errorf("signed literal = %q", first.Text)
	}
}

func TestStringsAndEscapes(t *testing.T) {
	tree, bag := lex(t, `(print: "a\"b]" + 'c')`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	kinds := childKinds(tree, root.Children[0])
	wantKinds(t, kinds, []token.Kind{
		token.MacroFront, token.String, token.Addition, token.String, token.GroupingBack,
	})
}

func TestUnterminatedStringRecovers(t *testing.T) {
	tree, bag := lex(t, "(print: \"abc\n)")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing LexUnterminatedString: %v", bag.Items())
	}
	// The macro still closes; scanning continued past the bad literal.
	root := tree.Get(tree.Root)
	macro := tree.Get(root.Children[0])
	if macro.Unclosed {
		t.Error("macro should close after string recovery")
	}
}

func TestBadVariableSigil(t *testing.T) {
	cases := []string{"(set: $ to 1)", "(set: _ to 1)"}
	for _, src := range cases {
		_, bag := lex(t, src)
		found := false
		for _, d := range bag.Items() {
			if d.Code == diag.LexBadVariableName {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: missing LexBadVariableName: %v", src, bag.Items())
		}
	}
}

func TestUnmatchedCloserInsideMacro(t *testing.T) {
	_, bag := lex(t, "(set: $a ] )")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnmatchedDelimiter {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing LexUnmatchedDelimiter: %v", bag.Items())
	}
}

func TestUnclosedInteriorsFlagged(t *testing.T) {
	tree, bag := lex(t, "[open (set: $a")
	root := tree.Get(tree.Root)
	hook := tree.Get(root.Children[0])
	if !hook.Unclosed {
		t.Error("hook not flagged unclosed")
	}
	macro := tree.Get(hook.Children[len(hook.Children)-1])
	if macro.Kind != token.Macro || !macro.Unclosed {
		t.Errorf("macro = %s Unclosed=%v", macro.Kind, macro.Unclosed)
	}
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	wantHook, wantMacro := false, false
	for _, c := range codes {
		if c == diag.LexUnclosedHook {
			wantHook = true
		}
		if c == diag.LexUnclosedMacro {
			wantMacro = true
		}
	}
	if !wantHook || !wantMacro {
		t.Errorf("codes = %v", codes)
	}
	if hook.Span.End != 14 {
		t.Errorf("unclosed hook span should reach EOF: %v", hook.Span)
	}
}

func TestClosersDoNotCrossStrings(t *testing.T) {
	tree, bag := lex(t, `(print: ")")`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	root := tree.Get(tree.Root)
	macro := tree.Get(root.Children[0])
	if macro.Unclosed {
		t.Error("paren inside string must not close the macro")
	}
	if macro.Span.End != 12 {
		t.Errorf("macro span = %v", macro.Span)
	}
}

func TestGroupingInsideMacro(t *testing.T) {
	tree, _ := lex(t, "(a: (1 + 2) * 3)")
	root := tree.Get(tree.Root)
	macro := tree.Get(root.Children[0])
	wantKinds(t, childKinds(tree, root.Children[0]), []token.Kind{
		token.MacroFront, token.Grouping, token.Multiplication, token.Number, token.GroupingBack,
	})
	group := tree.Get(macro.Children[1])
	wantKinds(t, childKinds(tree, macro.Children[1]), []token.Kind{
		token.GroupingFront, token.Number, token.Addition, token.Number, token.GroupingBack,
	})
	if group.InnerMode != token.ModeCode {
		t.Errorf("grouping InnerMode = %s", group.InnerMode)
	}
}

func TestSuspendedPull(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tw", []byte("a[b]"))
	lx := lexer.New(fs.Get(id), lexer.Options{})

	var kinds []token.Kind
	for {
		it, ok := lx.NextItem()
		if !ok {
			break
		}
		kinds = append(kinds, it.Kind)
	}
	wantKinds(t, kinds, []token.Kind{
		token.Text, token.HookFront, token.Text, token.HookBack,
	})
	if lx.Tree().Get(lx.Tree().Root) == nil {
		t.Fatal("tree missing after pull loop")
	}
}
