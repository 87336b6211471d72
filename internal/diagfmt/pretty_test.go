package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/diagfmt"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
)

func lexParse(t *testing.T, input string) (*source.FileSet, *ast.Builder, parser.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("story.tw", []byte(input))
	bag := diag.NewBag(64)
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	b := ast.NewBuilder(ast.Hints{})
	res, err := parser.Parse(fs, tree, b, parser.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bag.Merge(res.Bag)
	return fs, b, res, bag
}

func TestPrettyFormat(t *testing.T) {
	fs, _, _, bag := lexParse(t, "(print: \"oops\n)")
	bag.Sort()

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Context: true})
	out := buf.String()

	if !strings.Contains(out, "story.tw:1:9: ERROR LEX1002") {
		t.Errorf("missing header line in:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret underline in:\n%s", out)
	}
}

func TestPrettyNoColorByDefault(t *testing.T) {
	fs, _, _, bag := lexParse(t, "(a: ])")

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("escape sequences without Color")
	}
}

func TestJSONRoundTrips(t *testing.T) {
	fs, _, _, bag := lexParse(t, "[unclosed")

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) == 0 {
		t.Fatal("no diagnostics in output")
	}
	if decoded[0]["code"] != "LEX1007" {
		t.Errorf("code = %v", decoded[0]["code"])
	}
	if decoded[0]["pos"] == nil {
		t.Error("positions requested but absent")
	}
}

func TestDumpTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("(if: true)[x]"))
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := diagfmt.DumpTokensPretty(&buf, tree, fs); err != nil {
		t.Fatalf("DumpTokensPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Root", "Macro \"if\"", "Hook"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Children are indented under their interior.
	if !strings.Contains(out, "  Text") && !strings.Contains(out, "  Macro") {
		t.Errorf("missing indentation:\n%s", out)
	}
}

func TestDumpTokensPrettyExpandsMacros(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("(print: 2 + 3 * 4)"))
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := diagfmt.DumpTokensPretty(&buf, tree, fs); err != nil {
		t.Fatalf("DumpTokensPretty: %v", err)
	}
	out := buf.String()
	// The macro interior shows the resolved expression tree, indented
	// one level past the macro token line.
	for _, want := range []string{"Macro \"print\"", "    Macro (print:)", "Binary +", "Binary *", "Lit 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Raw code tokens stay hidden behind the expansion.
	for _, reject := range []string{"MacroFront", "Number", "Operator"} {
		if strings.Contains(out, reject) {
			t.Errorf("raw token %q leaked into output:\n%s", reject, out)
		}
	}
}

func TestDumpTokensJSONExpandsMacros(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("(print: 2 + 3 * 4)"))
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := diagfmt.DumpTokensJSON(&buf, tree); err != nil {
		t.Fatalf("DumpTokensJSON: %v", err)
	}
	var root struct {
		Children []struct {
			Kind     string `json:"kind"`
			Expanded *struct {
				Kind     string `json:"kind"`
				Children []struct {
					Kind  string `json:"kind"`
					Label string `json:"label"`
				} `json:"children"`
			} `json:"expanded"`
			Children []json.RawMessage `json:"children"`
		} `json:"children"`
	}
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Kind != "Macro" {
		t.Fatalf("structure = %+v", root)
	}
	macro := root.Children[0]
	if macro.Expanded == nil || macro.Expanded.Kind != "Macro" {
		t.Fatalf("macro not expanded: %+v", macro)
	}
	if len(macro.Children) != 0 {
		t.Errorf("raw token children alongside expansion: %+v", macro)
	}
	if len(macro.Expanded.Children) != 1 || macro.Expanded.Children[0].Kind != "Binary" ||
		macro.Expanded.Children[0].Label != "+" {
		t.Errorf("expanded argument = %+v", macro.Expanded.Children)
	}
}

func TestDumpTokensJSONNesting(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tw", []byte("[a]"))
	tree := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := diagfmt.DumpTokensJSON(&buf, tree); err != nil {
		t.Fatalf("DumpTokensJSON: %v", err)
	}
	var root struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind string `json:"kind"`
		} `json:"children"`
	}
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root.Kind != "Root" || len(root.Children) != 1 || root.Children[0].Kind != "Hook" {
		t.Errorf("structure = %+v", root)
	}
}

func TestDumpASTPretty(t *testing.T) {
	fs, b, res, _ := lexParse(t, "(set: $a to 2 + 3)")

	var buf bytes.Buffer
	if err := diagfmt.DumpASTPretty(&buf, b, res.Root, fs); err != nil {
		t.Fatalf("DumpASTPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Flow", "Macro (set:)", "Binary to", "Binary +", "Variable $a"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
