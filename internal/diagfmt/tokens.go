package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quill/internal/ast"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/walk"
)

// DumpTokensPretty writes the token tree as an indented outline, one
// node per line with kind, name or text, and position. Macro interiors
// are re-parsed and shown as their resolved AST instead of raw code
// tokens.
func DumpTokensPretty(w io.Writer, tree *token.Tree, fs *source.FileSet) error {
	walker, err := walk.Tokens(tree)
	if err != nil {
		return err
	}
	depth := 0
	for {
		id, entering, ok := walker.Step()
		if !ok {
			return nil
		}
		if !entering {
			depth--
			continue
		}
		n := tree.Get(id)
		fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Kind)
		if n.Name != "" {
			fmt.Fprintf(w, " %q", n.Name)
		} else if len(n.Children) == 0 && n.Text != "" {
			fmt.Fprintf(w, " %q", clip(n.Text, 32))
		}
		start, end := fs.Resolve(n.Span)
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if n.Unclosed {
			fmt.Fprint(w, " (unclosed)")
		}
		fmt.Fprintln(w)
		if n.Kind == token.Macro {
			eb := ast.NewBuilder(ast.Hints{})
			if res, perr := parser.ParseMacro(tree, id, eb, parser.Options{}); perr == nil {
				if err := writeASTOutline(w, eb, res.Root, fs, depth+1); err != nil {
					return err
				}
				walker.Skip()
				continue
			}
		}
		depth++
	}
}

type tokenJSON struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name,omitempty"`
	Text     string       `json:"text,omitempty"`
	Span     source.Span  `json:"span"`
	Unclosed bool         `json:"unclosed,omitempty"`
	Expanded *astJSON     `json:"expanded,omitempty"`
	Children []*tokenJSON `json:"children,omitempty"`
}

// DumpTokensJSON writes the token tree as one nested JSON object.
// Macro nodes carry their resolved AST under "expanded" in place of
// raw code token children.
func DumpTokensJSON(w io.Writer, tree *token.Tree) error {
	walker, err := walk.Tokens(tree)
	if err != nil {
		return err
	}

	var root *tokenJSON
	var stack []*tokenJSON
	for {
		id, entering, ok := walker.Step()
		if !ok {
			break
		}
		if !entering {
			stack = stack[:len(stack)-1]
			continue
		}
		n := tree.Get(id)
		jn := &tokenJSON{
			Kind:     n.Kind.String(),
			Name:     n.Name,
			Span:     n.Span,
			Unclosed: n.Unclosed,
		}
		if len(n.Children) == 0 {
			jn.Text = n.Text
		}
		if len(stack) == 0 {
			root = jn
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, jn)
		}
		if n.Kind == token.Macro {
			eb := ast.NewBuilder(ast.Hints{})
			if res, perr := parser.ParseMacro(tree, id, eb, parser.Options{}); perr == nil {
				if exp, jerr := astTreeJSON(eb, res.Root); jerr == nil {
					jn.Expanded = exp
					walker.Skip()
					continue
				}
			}
		}
		stack = append(stack, jn)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
