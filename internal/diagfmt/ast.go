package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/walk"
)

// nodeLabel renders one AST node's payload for display.
func nodeLabel(b *ast.Builder, id ast.NodeID) string {
	n := b.Nodes.Get(id)
	switch n.Kind {
	case ast.NodeText:
		data, _ := b.Nodes.Text(id)
		return fmt.Sprintf("%q", clip(data.Text, 32))
	case ast.NodeStyle:
		data, _ := b.Nodes.Style(id)
		label := data.Mark.String()
		if data.Unclosed {
			label += " (unclosed)"
		}
		return label
	case ast.NodeHeading:
		data, _ := b.Nodes.Heading(id)
		return fmt.Sprintf("level=%d", data.Level)
	case ast.NodeTag:
		data, _ := b.Nodes.Tag(id)
		if data.Closing {
			return "/" + data.Name
		}
		return data.Name
	case ast.NodeVerbatim:
		data, _ := b.Nodes.Verbatim(id)
		return fmt.Sprintf("%q", clip(data.Text, 32))
	case ast.NodeLink:
		data, _ := b.Nodes.Link(id)
		return fmt.Sprintf("%q -> %q", data.Text, data.Target)
	case ast.NodeLit:
		data, _ := b.Nodes.Lit(id)
		return data.Raw
	case ast.NodeVariable:
		data, _ := b.Nodes.Variable(id)
		if data.Temp {
			return "_" + data.Name
		}
		return "$" + data.Name
	case ast.NodeIdent:
		data, _ := b.Nodes.Ident(id)
		return data.Name
	case ast.NodeHookRef:
		data, _ := b.Nodes.HookRef(id)
		return "?" + data.Name
	case ast.NodeUnary:
		data, _ := b.Nodes.Unary(id)
		if data.Postfix {
			return data.Op.String() + " (postfix)"
		}
		return data.Op.String()
	case ast.NodeBinary:
		data, _ := b.Nodes.Binary(id)
		return data.Op.String()
	case ast.NodeMacro:
		data, _ := b.Nodes.Macro(id)
		return "(" + data.Raw + ":)"
	case ast.NodeHook:
		data, _ := b.Nodes.Hook(id)
		var parts []string
		if data.Name != "" {
			parts = append(parts, "|"+data.Name)
		}
		if data.Hidden {
			parts = append(parts, "hidden")
		}
		if data.Unclosed {
			parts = append(parts, "unclosed")
		}
		return strings.Join(parts, " ")
	case ast.NodeMissing:
		data, _ := b.Nodes.Missing(id)
		return fmt.Sprintf("%q", clip(data.Text, 32))
	}
	return ""
}

// DumpASTPretty writes the AST as an indented outline driven by the
// shared walker.
func DumpASTPretty(w io.Writer, b *ast.Builder, root ast.NodeID, fs *source.FileSet) error {
	return writeASTOutline(w, b, root, fs, 0)
}

// writeASTOutline renders the subtree at root with every line indented
// by base extra levels, so callers can splice it into another outline.
func writeASTOutline(w io.Writer, b *ast.Builder, root ast.NodeID, fs *source.FileSet, base int) error {
	walker, err := walk.AST(b, root)
	if err != nil {
		return err
	}
	depth := base
	for {
		id, entering, ok := walker.Step()
		if !ok {
			return nil
		}
		if !entering {
			depth--
			continue
		}
		n := b.Nodes.Get(id)
		fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Kind)
		if label := nodeLabel(b, id); label != "" {
			fmt.Fprintf(w, " %s", label)
		}
		start, end := fs.Resolve(n.Span)
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
		depth++
	}
}

type astJSON struct {
	Kind     string      `json:"kind"`
	Label    string      `json:"label,omitempty"`
	Span     source.Span `json:"span"`
	Children []*astJSON  `json:"children,omitempty"`
}

// DumpASTJSON writes the AST subtree as one nested JSON object.
func DumpASTJSON(w io.Writer, b *ast.Builder, root ast.NodeID) error {
	top, err := astTreeJSON(b, root)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(top)
}

func astTreeJSON(b *ast.Builder, root ast.NodeID) (*astJSON, error) {
	walker, err := walk.AST(b, root)
	if err != nil {
		return nil, err
	}

	var top *astJSON
	var stack []*astJSON
	for {
		id, entering, ok := walker.Step()
		if !ok {
			break
		}
		if !entering {
			stack = stack[:len(stack)-1]
			continue
		}
		n := b.Nodes.Get(id)
		jn := &astJSON{
			Kind:  n.Kind.String(),
			Label: nodeLabel(b, id),
			Span:  n.Span,
		}
		if len(stack) == 0 {
			top = jn
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, jn)
		}
		stack = append(stack, jn)
	}
	return top, nil
}
