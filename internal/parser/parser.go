// Package parser folds a token tree into the typed AST: flow lowering,
// macro chain folding, attached hooks, and operator-precedence
// expressions. Malformed input degrades to placeholder nodes with
// diagnostics; only caller misuse returns an error.
package parser

import (
	"errors"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Options configures a parse run.
type Options struct {
	// Reporter additionally receives every diagnostic; the Result bag
	// collects them regardless.
	Reporter diag.Reporter
	// MaxDiagnostics caps the result bag. Zero means 256.
	MaxDiagnostics int
}

// Result is a completed parse.
type Result struct {
	Root ast.NodeID
	Bag  *diag.Bag
}

var (
	errNilTree    = errors.New("parser: nil token tree")
	errNilBuilder = errors.New("parser: nil builder")
	errBadRoot    = errors.New("parser: token tree has no root")
	errNotMacro   = errors.New("parser: node is not a macro")
)

type parser struct {
	fs   *source.FileSet
	tree *token.Tree
	b    *ast.Builder
	bag  *diag.Bag
	r    diag.Reporter
}

// Parse lowers the whole token tree into an AST flow rooted at
// Result.Root.
func Parse(fs *source.FileSet, tree *token.Tree, b *ast.Builder, opts Options) (Result, error) {
	p, err := newParser(fs, tree, b, opts)
	if err != nil {
		return Result{}, err
	}
	root := p.tree.Get(p.tree.Root)
	flow := p.lowerFlow(root.Span, root.Children)
	return Result{Root: flow, Bag: p.bag}, nil
}

// ParseMacro expands a single matched macro subtree. The narrow entry
// for tools that re-parse one call site, e.g. the AST dumper.
func ParseMacro(tree *token.Tree, macroID token.NodeID, b *ast.Builder, opts Options) (Result, error) {
	p, err := newParser(nil, tree, b, opts)
	if err != nil {
		return Result{}, err
	}
	n := tree.Get(macroID)
	if n == nil || n.Kind != token.Macro {
		return Result{}, errNotMacro
	}
	root := p.parseMacroNode(macroID)
	return Result{Root: root, Bag: p.bag}, nil
}

func newParser(fs *source.FileSet, tree *token.Tree, b *ast.Builder, opts Options) (*parser, error) {
	if tree == nil {
		return nil, errNilTree
	}
	if b == nil {
		return nil, errNilBuilder
	}
	if !tree.Root.IsValid() {
		return nil, errBadRoot
	}
	max := opts.MaxDiagnostics
	if max <= 0 {
		max = 256
	}
	bag := diag.NewBag(max)
	var r diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Reporter != nil {
		r = diag.MultiReporter{Reporters: []diag.Reporter{diag.BagReporter{Bag: bag}, opts.Reporter}}
	}
	return &parser{fs: fs, tree: tree, b: b, bag: bag, r: r}, nil
}

func (p *parser) errSyn(code diag.Code, sp source.Span, msg string) {
	p.r.Report(code, diag.SevError, sp, msg, nil)
}

func (p *parser) nodeSpan(id ast.NodeID) source.Span {
	return p.b.Nodes.Get(id).Span
}
