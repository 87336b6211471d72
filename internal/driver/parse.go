package driver

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *token.Tree
	Builder *ast.Builder
	Root    ast.NodeID
	Bag     *diag.Bag
}

// Parse loads one file and runs the full front end over it.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fileID, maxDiagnostics)
}

// ParseBytes parses in-memory content.
func ParseBytes(name string, content []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseFile(fs, fileID, maxDiagnostics)
}

func parseFile(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)
	bag := newBag(maxDiagnostics)

	tree := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	builder := ast.NewBuilder(ast.Hints{Nodes: uint(len(file.Content)/8 + 16)})
	res, err := parser.Parse(fs, tree, builder, parser.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return nil, err
	}
	bag.Merge(res.Bag)
	bag.Sort()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Builder: builder,
		Root:    res.Root,
		Bag:     bag,
	}, nil
}
