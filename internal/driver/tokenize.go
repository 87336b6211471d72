// Package driver orchestrates the pipeline phases for the CLI and LSP:
// loading sources, tokenizing, parsing, story-level checks, parallel
// directory runs and the on-disk result cache.
package driver

import (
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// newBag applies the default diagnostics cap.
func newBag(max int) *diag.Bag {
	if max <= 0 {
		max = 256
	}
	return diag.NewBag(max)
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *token.Tree
	Bag     *diag.Bag
}

// Tokenize loads one file and produces its token tree.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fileID, maxDiagnostics), nil
}

// TokenizeBytes tokenizes in-memory content (stdin, tests, LSP buffers).
func TokenizeBytes(name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeFile(fs, fileID, maxDiagnostics)
}

func tokenizeFile(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(fileID)
	bag := newBag(maxDiagnostics)
	tree := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Bag:     bag,
	}
}
