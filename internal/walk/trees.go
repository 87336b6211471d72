package walk

import (
	"quill/internal/ast"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// Tokens walks a token tree from its root.
func Tokens(tree *token.Tree) (*Walker[token.NodeID], error) {
	if tree == nil || !tree.Root.IsValid() {
		return nil, ErrNilRoot
	}
	return New(tree.Root, func(id token.NodeID) []token.NodeID {
		n := tree.Get(id)
		if n == nil {
			return nil
		}
		return n.Children
	})
}

// TokensSource tokenizes a file and walks the resulting tree. The tree
// is returned alongside the walker so callers can resolve node data.
func TokensSource(file *source.File, opts lexer.Options) (*Walker[token.NodeID], *token.Tree, error) {
	if file == nil {
		return nil, nil, ErrNilRoot
	}
	tree := lexer.Tokenize(file, opts)
	w, err := Tokens(tree)
	if err != nil {
		return nil, nil, err
	}
	return w, tree, nil
}

// AST walks an AST subtree rooted at root, in evaluation order.
func AST(b *ast.Builder, root ast.NodeID) (*Walker[ast.NodeID], error) {
	if b == nil || !root.IsValid() || b.Nodes.Get(root) == nil {
		return nil, ErrNilRoot
	}
	return New(root, b.Children)
}
