package parser

import (
	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/token"
)

// parseMacroChain folds a run of adjacent macro tokens into one node:
// the head holds the 2nd..nth calls in its chain list and the attached
// hook, when present.
func (p *parser) parseMacroChain(macros []token.NodeID, hookID token.NodeID) ast.NodeID {
	var chain []ast.NodeID
	for _, m := range macros[1:] {
		chain = append(chain, p.parseMacroNode(m))
	}
	var hook ast.NodeID
	if hookID.IsValid() {
		hook = p.parseHook(hookID)
	}

	head := p.parseMacroNode(macros[0])
	data, _ := p.b.Nodes.Macro(head)
	data.Chain = chain
	data.Hook = hook

	node := p.b.Nodes.Get(head)
	if len(chain) > 0 {
		node.Span = node.Span.Cover(p.nodeSpan(chain[len(chain)-1]))
	}
	if hook.IsValid() {
		node.Span = node.Span.Cover(p.nodeSpan(hook))
	}
	return head
}

// parseMacroNode lowers one macro token: arguments first, then the
// node, so the payload pointer stays valid while fields are filled.
func (p *parser) parseMacroNode(id token.NodeID) ast.NodeID {
	n := p.tree.Get(id)
	args := p.parseArgs(n)

	raw := n.Name
	if raw == "" {
		p.errSyn(diag.SynEmptyMacroName, n.Span, "macro call without a name")
	}
	name := p.b.Names.Intern(raw)

	macro := p.b.Nodes.NewMacro(n.Span, name, raw)
	data, _ := p.b.Nodes.Macro(macro)
	data.Args = args
	return macro
}

// parseArgs splits the argument tokens on top-level commas and parses
// each piece as an expression. Commas inside nested interiors are their
// children and never show up here.
func (p *parser) parseArgs(n *token.Node) []ast.NodeID {
	items := argTokens(p.tree, n)
	if len(items) == 0 {
		return nil
	}

	var args []ast.NodeID
	start := 0
	flush := func(end int, commaAt token.NodeID) {
		piece := items[start:end]
		if len(piece) == 0 {
			sp := n.Span
			if commaAt.IsValid() {
				sp = p.tree.Get(commaAt).Span
			}
			p.errSyn(diag.SynMissingOperand, sp, "empty macro argument")
			args = append(args, p.b.Nodes.NewMissing(sp, ""))
			return
		}
		args = append(args, p.parseExprTokens(piece))
	}

	for i, it := range items {
		if p.tree.Get(it).Kind == token.Comma {
			flush(i, it)
			start = i + 1
		}
	}
	if start < len(items) {
		flush(len(items), token.NoNodeID)
	} else if start > 0 {
		// Trailing comma.
		flush(len(items), items[len(items)-1])
	}
	return args
}

// argTokens returns a macro or grouping interior's children minus its
// delimiters.
func argTokens(tree *token.Tree, n *token.Node) []token.NodeID {
	kids := n.Children
	if len(kids) > 0 {
		switch tree.Get(kids[0]).Kind {
		case token.MacroFront, token.GroupingFront:
			kids = kids[1:]
		}
	}
	if len(kids) > 0 && tree.Get(kids[len(kids)-1]).Kind == token.GroupingBack {
		kids = kids[:len(kids)-1]
	}
	return kids
}
