package parser

import (
	"strconv"
	"strings"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// lowerFlow wraps a lowered sibling run in a flow node.
func (p *parser) lowerFlow(sp source.Span, ids []token.NodeID) ast.NodeID {
	kids := p.lowerSeq(ids)
	flow := p.b.Nodes.NewFlow(sp, kids)
	return flow
}

// lowerSeq lowers one run of markup-mode siblings. Style marks pair up
// greedily with the next mark of the same kind; macro runs fold into
// chains with their attached hook.
func (p *parser) lowerSeq(ids []token.NodeID) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(ids))
	i := 0
	for i < len(ids) {
		n := p.tree.Get(ids[i])
		switch n.Kind {
		case token.Text:
			out = append(out, p.b.Nodes.NewText(n.Span, n.Text))
			i++

		case token.Br:
			out = append(out, p.b.Nodes.NewBr(n.Span))
			i++

		case token.HR:
			out = append(out, p.b.Nodes.NewHR(n.Span))
			i++

		case token.Heading:
			j := i + 1
			for j < len(ids) && p.tree.Get(ids[j]).Kind != token.Br {
				j++
			}
			kids := p.lowerSeq(ids[i+1 : j])
			level, _ := strconv.Atoi(n.Name)
			sp := n.Span
			if len(kids) > 0 {
				sp = sp.Cover(p.nodeSpan(kids[len(kids)-1]))
			}
			out = append(out, p.b.Nodes.NewHeading(sp, uint8(level), kids))
			i = j

		case token.EmMark, token.StrongMark, token.DelMark, token.SupMark:
			node, next := p.lowerStyle(ids, i)
			out = append(out, node)
			i = next

		case token.Comment:
			// Comments never reach the AST.
			i++

		case token.Verbatim:
			out = append(out, p.b.Nodes.NewVerbatim(n.Span, verbatimInner(n)))
			i++

		case token.Tag:
			closing := strings.HasPrefix(n.Text, "</")
			out = append(out, p.b.Nodes.NewTag(n.Span, n.Name, n.Text, closing))
			i++

		case token.Variable:
			out = append(out, p.b.Nodes.NewVariable(n.Span, n.Name, false))
			i++

		case token.TempVariable:
			out = append(out, p.b.Nodes.NewVariable(n.Span, n.Name, true))
			i++

		case token.Link:
			out = append(out, p.lowerLink(ids[i]))
			i++

		case token.Macro:
			j := i + 1
			for j < len(ids) && p.tree.Get(ids[j]).Kind == token.Macro {
				j++
			}
			var hookID token.NodeID
			if j < len(ids) {
				h := p.tree.Get(ids[j])
				if h.Kind == token.Hook && h.Leading {
					hookID = ids[j]
					j++
				}
			}
			out = append(out, p.parseMacroChain(ids[i:j], hookID))
			i = j

		case token.Hook:
			out = append(out, p.parseHook(ids[i]))
			i++

		case token.Error:
			// Already reported during tokenizing.
			out = append(out, p.b.Nodes.NewMissing(n.Span, n.Text))
			i++

		default:
			p.errSyn(diag.SynUnexpectedToken, n.Span, "unexpected "+n.Kind.String()+" in prose")
			out = append(out, p.b.Nodes.NewMissing(n.Span, n.Text))
			i++
		}
	}
	return out
}

// lowerStyle pairs the opening mark at ids[i] with the next mark of the
// same kind. Without a closer the span runs to the end of the sequence
// and the node is flagged unclosed.
func (p *parser) lowerStyle(ids []token.NodeID, i int) (ast.NodeID, int) {
	open := p.tree.Get(ids[i])
	mark := styleMarkFor(open.Kind)

	j := i + 1
	for j < len(ids) && p.tree.Get(ids[j]).Kind != open.Kind {
		j++
	}
	if j < len(ids) {
		kids := p.lowerSeq(ids[i+1 : j])
		sp := open.Span.Cover(p.tree.Get(ids[j]).Span)
		return p.b.Nodes.NewStyle(sp, mark, kids, false), j + 1
	}

	kids := p.lowerSeq(ids[i+1:])
	sp := open.Span
	if len(kids) > 0 {
		sp = sp.Cover(p.nodeSpan(kids[len(kids)-1]))
	}
	return p.b.Nodes.NewStyle(sp, mark, kids, true), len(ids)
}

func styleMarkFor(k token.Kind) ast.StyleMark {
	switch k {
	case token.StrongMark:
		return ast.StyleStrong
	case token.DelMark:
		return ast.StyleDel
	case token.SupMark:
		return ast.StyleSup
	}
	return ast.StyleEm
}

func verbatimInner(n *token.Node) string {
	t := 0
	for t < len(n.Text) && n.Text[t] == '`' {
		t++
	}
	if n.Msg != "" {
		// Unterminated: everything after the opening ticks.
		return n.Text[t:]
	}
	return n.Text[t : len(n.Text)-t]
}

// lowerLink reduces a link interior to display text and target. The
// three separator forms are text->target, target<-text and text|target;
// without a separator the text doubles as the target.
func (p *parser) lowerLink(id token.NodeID) ast.NodeID {
	n := p.tree.Get(id)
	var before, after, sep string
	sawSep := false
	for _, c := range n.Children {
		cn := p.tree.Get(c)
		switch cn.Kind {
		case token.Text:
			if sawSep {
				after += cn.Text
			} else {
				before += cn.Text
			}
		case token.LinkSep:
			sep = cn.Text
			sawSep = true
		}
	}

	text, target := before, before
	if sawSep {
		switch sep {
		case "<-":
			target, text = before, after
		default: // "->" and "|"
			text, target = before, after
		}
	}
	if target == "" {
		p.errSyn(diag.SynEmptyLinkTarget, n.Span, "link without a target passage")
	}
	return p.b.Nodes.NewLink(n.Span, text, target)
}

// parseHook lowers a hook interior. A prepended |name> or |name< marker
// names the hook and marks it initially hidden; an appended <name|
// marker names it only.
func (p *parser) parseHook(id token.NodeID) ast.NodeID {
	n := p.tree.Get(id)

	var body []token.NodeID
	var meta []ast.MetaKV
	hidden := false
	for _, c := range n.Children {
		switch p.tree.Get(c).Kind {
		case token.HookFront, token.HookBack:
		case token.HookMarkPre:
			hidden = true
			meta = append(meta, ast.MetaKV{Key: "marker", Val: "prepended"})
		case token.HookMarkPost:
			meta = append(meta, ast.MetaKV{Key: "marker", Val: "appended"})
		default:
			body = append(body, c)
		}
	}

	kids := p.lowerSeq(body)
	hook := p.b.Nodes.NewHook(n.Span)
	data, _ := p.b.Nodes.Hook(hook)
	data.Name = n.Name
	data.Hidden = hidden
	data.Unclosed = n.Unclosed
	data.Body = kids
	data.Meta = meta
	return hook
}
