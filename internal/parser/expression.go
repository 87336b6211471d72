package parser

import (
	"strconv"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// exprParser climbs precedence over one comma-free token run.
type exprParser struct {
	p   *parser
	ids []token.NodeID
	pos int
	// nested is set for grouping interiors, where spread is never valid.
	nested bool
}

// parseExprTokens parses one argument piece. Leftover tokens after a
// complete expression mean a missing operator; they are reported and
// dropped.
func (p *parser) parseExprTokens(ids []token.NodeID) ast.NodeID {
	e := &exprParser{p: p, ids: ids}
	expr := e.parseExpr(tierAssign)
	if !e.eof() {
		n := p.tree.Get(e.ids[e.pos])
		p.errSyn(diag.SynMissingOperator, n.Span, "missing operator before "+n.Kind.String())
	}
	return expr
}

func (e *exprParser) eof() bool { return e.pos >= len(e.ids) }

func (e *exprParser) peek() *token.Node {
	if e.eof() {
		return nil
	}
	return e.p.tree.Get(e.ids[e.pos])
}

func (e *exprParser) next() *token.Node {
	n := e.peek()
	if n != nil {
		e.pos++
	}
	return n
}

// endSpan is where a missing-operand placeholder points: after the last
// consumed token, or the front of the run.
func (e *exprParser) endSpan() source.Span {
	if e.pos > 0 {
		sp := e.p.tree.Get(e.ids[e.pos-1]).Span
		return source.Span{File: sp.File, Start: sp.End, End: sp.End}
	}
	if len(e.ids) > 0 {
		sp := e.p.tree.Get(e.ids[0]).Span
		return source.Span{File: sp.File, Start: sp.Start, End: sp.Start}
	}
	return source.Span{}
}

func (e *exprParser) parseExpr(minTier int) ast.NodeID {
	left := e.parseUnary()
	for {
		n := e.peek()
		if n == nil {
			return left
		}

		if info, ok := postfixOps[n.Kind]; ok && info.tier >= minTier {
			e.next()
			sp := e.p.nodeSpan(left).Cover(n.Span)
			left = e.p.b.Nodes.NewUnary(sp, info.op, left, true)
			continue
		}

		info, ok := infixOps[n.Kind]
		if !ok || info.tier < minTier {
			return left
		}
		e.next()

		// A dangling -type has no right operand; it degrades to a
		// postfix datatype application.
		if n.Kind == token.TypeSignature && !e.operandAhead() {
			sp := e.p.nodeSpan(left).Cover(n.Span)
			left = e.p.b.Nodes.NewUnary(sp, ast.OpTypeSignature, left, true)
			continue
		}

		// 's with nothing after it cannot name a property.
		if n.Kind == token.Possessive && !e.operandAhead() {
			e.p.errSyn(diag.SynDanglingPossess, n.Span, "possessive without a property name")
			sp := e.p.nodeSpan(left).Cover(n.Span)
			left = e.p.b.Nodes.NewBinary(sp, info.op, left, e.p.b.Nodes.NewMissing(e.endSpan(), ""))
			continue
		}

		nextMin := info.tier + 1
		if info.right {
			nextMin = info.tier
		}
		right := e.parseExpr(nextMin)
		sp := e.p.nodeSpan(left).Cover(e.p.nodeSpan(right))
		left = e.p.b.Nodes.NewBinary(sp, info.op, left, right)
	}
}

func (e *exprParser) operandAhead() bool {
	n := e.peek()
	if n == nil {
		return false
	}
	if _, isInfix := infixOps[n.Kind]; isInfix {
		return false
	}
	if _, isPostfix := postfixOps[n.Kind]; isPostfix {
		return false
	}
	return true
}

func (e *exprParser) parseUnary() ast.NodeID {
	n := e.peek()
	if n == nil {
		return e.missingOperand("expression ended early")
	}

	if pre, ok := prefixOps[n.Kind]; ok {
		atArgStart := e.pos == 0 && !e.nested
		e.next()
		operand := e.parseExpr(pre.tier)
		switch {
		case n.Kind == token.Spread && !atArgStart:
			e.p.errSyn(diag.SynMisplacedSpread, n.Span, "spread outside argument position")
		case n.Kind == token.Bind && e.p.b.Nodes.Get(operand).Kind != ast.NodeVariable:
			e.p.errSyn(diag.SynBindWithoutTarget, n.Span, "bind without a variable")
		}
		sp := n.Span.Cover(e.p.nodeSpan(operand))
		return e.p.b.Nodes.NewUnary(sp, pre.op, operand, false)
	}
	if n.Kind == token.Its {
		e.next()
		operand := e.parseUnary()
		sp := n.Span.Cover(e.p.nodeSpan(operand))
		return e.p.b.Nodes.NewUnary(sp, ast.OpIts, operand, false)
	}
	return e.parsePrimary()
}

func (e *exprParser) parsePrimary() ast.NodeID {
	n := e.peek()
	if n == nil {
		return e.missingOperand("expression ended early")
	}

	switch n.Kind {
	case token.Number:
		e.next()
		if _, err := strconv.ParseFloat(n.Text, 64); err != nil {
			e.p.errSyn(diag.SynBadNumberLiteral, n.Span, "malformed number literal "+n.Text)
		}
		return e.p.b.Nodes.NewLit(n.Span, ast.LitNumber, n.Text)
	case token.String:
		e.next()
		return e.p.b.Nodes.NewLit(n.Span, ast.LitString, n.Text)
	case token.Boolean:
		e.next()
		return e.p.b.Nodes.NewLit(n.Span, ast.LitBoolean, n.Text)
	case token.Identifier:
		e.next()
		return e.p.b.Nodes.NewIdent(n.Span, n.Text)
	case token.Variable:
		e.next()
		return e.p.b.Nodes.NewVariable(n.Span, n.Name, false)
	case token.TempVariable:
		e.next()
		return e.p.b.Nodes.NewVariable(n.Span, n.Name, true)
	case token.HookRef:
		e.next()
		return e.p.b.Nodes.NewHookRef(n.Span, n.Name)

	case token.Grouping:
		e.next()
		return e.parseGrouping(e.ids[e.pos-1])

	case token.Macro:
		e.next()
		return e.p.parseMacroNode(e.ids[e.pos-1])

	case token.Hook:
		e.next()
		e.p.errSyn(diag.SynHookInArguments, n.Span, "hook not allowed inside macro arguments")
		return e.p.b.Nodes.NewMissing(n.Span, n.Text)

	case token.Comma:
		// Argument splitting consumed every separator comma; one in
		// operand position separates nothing.
		e.next()
		e.p.errSyn(diag.SynUnexpectedComma, n.Span, "unexpected comma")
		return e.p.b.Nodes.NewMissing(n.Span, n.Text)

	case token.Error:
		// Reported by the tokenizer already.
		e.next()
		return e.p.b.Nodes.NewMissing(n.Span, n.Text)
	}

	// An operator where an operand belongs. Leave it for the infix
	// loop; the placeholder fills the operand slot.
	return e.missingOperand("missing operand before " + n.Kind.String())
}

func (e *exprParser) missingOperand(msg string) ast.NodeID {
	sp := e.endSpan()
	e.p.errSyn(diag.SynMissingOperand, sp, msg)
	return e.p.b.Nodes.NewMissing(sp, "")
}

// parseGrouping parses the inside of a (...) as one expression.
func (e *exprParser) parseGrouping(id token.NodeID) ast.NodeID {
	n := e.p.tree.Get(id)
	inner := &exprParser{p: e.p, ids: argTokens(e.p.tree, n), nested: true}
	expr := inner.parseExpr(tierAssign)
	if !inner.eof() {
		stray := e.p.tree.Get(inner.ids[inner.pos])
		if stray.Kind == token.Comma {
			e.p.errSyn(diag.SynUnexpectedComma, stray.Span, "unexpected comma: a grouping holds a single expression")
		} else {
			e.p.errSyn(diag.SynTrailingTokens, stray.Span, "unexpected trailing tokens in grouping")
		}
	}
	// The grouping's span wins; parentheses are not a node of their own.
	e.p.b.Nodes.Get(expr).Span = n.Span
	return expr
}
