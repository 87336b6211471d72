package ast

// NodeKind discriminates AST nodes. Every kind with structure has a
// payload arena in Nodes; Br and HR carry nothing beyond their span.
type NodeKind uint8

const (
	// NodeFlow is an ordered run of prose-level children (a passage body
	// or a hook body).
	NodeFlow NodeKind = iota
	// NodeText is a literal text run.
	NodeText
	// NodeStyle is a styled span: emphasis, strong, strikethrough or
	// superscript, with its enclosed children.
	NodeStyle
	// NodeBr is a line break.
	NodeBr
	// NodeHR is a horizontal rule.
	NodeHR
	// NodeHeading is a heading line with its level and inline children.
	NodeHeading
	// NodeTag is a raw HTML tag passed through.
	NodeTag
	// NodeVerbatim is verbatim text, markup-inert.
	NodeVerbatim
	// NodeLink is a passage link with display text and target.
	NodeLink
	// NodeLit is a literal: number, string or boolean.
	NodeLit
	// NodeVariable is a $story or _temp variable reference.
	NodeVariable
	// NodeIdent is a bare identifier in code position.
	NodeIdent
	// NodeHookRef is a ?name hook reference.
	NodeHookRef
	// NodeUnary is a prefix or postfix operator application.
	NodeUnary
	// NodeBinary is an infix operator application.
	NodeBinary
	// NodeMacro is a macro call, possibly heading a chain with an
	// attached hook.
	NodeMacro
	// NodeHook is a hook: named or anonymous, with its body flow.
	NodeHook
	// NodeMissing is a placeholder for an operand the input did not
	// supply; it preserves the raw text.
	NodeMissing

	nodeKindCount
)

var nodeKindNames = [...]string{
	NodeFlow:     "Flow",
	NodeText:     "Text",
	NodeStyle:    "Style",
	NodeBr:       "Br",
	NodeHR:       "HR",
	NodeHeading:  "Heading",
	NodeTag:      "Tag",
	NodeVerbatim: "Verbatim",
	NodeLink:     "Link",
	NodeLit:      "Lit",
	NodeVariable: "Variable",
	NodeIdent:    "Ident",
	NodeHookRef:  "HookRef",
	NodeUnary:    "Unary",
	NodeBinary:   "Binary",
	NodeMacro:    "Macro",
	NodeHook:     "Hook",
	NodeMissing:  "Missing",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}
