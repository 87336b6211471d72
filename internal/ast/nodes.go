package ast

import (
	"quill/internal/source"
)

// StyleMark names the four inline style spans.
type StyleMark uint8

const (
	StyleEm StyleMark = iota
	StyleStrong
	StyleDel
	StyleSup
)

var styleMarkNames = [...]string{
	StyleEm:     "em",
	StyleStrong: "strong",
	StyleDel:    "del",
	StyleSup:    "sup",
}

func (m StyleMark) String() string {
	if int(m) < len(styleMarkNames) {
		return styleMarkNames[m]
	}
	return "StyleMark(?)"
}

// LitKind discriminates literal payloads.
type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
	LitBoolean
)

// MetaKV is one open-ended hook annotation, e.g. marker provenance.
type MetaKV struct {
	Key string
	Val string
}

// Node is the kind/span/payload header shared by all AST nodes.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

type FlowData struct {
	Children []NodeID
}

type TextData struct {
	Text string
}

type StyleData struct {
	Mark     StyleMark
	Children []NodeID
	// Unclosed is set when the closing mark was missing; the span then
	// ends where the enclosing flow does.
	Unclosed bool
}

type HeadingData struct {
	Level    uint8
	Children []NodeID
}

type TagData struct {
	Name    string
	Raw     string
	Closing bool
}

type VerbatimData struct {
	Text string
}

type LinkData struct {
	Text   string
	Target string
}

type LitData struct {
	Kind LitKind
	Raw  string
}

type VariableData struct {
	Name string
	Temp bool
}

type IdentData struct {
	Name string
}

type HookRefData struct {
	Name string
}

type UnaryData struct {
	Op      OpKind
	Operand NodeID
	// Postfix is set for -type, which trails its operand.
	Postfix bool
}

type BinaryData struct {
	Op    OpKind
	Left  NodeID
	Right NodeID
}

type MacroData struct {
	// Name is the interned, folded macro name; Raw preserves the
	// author's spelling.
	Name source.NameID
	Raw  string
	Args []NodeID
	// Chain lists the macros that followed this one with no flow in
	// between; only a chain head has a non-empty Chain.
	Chain []NodeID
	// Hook is the attached hook, or NoNodeID.
	Hook NodeID
}

type HookData struct {
	Name     string
	Hidden   bool
	Unclosed bool
	Body     []NodeID
	Meta     []MetaKV
}

type MissingData struct {
	Text string
}

// Nodes manages allocation of AST nodes and their payloads.
type Nodes struct {
	Arena     *Arena[Node]
	Flows     *Arena[FlowData]
	Texts     *Arena[TextData]
	Styles    *Arena[StyleData]
	Headings  *Arena[HeadingData]
	Tags      *Arena[TagData]
	Verbatims *Arena[VerbatimData]
	Links     *Arena[LinkData]
	Lits      *Arena[LitData]
	Variables *Arena[VariableData]
	Idents    *Arena[IdentData]
	HookRefs  *Arena[HookRefData]
	Unaries   *Arena[UnaryData]
	Binaries  *Arena[BinaryData]
	Macros    *Arena[MacroData]
	Hooks     *Arena[HookData]
	Missings  *Arena[MissingData]
}

func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Nodes{
		Arena:     NewArena[Node](capHint),
		Flows:     NewArena[FlowData](capHint / 4),
		Texts:     NewArena[TextData](capHint),
		Styles:    NewArena[StyleData](capHint / 4),
		Headings:  NewArena[HeadingData](capHint / 8),
		Tags:      NewArena[TagData](capHint / 8),
		Verbatims: NewArena[VerbatimData](capHint / 8),
		Links:     NewArena[LinkData](capHint / 4),
		Lits:      NewArena[LitData](capHint / 2),
		Variables: NewArena[VariableData](capHint / 2),
		Idents:    NewArena[IdentData](capHint / 4),
		HookRefs:  NewArena[HookRefData](capHint / 8),
		Unaries:   NewArena[UnaryData](capHint / 4),
		Binaries:  NewArena[BinaryData](capHint / 2),
		Macros:    NewArena[MacroData](capHint / 4),
		Hooks:     NewArena[HookData](capHint / 4),
		Missings:  NewArena[MissingData](capHint / 8),
	}
}

func (n *Nodes) new(kind NodeKind, span source.Span, payload PayloadID) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the node with the given ID, or nil.
func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

func (n *Nodes) Len() uint32 {
	return n.Arena.Len()
}

func (n *Nodes) NewFlow(span source.Span, children []NodeID) NodeID {
	payload := n.Flows.Allocate(FlowData{Children: children})
	return n.new(NodeFlow, span, PayloadID(payload))
}

func (n *Nodes) Flow(id NodeID) (*FlowData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeFlow {
		return nil, false
	}
	return n.Flows.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewText(span source.Span, text string) NodeID {
	payload := n.Texts.Allocate(TextData{Text: text})
	return n.new(NodeText, span, PayloadID(payload))
}

func (n *Nodes) Text(id NodeID) (*TextData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeText {
		return nil, false
	}
	return n.Texts.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewStyle(span source.Span, mark StyleMark, children []NodeID, unclosed bool) NodeID {
	payload := n.Styles.Allocate(StyleData{Mark: mark, Children: children, Unclosed: unclosed})
	return n.new(NodeStyle, span, PayloadID(payload))
}

func (n *Nodes) Style(id NodeID) (*StyleData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeStyle {
		return nil, false
	}
	return n.Styles.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewBr(span source.Span) NodeID {
	return n.new(NodeBr, span, NoPayloadID)
}

func (n *Nodes) NewHR(span source.Span) NodeID {
	return n.new(NodeHR, span, NoPayloadID)
}

func (n *Nodes) NewHeading(span source.Span, level uint8, children []NodeID) NodeID {
	payload := n.Headings.Allocate(HeadingData{Level: level, Children: children})
	return n.new(NodeHeading, span, PayloadID(payload))
}

func (n *Nodes) Heading(id NodeID) (*HeadingData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeHeading {
		return nil, false
	}
	return n.Headings.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewTag(span source.Span, name, raw string, closing bool) NodeID {
	payload := n.Tags.Allocate(TagData{Name: name, Raw: raw, Closing: closing})
	return n.new(NodeTag, span, PayloadID(payload))
}

func (n *Nodes) Tag(id NodeID) (*TagData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeTag {
		return nil, false
	}
	return n.Tags.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewVerbatim(span source.Span, text string) NodeID {
	payload := n.Verbatims.Allocate(VerbatimData{Text: text})
	return n.new(NodeVerbatim, span, PayloadID(payload))
}

func (n *Nodes) Verbatim(id NodeID) (*VerbatimData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeVerbatim {
		return nil, false
	}
	return n.Verbatims.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewLink(span source.Span, text, target string) NodeID {
	payload := n.Links.Allocate(LinkData{Text: text, Target: target})
	return n.new(NodeLink, span, PayloadID(payload))
}

func (n *Nodes) Link(id NodeID) (*LinkData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeLink {
		return nil, false
	}
	return n.Links.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewLit(span source.Span, kind LitKind, raw string) NodeID {
	payload := n.Lits.Allocate(LitData{Kind: kind, Raw: raw})
	return n.new(NodeLit, span, PayloadID(payload))
}

func (n *Nodes) Lit(id NodeID) (*LitData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeLit {
		return nil, false
	}
	return n.Lits.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewVariable(span source.Span, name string, temp bool) NodeID {
	payload := n.Variables.Allocate(VariableData{Name: name, Temp: temp})
	return n.new(NodeVariable, span, PayloadID(payload))
}

func (n *Nodes) Variable(id NodeID) (*VariableData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeVariable {
		return nil, false
	}
	return n.Variables.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewIdent(span source.Span, name string) NodeID {
	payload := n.Idents.Allocate(IdentData{Name: name})
	return n.new(NodeIdent, span, PayloadID(payload))
}

func (n *Nodes) Ident(id NodeID) (*IdentData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeIdent {
		return nil, false
	}
	return n.Idents.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewHookRef(span source.Span, name string) NodeID {
	payload := n.HookRefs.Allocate(HookRefData{Name: name})
	return n.new(NodeHookRef, span, PayloadID(payload))
}

func (n *Nodes) HookRef(id NodeID) (*HookRefData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeHookRef {
		return nil, false
	}
	return n.HookRefs.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewUnary(span source.Span, op OpKind, operand NodeID, postfix bool) NodeID {
	payload := n.Unaries.Allocate(UnaryData{Op: op, Operand: operand, Postfix: postfix})
	return n.new(NodeUnary, span, PayloadID(payload))
}

func (n *Nodes) Unary(id NodeID) (*UnaryData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeUnary {
		return nil, false
	}
	return n.Unaries.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewBinary(span source.Span, op OpKind, left, right NodeID) NodeID {
	payload := n.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return n.new(NodeBinary, span, PayloadID(payload))
}

func (n *Nodes) Binary(id NodeID) (*BinaryData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeBinary {
		return nil, false
	}
	return n.Binaries.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewMacro(span source.Span, name source.NameID, raw string) NodeID {
	payload := n.Macros.Allocate(MacroData{Name: name, Raw: raw})
	return n.new(NodeMacro, span, PayloadID(payload))
}

func (n *Nodes) Macro(id NodeID) (*MacroData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeMacro {
		return nil, false
	}
	return n.Macros.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewHook(span source.Span) NodeID {
	payload := n.Hooks.Allocate(HookData{})
	return n.new(NodeHook, span, PayloadID(payload))
}

func (n *Nodes) Hook(id NodeID) (*HookData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeHook {
		return nil, false
	}
	return n.Hooks.Get(uint32(node.Payload)), true
}

func (n *Nodes) NewMissing(span source.Span, text string) NodeID {
	payload := n.Missings.Allocate(MissingData{Text: text})
	return n.new(NodeMissing, span, PayloadID(payload))
}

func (n *Nodes) Missing(id NodeID) (*MissingData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeMissing {
		return nil, false
	}
	return n.Missings.Get(uint32(node.Payload)), true
}
