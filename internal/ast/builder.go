package ast

import (
	"quill/internal/source"
)

type Hints struct{ Nodes uint }

// Builder bundles the node arenas with the name interner the parser
// uses for macro names.
type Builder struct {
	Nodes *Nodes
	Names *source.Names
}

func NewBuilder(hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	return &Builder{
		Nodes: NewNodes(hints.Nodes),
		Names: source.NewNames(),
	}
}

// Children returns the ordered child list of a node, in evaluation
// order. Leaf kinds return nil. The result aliases arena storage for
// list-carrying kinds; treat it as read-only.
func (b *Builder) Children(id NodeID) []NodeID {
	node := b.Nodes.Get(id)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case NodeFlow:
		data, _ := b.Nodes.Flow(id)
		return data.Children
	case NodeStyle:
		data, _ := b.Nodes.Style(id)
		return data.Children
	case NodeHeading:
		data, _ := b.Nodes.Heading(id)
		return data.Children
	case NodeUnary:
		data, _ := b.Nodes.Unary(id)
		if !data.Operand.IsValid() {
			return nil
		}
		return []NodeID{data.Operand}
	case NodeBinary:
		data, _ := b.Nodes.Binary(id)
		return []NodeID{data.Left, data.Right}
	case NodeMacro:
		data, _ := b.Nodes.Macro(id)
		kids := make([]NodeID, 0, len(data.Args)+len(data.Chain)+1)
		kids = append(kids, data.Args...)
		kids = append(kids, data.Chain...)
		if data.Hook.IsValid() {
			kids = append(kids, data.Hook)
		}
		return kids
	case NodeHook:
		data, _ := b.Nodes.Hook(id)
		return data.Body
	}
	return nil
}
