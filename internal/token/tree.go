package token

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/source"
)

// NodeID references a node inside a Tree. IDs are 1-based; 0 means "none".
type NodeID uint32

// NoNodeID is the zero NodeID.
const NoNodeID NodeID = 0

// IsValid reports whether the id references a node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// Node is one node of the token tree. Leaves are terminal lexical units;
// interior nodes own their children in source order. Once the tokenizer
// returns a Tree, nodes are never mutated.
type Node struct {
	Kind Kind
	Span source.Span
	// Text is the raw source slice for leaves that need it (text runs,
	// literals, names); interiors leave it empty.
	Text string
	// Name is the display name: macro name, hook name, tag name,
	// heading rank, or link separator direction.
	Name string
	// Msg carries a diagnostic message on Error nodes and on leaves
	// that were recovered from malformed input.
	Msg string
	// Match pairs a delimiter leaf with its counterpart; front and back
	// leaves of one interior reference each other.
	Match NodeID
	// InnerMode records which lexical rules applied inside an interior span.
	InnerMode Mode
	// Leading marks a hook whose front delimiter directly follows a
	// macro's closing paren; the parser decides attachment.
	Leading bool
	// Unclosed marks interiors whose closing delimiter never arrived.
	Unclosed bool
	Children []NodeID
}

// Tree is an arena of token nodes. The tokenizer is its only producer;
// consumers treat it as immutable.
type Tree struct {
	nodes []Node
	Root  NodeID
}

// NewTree returns a Tree with capacity for capHint nodes.
func NewTree(capHint uint) *Tree {
	return &Tree{
		nodes: make([]Node, 0, capHint),
	}
}

// New allocates a node and returns its id.
func (t *Tree) New(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	id, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("token tree overflow: %w", err))
	}
	return NodeID(id)
}

// Get returns the node for id, or nil for NoNodeID.
func (t *Tree) Get(id NodeID) *Node {
	if id == NoNodeID {
		return nil
	}
	return &t.nodes[id-1]
}

// AddChild appends child to parent's ordered child list.
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.Get(parent)
	p.Children = append(p.Children, child)
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}
