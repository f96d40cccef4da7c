package entities

import (
	"encoding/json"
	"time"

	"designcanvas/domain/config"
	"designcanvas/domain/core/valueobjects"
	pkgerrors "designcanvas/pkg/errors"
)

// DefaultCreatedBy is recorded when no explicit author is given
const DefaultCreatedBy = "system"

// Metadata carries bookkeeping for every node. Version increases
// monotonically, bumped once per mutation of the node.
type Metadata struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy"`
	Version   int       `json:"version"`
}

// Node is a typed entity in the canonical document tree.
// A document is a strict tree: no cycles, no child shared by two parents.
// Fields stay private so every mutation passes through the methods below
// and bumps the version.
type Node struct {
	id       valueobjects.NodeID
	nodeType NodeType
	props    Properties
	children []*Node
	metadata Metadata
}

// NewNode creates a new node with a fresh id and version 1
func NewNode(nodeType NodeType, props Properties, children ...*Node) (*Node, error) {
	if props == nil {
		return nil, pkgerrors.NewValidationError("node properties cannot be nil")
	}
	if props.NodeType() != nodeType {
		return nil, pkgerrors.NewValidationError("properties do not match node type " + string(nodeType))
	}

	now := time.Now()
	return &Node{
		id:       valueobjects.NewNodeID(),
		nodeType: nodeType,
		props:    props,
		children: append([]*Node{}, children...),
		metadata: Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: DefaultCreatedBy,
			Version:   1,
		},
	}, nil
}

// NewCanvasNode creates a canvas node with canonical defaults
func NewCanvasNode(cfg *config.DomainConfig) *Node {
	node, _ := NewNode(TypeCanvas, DefaultCanvasProps(cfg))
	return node
}

// NewShapeNode creates a shape node from the given properties
func NewShapeNode(props ShapeProps) (*Node, error) {
	return NewNode(TypeShape, props)
}

// NewConnectionNode creates a connection node from the given properties
func NewConnectionNode(props ConnectionProps) (*Node, error) {
	return NewNode(TypeConnection, props)
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Type returns the node's variant tag
func (n *Node) Type() NodeType {
	return n.nodeType
}

// Properties returns a deep copy of the node's property set
func (n *Node) Properties() Properties {
	return n.props.Clone()
}

// Metadata returns the node's metadata
func (n *Node) Metadata() Metadata {
	return n.metadata
}

// Version returns the node's current version
func (n *Node) Version() int {
	return n.metadata.Version
}

// Shape returns the shape properties if this is a shape node
func (n *Node) Shape() (ShapeProps, bool) {
	p, ok := n.props.(ShapeProps)
	return p, ok
}

// Connection returns the connection properties if this is a connection node
func (n *Node) Connection() (ConnectionProps, bool) {
	p, ok := n.props.(ConnectionProps)
	return p, ok
}

// Canvas returns the canvas properties if this is a canvas node
func (n *Node) Canvas() (CanvasProps, bool) {
	p, ok := n.props.(CanvasProps)
	return p, ok
}

// Children returns the ordered child sequence. The returned slice is a copy;
// the order itself is semantically meaningful (render z-order for shapes).
func (n *Node) Children() []*Node {
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	return children
}

// ChildCount returns the number of direct children
func (n *Node) ChildCount() int {
	return len(n.children)
}

// AddChild appends a child, preserving insertion order. Any node may contain
// any node: parent/child type combinations are deliberately not validated.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return pkgerrors.NewValidationError("child cannot be nil")
	}
	n.children = append(n.children, child)
	n.touch()
	return nil
}

// RemoveChild removes the first child with the given id. Returns false, with
// no effect on the parent, when no child matches.
func (n *Node) RemoveChild(childID valueobjects.NodeID) bool {
	for i, child := range n.children {
		if child.id.Equals(childID) {
			n.children = append(n.children[:i], n.children[i+1:]...)
			n.touch()
			return true
		}
	}
	return false
}

// Apply shallow-merges a partial property update into the node. Fields absent
// from the patch survive; the version is bumped exactly once.
func (n *Node) Apply(patch Patch) error {
	if patch == nil {
		return pkgerrors.NewValidationError("patch cannot be nil")
	}
	props, err := patch.apply(n.props)
	if err != nil {
		return err
	}
	n.props = props
	n.touch()
	return nil
}

// Find searches the subtree rooted at n depth-first in pre-order and returns
// the first node with the given id, or nil. Deterministic because the tree
// has no cycles.
func (n *Node) Find(id valueobjects.NodeID) *Node {
	if n.id.Equals(id) {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits the subtree in pre-order, stopping early when fn returns false
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(fn) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the subtree, preserving ids and metadata.
// Used for history snapshots, which must be isolated from later mutation.
func (n *Node) Clone() *Node {
	children := make([]*Node, len(n.children))
	for i, child := range n.children {
		children[i] = child.Clone()
	}
	return &Node{
		id:       n.id,
		nodeType: n.nodeType,
		props:    n.props.Clone(),
		children: children,
		metadata: n.metadata,
	}
}

func (n *Node) touch() {
	n.metadata.UpdatedAt = time.Now()
	n.metadata.Version++
}

// nodeJSON is the wire form of a node
type nodeJSON struct {
	ID         string          `json:"id"`
	Type       NodeType        `json:"type"`
	Properties json.RawMessage `json:"properties"`
	Children   []*Node         `json:"children"`
	Metadata   Metadata        `json:"metadata"`
}

// MarshalJSON implements json.Marshaler
func (n *Node) MarshalJSON() ([]byte, error) {
	props, err := json.Marshal(n.props)
	if err != nil {
		return nil, err
	}
	children := n.children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(nodeJSON{
		ID:         n.id.String(),
		Type:       n.nodeType,
		Properties: props,
		Children:   children,
		Metadata:   n.metadata,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The property payload is decoded
// into the variant matching the declared type; unknown types are rejected so
// untyped bags never enter the document.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	props, err := decodeProperties(raw.Type, raw.Properties)
	if err != nil {
		return err
	}

	id, err := valueobjects.NewNodeIDFromString(raw.ID)
	if err != nil {
		return err
	}

	n.id = id
	n.nodeType = raw.Type
	n.props = props
	n.children = raw.Children
	if n.children == nil {
		n.children = []*Node{}
	}
	n.metadata = raw.Metadata
	return nil
}

func decodeProperties(nodeType NodeType, data json.RawMessage) (Properties, error) {
	if len(data) == 0 {
		return nil, pkgerrors.NewValidationError("node properties missing")
	}

	switch nodeType {
	case TypeCanvas:
		var p CanvasProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeShape:
		var p ShapeProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeConnection:
		var p ConnectionProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeChat:
		var p ChatProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeComponent:
		var p ComponentProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeProject:
		var p ProjectProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case TypeTemplate:
		var p TemplateProps
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, pkgerrors.NewValidationError("unknown node type: " + string(nodeType))
	}
}
