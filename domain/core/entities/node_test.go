package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designcanvas/domain/config"
)

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

func newTestShape(t *testing.T) *Node {
	t.Helper()
	props := DefaultShapeProps(nil, ShapeRectangle, 10, 20, 100, 50)
	node, err := NewShapeNode(props)
	require.NoError(t, err)
	return node
}

func TestNewNode_StartsAtVersionOne(t *testing.T) {
	node := newTestShape(t)

	assert.Equal(t, 1, node.Version())
	assert.Equal(t, TypeShape, node.Type())
	assert.Equal(t, DefaultCreatedBy, node.Metadata().CreatedBy)
	assert.False(t, node.ID().IsZero())
}

func TestNewNode_UniqueIDs(t *testing.T) {
	a := newTestShape(t)
	b := newTestShape(t)

	assert.False(t, a.ID().Equals(b.ID()))
}

func TestNewNode_RejectsMismatchedProperties(t *testing.T) {
	_, err := NewNode(TypeShape, DefaultCanvasProps(nil))
	assert.Error(t, err)

	_, err = NewNode(TypeShape, nil)
	assert.Error(t, err)
}

func TestNode_AddAndRemoveChildBumpVersion(t *testing.T) {
	canvas := NewCanvasNode(config.DefaultDomainConfig())
	child := newTestShape(t)

	require.NoError(t, canvas.AddChild(child))
	assert.Equal(t, 2, canvas.Version())
	assert.Equal(t, 1, canvas.ChildCount())

	removed := canvas.RemoveChild(child.ID())
	assert.True(t, removed)
	assert.Equal(t, 3, canvas.Version())
	assert.Equal(t, 0, canvas.ChildCount())

	// A miss leaves the parent untouched
	removed = canvas.RemoveChild(child.ID())
	assert.False(t, removed)
	assert.Equal(t, 3, canvas.Version())
}

func TestNode_ApplyMergesAndBumpsOnce(t *testing.T) {
	node := newTestShape(t)

	err := node.Apply(ShapePatch{
		X:         floatPtr(60),
		FillColor: strPtr("#ff0000"),
	})
	require.NoError(t, err)

	props, ok := node.Shape()
	require.True(t, ok)
	assert.Equal(t, 60.0, props.X)
	assert.Equal(t, "#ff0000", props.FillColor)

	// Untouched fields survive the merge
	assert.Equal(t, 20.0, props.Y)
	assert.Equal(t, "#000000", props.StrokeColor)
	assert.Equal(t, 2, node.Version())
}

func TestNode_ApplyRejectsMismatchedPatch(t *testing.T) {
	canvas := NewCanvasNode(nil)

	err := canvas.Apply(ShapePatch{X: floatPtr(1)})
	assert.Error(t, err)
	assert.Equal(t, 1, canvas.Version())
}

func TestNode_FindDepthFirstPreOrder(t *testing.T) {
	canvas := NewCanvasNode(nil)
	outer := newTestShape(t)
	inner := newTestShape(t)
	sibling := newTestShape(t)

	require.NoError(t, outer.AddChild(inner))
	require.NoError(t, canvas.AddChild(outer))
	require.NoError(t, canvas.AddChild(sibling))

	assert.Same(t, inner, canvas.Find(inner.ID()))
	assert.Same(t, sibling, canvas.Find(sibling.ID()))
	assert.Same(t, canvas, canvas.Find(canvas.ID()))

	missing := newTestShape(t)
	assert.Nil(t, canvas.Find(missing.ID()))
}

func TestNode_CloneIsIsolated(t *testing.T) {
	canvas := NewCanvasNode(nil)
	shape := newTestShape(t)
	require.NoError(t, canvas.AddChild(shape))

	clone := canvas.Clone()
	assert.True(t, clone.ID().Equals(canvas.ID()))
	assert.Equal(t, canvas.Version(), clone.Version())
	require.Equal(t, 1, clone.ChildCount())

	// Mutating the original must not leak into the clone
	require.NoError(t, shape.Apply(ShapePatch{X: floatPtr(999)}))
	cloneProps, ok := clone.Children()[0].Shape()
	require.True(t, ok)
	assert.Equal(t, 10.0, cloneProps.X)
}

func TestNode_JSONRoundTrip(t *testing.T) {
	canvas := NewCanvasNode(nil)
	shape := newTestShape(t)
	require.NoError(t, shape.Apply(ShapePatch{Text: strPtr("hello")}))
	require.NoError(t, canvas.AddChild(shape))

	data, err := json.Marshal(canvas)
	require.NoError(t, err)

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded.ID().Equals(canvas.ID()))
	assert.Equal(t, canvas.Version(), decoded.Version())
	require.Equal(t, 1, decoded.ChildCount())

	props, ok := decoded.Children()[0].Shape()
	require.True(t, ok)
	assert.Equal(t, "hello", props.Text)
	assert.Equal(t, ShapeRectangle, props.ShapeType)
}

func TestNode_UnmarshalRejectsUnknownType(t *testing.T) {
	payload := `{"id":"7b0f9d2e-9df1-4e63-a7b8-6a3e1c1f2a3b","type":"blob","properties":{},"children":[],"metadata":{"version":1}}`

	var node Node
	err := json.Unmarshal([]byte(payload), &node)
	assert.Error(t, err)
}
