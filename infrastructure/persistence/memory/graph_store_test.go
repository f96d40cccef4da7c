package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designcanvas/domain/core/entities"
	pkgerrors "designcanvas/pkg/errors"
)

func newShape(t *testing.T, text string) *entities.Node {
	t.Helper()
	props := entities.DefaultShapeProps(nil, entities.ShapeText, 0, 0, 100, 30)
	props.Text = text
	node, err := entities.NewShapeNode(props)
	require.NoError(t, err)
	return node
}

func TestGraphStore_CreateAndFind(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	node := newShape(t, "hello")

	require.NoError(t, store.CreateNode(ctx, node))

	found, err := store.FindNode(ctx, node.ID().String())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.ID().Equals(node.ID()))

	missing, err := store.FindNode(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGraphStore_StoresIsolatedCopies(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	node := newShape(t, "original")

	require.NoError(t, store.CreateNode(ctx, node))

	// Mutating the caller's node must not affect the stored copy
	text := "mutated"
	require.NoError(t, node.Apply(entities.ShapePatch{Text: &text}))

	found, err := store.FindNode(ctx, node.ID().String())
	require.NoError(t, err)
	props, ok := found.Shape()
	require.True(t, ok)
	assert.Equal(t, "original", props.Text)
}

func TestGraphStore_UpdateNode(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	node := newShape(t, "before")

	require.NoError(t, store.CreateNode(ctx, node))

	text := "after"
	require.NoError(t, store.UpdateNode(ctx, node.ID().String(), entities.ShapePatch{Text: &text}))

	found, err := store.FindNode(ctx, node.ID().String())
	require.NoError(t, err)
	props, ok := found.Shape()
	require.True(t, ok)
	assert.Equal(t, "after", props.Text)

	err = store.UpdateNode(ctx, "nope", entities.ShapePatch{Text: &text})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraphStore_DeleteNodeDropsRelationships(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	parent := newShape(t, "parent")
	child := newShape(t, "child")

	require.NoError(t, store.CreateNode(ctx, parent))
	require.NoError(t, store.CreateNode(ctx, child))
	require.NoError(t, store.CreateRelationship(ctx, parent.ID().String(), child.ID().String(), "CONTAINS"))

	require.NoError(t, store.DeleteNode(ctx, child.ID().String()))

	// The scoped search no longer reaches the deleted node
	results, err := store.SearchNodes(ctx, "child", parent.ID().String())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGraphStore_SearchNodes(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()

	require.NoError(t, store.CreateNode(ctx, newShape(t, "Quarterly Report")))
	require.NoError(t, store.CreateNode(ctx, newShape(t, "Roadmap")))

	results, err := store.SearchNodes(ctx, "quarterly", "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	props, ok := results[0].Shape()
	require.True(t, ok)
	assert.Equal(t, "Quarterly Report", props.Text)
}

func TestGraphStore_SearchScopedToRelationships(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	root := newShape(t, "root")
	inside := newShape(t, "target inside")
	outside := newShape(t, "target outside")

	require.NoError(t, store.CreateNode(ctx, root))
	require.NoError(t, store.CreateNode(ctx, inside))
	require.NoError(t, store.CreateNode(ctx, outside))
	require.NoError(t, store.CreateRelationship(ctx, root.ID().String(), inside.ID().String(), "CONTAINS"))

	results, err := store.SearchNodes(ctx, "target", root.ID().String())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].ID().Equals(inside.ID()))
}

func TestGraphStore_RelationshipRequiresBothNodes(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	node := newShape(t, "solo")

	require.NoError(t, store.CreateNode(ctx, node))

	err := store.CreateRelationship(ctx, node.ID().String(), "nope", "CONTAINS")
	assert.True(t, pkgerrors.IsNotFound(err))
}
