package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/core/entities"
	"designcanvas/domain/core/valueobjects"
)

func newSceneWithShape(t *testing.T) (*aggregates.Scene, *entities.Node) {
	t.Helper()
	scene := aggregates.NewScene(nil)
	shape, err := scene.CreateShapeAt(aggregates.ToolRectangle, valueobjects.Point{X: 100, Y: 100})
	require.NoError(t, err)
	return scene, shape
}

func shapeX(t *testing.T, scene *aggregates.Scene) float64 {
	t.Helper()
	shapes := scene.Shapes()
	require.NotEmpty(t, shapes)
	props, ok := shapes[0].Shape()
	require.True(t, ok)
	return props.X
}

func TestTimeline_StartsEmpty(t *testing.T) {
	timeline := NewTimeline()

	assert.Equal(t, -1, timeline.Index())
	assert.Equal(t, 0, timeline.Length())
	assert.False(t, timeline.CanUndo())
	assert.False(t, timeline.CanRedo())
}

func TestTimeline_RecordAdvancesIndex(t *testing.T) {
	scene, shape := newSceneWithShape(t)
	timeline := NewTimeline()

	timeline.Record(scene, ActionCreate, "created rectangle")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 300, Y: 300}))
	timeline.Record(scene, ActionMove, "moved shape")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 400, Y: 400}))
	timeline.Record(scene, ActionMove, "moved shape")

	assert.Equal(t, 2, timeline.Index())
	assert.Equal(t, 3, timeline.Length())
	assert.True(t, timeline.CanUndo())
	assert.False(t, timeline.CanRedo())
}

func TestTimeline_UndoRestoresPredecessorSnapshot(t *testing.T) {
	scene, shape := newSceneWithShape(t)
	timeline := NewTimeline()

	timeline.Record(scene, ActionCreate, "created rectangle")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 300, Y: 300}))
	timeline.Record(scene, ActionMove, "moved shape")

	undone := timeline.Undo(scene)
	assert.True(t, undone)
	assert.Equal(t, 0, timeline.Index())
	assert.Equal(t, 50.0, shapeX(t, scene))
}

func TestTimeline_UndoNoOpAtBottom(t *testing.T) {
	scene, _ := newSceneWithShape(t)
	timeline := NewTimeline()

	// Empty timeline
	assert.False(t, timeline.Undo(scene))

	// At index 0, undo has no predecessor snapshot to restore
	timeline.Record(scene, ActionCreate, "created rectangle")
	assert.False(t, timeline.Undo(scene))
	assert.Equal(t, 0, timeline.Index())
	assert.Len(t, scene.Shapes(), 1)
}

func TestTimeline_RedoReappliesNextSnapshot(t *testing.T) {
	scene, shape := newSceneWithShape(t)
	timeline := NewTimeline()

	timeline.Record(scene, ActionCreate, "created rectangle")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 300, Y: 300}))
	timeline.Record(scene, ActionMove, "moved shape")

	require.True(t, timeline.Undo(scene))
	assert.True(t, timeline.Redo(scene))
	assert.Equal(t, 1, timeline.Index())
	assert.Equal(t, 300.0, shapeX(t, scene))

	// At the head, redo is a no-op
	assert.False(t, timeline.Redo(scene))
}

func TestTimeline_RecordAfterUndoPrunesBranch(t *testing.T) {
	scene, shape := newSceneWithShape(t)
	timeline := NewTimeline()

	timeline.Record(scene, ActionCreate, "created rectangle")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 300, Y: 300}))
	timeline.Record(scene, ActionMove, "moved shape")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 400, Y: 400}))
	timeline.Record(scene, ActionMove, "moved shape")

	require.True(t, timeline.Undo(scene))
	require.True(t, timeline.Undo(scene))
	require.Equal(t, 0, timeline.Index())

	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 999, Y: 999}))
	timeline.Record(scene, ActionMove, "moved shape")

	assert.Equal(t, 2, timeline.Length())
	assert.Equal(t, 1, timeline.Index())
	assert.False(t, timeline.CanRedo())
}

func TestTimeline_SnapshotsAreIsolated(t *testing.T) {
	scene, shape := newSceneWithShape(t)
	timeline := NewTimeline()

	timeline.Record(scene, ActionCreate, "created rectangle")
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 300, Y: 300}))
	timeline.Record(scene, ActionMove, "moved shape")

	// Mutating the live scene must not corrupt recorded snapshots
	require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: 700, Y: 700}))

	require.True(t, timeline.Undo(scene))
	assert.Equal(t, 50.0, shapeX(t, scene))
}

func TestTimeline_CapEvictsOldest(t *testing.T) {
	scene, shape := newSceneWithShape(t)
	timeline := NewTimelineWithLimit(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, scene.MoveShape(shape.ID(), valueobjects.Point{X: float64(i * 10), Y: 0}))
		timeline.Record(scene, ActionMove, "moved shape")
	}

	assert.Equal(t, 3, timeline.Length())
	assert.Equal(t, 2, timeline.Index())
}

func TestTimeline_EntriesExposeMetadataOnly(t *testing.T) {
	scene, _ := newSceneWithShape(t)
	timeline := NewTimeline()

	timeline.Record(scene, ActionCreate, "created rectangle")
	timeline.Record(scene, ActionSave, "saved scene")

	entries := timeline.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ActionCreate, entries[0].Action)
	assert.Equal(t, ActionSave, entries[1].Action)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, "created rectangle", entries[0].Description)
}
