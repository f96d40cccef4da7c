package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"designcanvas/application/ports"
	domainconfig "designcanvas/domain/config"
	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/core/entities"
	"designcanvas/domain/history"
	infraevents "designcanvas/infrastructure/events"
	"designcanvas/infrastructure/importers"
	"designcanvas/infrastructure/persistence/memory"
	pkgerrors "designcanvas/pkg/errors"
)

func newTestService(t *testing.T) (*SceneService, *infraevents.RecordingPublisher) {
	t.Helper()
	logger := zap.NewNop()
	cfg := domainconfig.DefaultDomainConfig()
	publisher := infraevents.NewRecordingPublisher()

	svc := NewSceneService(
		aggregates.NewScene(cfg),
		history.NewTimeline(),
		NewExportService(logger),
		NewShareService([]byte("test-secret"), time.Hour, logger),
		[]ports.SceneImporter{
			importers.NewExcalidrawImporter(cfg, logger),
			importers.NewTldrawImporter(cfg, logger),
		},
		memory.NewGraphStore(),
		memory.NewBlobStore(),
		publisher,
		"scene/test",
		logger,
	)
	return svc, publisher
}

func TestSceneService_CreateShapeRecordsOnce(t *testing.T) {
	svc, publisher := newTestService(t)
	ctx := context.Background()

	shape, err := svc.CreateShape(ctx, aggregates.ToolRectangle, 100, 100)
	require.NoError(t, err)
	require.NotNil(t, shape)

	entries, index := svc.History()
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, index)
	assert.Equal(t, history.ActionCreate, entries[0].Action)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "scene.shape_created", events[0].GetEventType())
}

func TestSceneService_DragFramesNotRecorded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	shape, err := svc.CreateShape(ctx, aggregates.ToolRectangle, 100, 100)
	require.NoError(t, err)

	// Intermediate frames mutate the scene without touching the timeline
	require.NoError(t, svc.MoveShape(ctx, shape.ID(), 110, 110))
	require.NoError(t, svc.MoveShape(ctx, shape.ID(), 120, 120))
	require.NoError(t, svc.EndMove(ctx, shape.ID(), 130, 130))

	entries, _ := svc.History()
	require.Len(t, entries, 2)
	assert.Equal(t, history.ActionMove, entries[1].Action)
}

func TestSceneService_UndoRedo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	shape, err := svc.CreateShape(ctx, aggregates.ToolRectangle, 100, 100)
	require.NoError(t, err)
	require.NoError(t, svc.EndMove(ctx, shape.ID(), 300, 300))

	require.True(t, svc.Undo())
	props, ok := svc.RenderList().Shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, 50.0, props.X)

	require.True(t, svc.Redo())
	props, ok = svc.RenderList().Shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, 300.0, props.X)

	assert.False(t, svc.Redo())
}

func TestSceneService_ImportReplacesScene(t *testing.T) {
	svc, publisher := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateShape(ctx, aggregates.ToolCircle, 0, 0)
	require.NoError(t, err)

	payload := `{
		"type": "excalidraw",
		"elements": [
			{"type": "rectangle", "x": 1, "y": 2, "width": 10, "height": 10},
			{"type": "rectangle", "x": 3, "y": 4, "width": 10, "height": 10}
		]
	}`
	require.NoError(t, svc.Import(ctx, "excalidraw", []byte(payload)))

	list := svc.RenderList()
	assert.Len(t, list.Shapes, 2)

	entries, _ := svc.History()
	assert.Equal(t, history.ActionImport, entries[len(entries)-1].Action)

	var imported bool
	for _, event := range publisher.Events() {
		if event.GetEventType() == "scene.imported" {
			imported = true
		}
	}
	assert.True(t, imported)
}

func TestSceneService_ImportFailureLeavesSceneUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateShape(ctx, aggregates.ToolCircle, 0, 0)
	require.NoError(t, err)

	err = svc.Import(ctx, "excalidraw", []byte(`{"type": "wrong"}`))
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Len(t, svc.RenderList().Shapes, 1)

	err = svc.Import(ctx, "visio", []byte(`{}`))
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestSceneService_SaveLoadRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	shape, err := svc.CreateShape(ctx, aggregates.ToolRectangle, 100, 100)
	require.NoError(t, err)
	require.NoError(t, svc.Save(ctx))

	// Mutate, then load the saved state back
	require.NoError(t, svc.EndMove(ctx, shape.ID(), 999, 999))
	require.NoError(t, svc.Load(ctx))

	props, ok := svc.RenderList().Shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, 50.0, props.X)
}

func TestSceneService_LoadWithoutSaveFails(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Load(context.Background())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSceneService_ShareTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateShape(ctx, aggregates.ToolRectangle, 100, 100)
	require.NoError(t, err)

	token, err := svc.Share(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	blob, err := svc.LoadShared(ctx, token)
	require.NoError(t, err)
	assert.Len(t, blob.Shapes, 1)

	_, err = svc.LoadShared(ctx, "not-a-token")
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestSceneService_AnnotationsRecorded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	note, err := svc.AddAnnotation(ctx, 40, 40, "check contrast")
	require.NoError(t, err)

	props, ok := svc.RenderList().Shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, "check contrast", props.Text)

	require.NoError(t, svc.RemoveAnnotation(ctx, note.ID()))
	assert.Empty(t, svc.RenderList().Shapes)

	entries, _ := svc.History()
	require.Len(t, entries, 2)
	assert.Equal(t, history.ActionAnnotate, entries[0].Action)
	assert.Equal(t, history.ActionUnannotate, entries[1].Action)
}

func TestSceneService_ClearRecordsAndEmpties(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateShape(ctx, aggregates.ToolRectangle, 0, 0)
	require.NoError(t, err)

	svc.Clear(ctx)

	assert.Empty(t, svc.RenderList().Shapes)
	entries, _ := svc.History()
	assert.Equal(t, history.ActionClear, entries[len(entries)-1].Action)
}

func TestSceneService_SearchRequiresQuery(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Search(context.Background(), "", "")
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestSceneService_SearchHonorsScope(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	cfg := domainconfig.DefaultDomainConfig()
	graph := memory.NewGraphStore()

	makeShape := func(text string) *entities.Node {
		props := entities.DefaultShapeProps(nil, entities.ShapeText, 0, 0, 100, 30)
		props.Text = text
		node, err := entities.NewShapeNode(props)
		require.NoError(t, err)
		return node
	}

	root := makeShape("plan review")
	linked := makeShape("plan detail")
	stray := makeShape("plan stray")
	for _, node := range []*entities.Node{root, linked, stray} {
		require.NoError(t, graph.CreateNode(ctx, node))
	}
	require.NoError(t, graph.CreateRelationship(ctx, root.ID().String(), linked.ID().String(), "contains"))

	svc := NewSceneService(
		aggregates.NewScene(cfg),
		history.NewTimeline(),
		NewExportService(logger),
		NewShareService([]byte("test-secret"), time.Hour, logger),
		nil,
		graph,
		memory.NewBlobStore(),
		infraevents.NewRecordingPublisher(),
		"scene/test",
		logger,
	)

	all, err := svc.Search(ctx, "plan", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := svc.Search(ctx, "plan", root.ID().String())
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, node := range scoped {
		assert.NotEqual(t, stray.ID().String(), node.ID().String())
	}
}
