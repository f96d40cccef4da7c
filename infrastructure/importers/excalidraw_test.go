package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"designcanvas/domain/core/entities"
	pkgerrors "designcanvas/pkg/errors"
)

func newExcalidrawImporter() *ExcalidrawImporter {
	return NewExcalidrawImporter(nil, zap.NewNop())
}

func TestExcalidrawImport_RectangleWithDefaults(t *testing.T) {
	payload := `{
		"type": "excalidraw",
		"elements": [
			{"id": "el1", "type": "rectangle", "x": 10, "y": 20, "width": 30, "height": 40}
		]
	}`

	shapes, connections, err := newExcalidrawImporter().Import([]byte(payload))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Empty(t, connections)

	props, ok := shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, entities.ShapeRectangle, props.ShapeType)
	assert.Equal(t, 10.0, props.X)
	assert.Equal(t, 20.0, props.Y)
	assert.Equal(t, 30.0, props.Width)
	assert.Equal(t, 40.0, props.Height)
	assert.Equal(t, "#ffffff", props.FillColor)
	assert.Equal(t, "#000000", props.StrokeColor)
	assert.Equal(t, 2.0, props.StrokeWidth)
	assert.Equal(t, 16.0, props.FontSize)
	assert.Equal(t, "Arial, sans-serif", props.FontFamily)
	assert.Equal(t, "left", props.TextAlign)
}

func TestExcalidrawImport_EllipseBecomesCircle(t *testing.T) {
	payload := `{
		"type": "excalidraw",
		"elements": [{"type": "ellipse", "x": 0, "y": 0, "backgroundColor": "#00ff00"}]
	}`

	shapes, _, err := newExcalidrawImporter().Import([]byte(payload))
	require.NoError(t, err)
	require.Len(t, shapes, 1)

	props, ok := shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, entities.ShapeCircle, props.ShapeType)
	assert.Equal(t, "#00ff00", props.FillColor)

	// Zero dimensions fall back to the default size
	assert.Equal(t, 100.0, props.Width)
	assert.Equal(t, 100.0, props.Height)
}

func TestExcalidrawImport_MissingElementsYieldsEmptyScene(t *testing.T) {
	shapes, connections, err := newExcalidrawImporter().Import([]byte(`{"type": "excalidraw"}`))

	require.NoError(t, err)
	assert.NotNil(t, shapes)
	assert.NotNil(t, connections)
	assert.Empty(t, shapes)
	assert.Empty(t, connections)
}

func TestExcalidrawImport_UnknownElementKindSkipped(t *testing.T) {
	payload := `{
		"type": "excalidraw",
		"elements": [
			{"type": "freedraw", "x": 1, "y": 2},
			{"type": "rectangle", "x": 0, "y": 0, "width": 10, "height": 10}
		]
	}`

	shapes, connections, err := newExcalidrawImporter().Import([]byte(payload))
	require.NoError(t, err)
	assert.Len(t, shapes, 1)
	assert.Empty(t, connections)
}

func TestExcalidrawImport_ArrowBecomesConnection(t *testing.T) {
	payload := `{
		"type": "excalidraw",
		"elements": [
			{"id": "a", "type": "rectangle", "x": 0, "y": 0, "width": 10, "height": 10},
			{"id": "b", "type": "rectangle", "x": 50, "y": 50, "width": 10, "height": 10},
			{"type": "arrow", "startBinding": {"elementId": "a"}, "endBinding": {"elementId": "b"}}
		]
	}`

	shapes, connections, err := newExcalidrawImporter().Import([]byte(payload))
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	require.Len(t, connections, 1)

	props, ok := connections[0].Connection()
	require.True(t, ok)
	assert.Equal(t, entities.ConnectionArrow, props.ConnectionType)

	// Bindings are remapped onto the freshly generated shape ids
	assert.Equal(t, shapes[0].ID().String(), props.FromNodeID)
	assert.Equal(t, shapes[1].ID().String(), props.ToNodeID)
}

func TestExcalidrawImport_MissingBindingIsUnresolved(t *testing.T) {
	payload := `{
		"type": "excalidraw",
		"elements": [{"type": "line", "startBinding": {"elementId": "ghost"}}]
	}`

	_, connections, err := newExcalidrawImporter().Import([]byte(payload))
	require.NoError(t, err)
	require.Len(t, connections, 1)

	props, ok := connections[0].Connection()
	require.True(t, ok)
	assert.Equal(t, entities.ConnectionLine, props.ConnectionType)

	// A binding outside the imported set keeps its raw id; an absent one
	// becomes the unresolved sentinel. Both fail closed at render time.
	assert.Equal(t, "ghost", props.FromNodeID)
	assert.Equal(t, entities.UnresolvedEndpoint, props.ToNodeID)
}

func TestExcalidrawImport_WrongTypeRejected(t *testing.T) {
	_, _, err := newExcalidrawImporter().Import([]byte(`{"type": "tldraw", "elements": []}`))
	assert.True(t, pkgerrors.IsValidation(err))

	_, _, err = newExcalidrawImporter().Import([]byte(`not json`))
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestExcalidrawImport_FreshIDsPerRun(t *testing.T) {
	payload := `{
		"type": "excalidraw",
		"elements": [{"id": "el1", "type": "rectangle", "x": 0, "y": 0, "width": 10, "height": 10}]
	}`
	importer := newExcalidrawImporter()

	first, _, err := importer.Import([]byte(payload))
	require.NoError(t, err)
	second, _, err := importer.Import([]byte(payload))
	require.NoError(t, err)

	assert.False(t, first[0].ID().Equals(second[0].ID()))
}
