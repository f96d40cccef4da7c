package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/core/valueobjects"
	pkgerrors "designcanvas/pkg/errors"
)

func sceneWithOneShape(t *testing.T) *aggregates.Scene {
	t.Helper()
	scene := aggregates.NewScene(nil)
	_, err := scene.CreateShapeAt(aggregates.ToolRectangle, valueobjects.Point{X: 100, Y: 100})
	require.NoError(t, err)
	return scene
}

func TestExportService_JSONContainsFullScene(t *testing.T) {
	svc := NewExportService(zap.NewNop())
	scene := sceneWithOneShape(t)

	data, err := svc.Export(scene, FormatJSON)
	require.NoError(t, err)

	var export SceneExport
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Len(t, export.Shapes, 1)
	assert.NotNil(t, export.Canvas)
}

func TestExportService_UnsupportedFormats(t *testing.T) {
	svc := NewExportService(zap.NewNop())
	scene := sceneWithOneShape(t)

	for _, format := range []ExportFormat{FormatPNG, FormatSVG, FormatExcalidraw, FormatTldraw} {
		_, err := svc.Export(scene, format)
		assert.True(t, pkgerrors.IsValidation(err), "format %s", format)
	}

	_, err := svc.Export(scene, ExportFormat("pdf"))
	assert.Error(t, err)
}

func TestExportService_BlobRoundTripIsLossless(t *testing.T) {
	svc := NewExportService(zap.NewNop())
	scene := sceneWithOneShape(t)

	data, err := svc.EncodeBlob(scene)
	require.NoError(t, err)

	blob, err := svc.DecodeBlob(data)
	require.NoError(t, err)
	require.Len(t, blob.Shapes, 1)

	want, ok := scene.Shapes()[0].Shape()
	require.True(t, ok)
	got, ok := blob.Shapes[0].Shape()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, scene.Settings(), blob.CanvasSettings)
}

func TestExportService_DecodeBlobRejectsGarbage(t *testing.T) {
	svc := NewExportService(zap.NewNop())

	_, err := svc.DecodeBlob([]byte("not json"))
	assert.Error(t, err)
}
