package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"designcanvas/application/ports"
	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/core/entities"
	"designcanvas/domain/core/valueobjects"
	"designcanvas/domain/events"
	"designcanvas/domain/history"
	pkgerrors "designcanvas/pkg/errors"
)

const graphSyncTimeout = 10 * time.Second

// SceneService orchestrates all editing operations against a single live
// scene. HTTP handlers may call concurrently, but the scene model assumes a
// single actor, so every operation is serialized behind one mutex.
//
// Each logical user action records exactly one timeline entry. Pointer-move
// frames during a drag mutate the scene but are not recorded; the gesture's
// EndMove call records the one entry.
type SceneService struct {
	mu        sync.Mutex
	scene     *aggregates.Scene
	timeline  *history.Timeline
	exporter  *ExportService
	share     *ShareService
	importers map[string]ports.SceneImporter
	graph     ports.GraphStore
	blobs     ports.BlobStore
	publisher ports.EventPublisher
	blobKey   string
	logger    *zap.Logger
}

// NewSceneService creates the orchestrator around a live scene
func NewSceneService(
	scene *aggregates.Scene,
	timeline *history.Timeline,
	exporter *ExportService,
	share *ShareService,
	importers []ports.SceneImporter,
	graph ports.GraphStore,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	blobKey string,
	logger *zap.Logger,
) *SceneService {
	byFormat := make(map[string]ports.SceneImporter, len(importers))
	for _, imp := range importers {
		byFormat[imp.Format()] = imp
	}
	return &SceneService{
		scene:     scene,
		timeline:  timeline,
		exporter:  exporter,
		share:     share,
		importers: byFormat,
		graph:     graph,
		blobs:     blobs,
		publisher: publisher,
		blobKey:   blobKey,
		logger:    logger,
	}
}

// CreateShape creates a shape with the given tool at a pointer position
func (s *SceneService) CreateShape(ctx context.Context, tool aggregates.Tool, x, y float64) (*entities.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shape, err := s.scene.CreateShapeAt(tool, valueobjects.Point{X: x, Y: y})
	if err != nil {
		return nil, err
	}

	s.timeline.Record(s.scene, history.ActionCreate, fmt.Sprintf("created %s", tool))
	s.flushEvents(ctx)

	s.logger.Info("shape created",
		zap.String("shapeID", shape.ID().String()),
		zap.String("tool", string(tool)),
	)
	return shape, nil
}

// MoveShape applies one drag frame. Frames are not recorded on the
// timeline; EndMove closes the gesture.
func (s *SceneService) MoveShape(ctx context.Context, id valueobjects.NodeID, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.MoveShape(id, valueobjects.Point{X: x, Y: y})
}

// EndMove applies the final position of a drag gesture and records it
func (s *SceneService) EndMove(ctx context.Context, id valueobjects.NodeID, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.MoveShape(id, valueobjects.Point{X: x, Y: y}); err != nil {
		return err
	}

	s.scene.Raise(events.NewShapeMoved(s.scene.ID().String(), id, x, y, time.Now()))
	s.timeline.Record(s.scene, history.ActionMove, "moved shape")
	s.flushEvents(ctx)
	return nil
}

// UpdateShape merges a partial property set into a shape and records it
func (s *SceneService) UpdateShape(ctx context.Context, id valueobjects.NodeID, patch entities.ShapePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.UpdateShape(id, patch); err != nil {
		return err
	}

	s.timeline.Record(s.scene, history.ActionUpdate, "updated shape")
	s.flushEvents(ctx)
	return nil
}

// UpdateConnection merges a partial property set into a connection and
// records it
func (s *SceneService) UpdateConnection(ctx context.Context, id valueobjects.NodeID, patch entities.ConnectionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.UpdateConnection(id, patch); err != nil {
		return err
	}

	s.timeline.Record(s.scene, history.ActionUpdate, "updated connection")
	s.flushEvents(ctx)
	return nil
}

// DeleteShape removes a shape and records the deletion. Connections that
// referenced it stay in the scene and simply stop resolving.
func (s *SceneService) DeleteShape(ctx context.Context, id valueobjects.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.DeleteShape(id); err != nil {
		return err
	}

	s.timeline.Record(s.scene, history.ActionDelete, "deleted shape")
	s.flushEvents(ctx)
	return nil
}

// SelectShape marks a shape as the single selection
func (s *SceneService) SelectShape(id valueobjects.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.Select(id)
}

// ClearSelection drops the current selection
func (s *SceneService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene.ClearSelection()
}

// SetTool switches the active drawing tool
func (s *SceneService) SetTool(tool aggregates.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene.SetTool(tool)
}

// ZoomIn steps the zoom level up and returns the new level
func (s *SceneService) ZoomIn() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.ZoomIn()
}

// ZoomOut steps the zoom level down and returns the new level
func (s *SceneService) ZoomOut() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.ZoomOut()
}

// Pan shifts the viewport offset
func (s *SceneService) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene.Pan(dx, dy)
}

// UpdateSettings replaces the scene's view settings
func (s *SceneService) UpdateSettings(settings aggregates.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene.UpdateSettings(settings)
}

// Clear removes every shape and connection and records the clear
func (s *SceneService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene.Clear()
	s.timeline.Record(s.scene, history.ActionClear, "cleared scene")
	s.flushEvents(ctx)
}

// Import parses a foreign document and replaces the scene's contents with
// its normalized nodes. Any parse or validation failure leaves the scene
// untouched; there is no partial import.
func (s *SceneService) Import(ctx context.Context, format string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	importer, ok := s.importers[format]
	if !ok {
		return pkgerrors.NewValidationError("unsupported import format: " + format)
	}

	shapes, connections, err := importer.Import(data)
	if err != nil {
		return err
	}

	if err := s.scene.ReplaceContents(shapes, connections); err != nil {
		return err
	}

	s.scene.Raise(events.NewSceneImported(s.scene.ID().String(), format, len(shapes), len(connections), time.Now()))
	s.timeline.Record(s.scene, history.ActionImport, fmt.Sprintf("imported %s document", format))
	s.flushEvents(ctx)

	s.logger.Info("scene imported",
		zap.String("format", format),
		zap.Int("shapes", len(shapes)),
		zap.Int("connections", len(connections)),
	)
	return nil
}

// Export serializes the scene in the requested format and records it
func (s *SceneService) Export(ctx context.Context, format ExportFormat) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.exporter.Export(s.scene, format)
	if err != nil {
		return nil, err
	}

	s.timeline.Record(s.scene, history.ActionExport, fmt.Sprintf("exported as %s", format))
	return data, nil
}

// Save encodes the scene to its blob form, writes it to the blob store and
// kicks off a background graph sync. The sync is fire-and-forget: the save
// succeeds as soon as the blob is stored, and sync failures are only logged.
func (s *SceneService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.exporter.EncodeBlob(s.scene)
	if err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, s.blobKey, data); err != nil {
		return pkgerrors.NewStorageError("failed to store scene blob").WithCause(err)
	}

	s.scene.Raise(events.NewSceneSaved(s.scene.ID().String(), s.blobKey, time.Now()))
	s.timeline.Record(s.scene, history.ActionSave, "saved scene")
	s.flushEvents(ctx)

	document := s.scene.Document()
	go s.syncGraph(document)

	s.logger.Info("scene saved", zap.String("blobKey", s.blobKey), zap.Int("bytes", len(data)))
	return nil
}

// Load replaces the scene's contents and settings from the stored blob
func (s *SceneService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := s.blobs.Get(ctx, s.blobKey)
	if err != nil {
		return pkgerrors.NewStorageError("failed to read scene blob").WithCause(err)
	}
	if !found {
		return pkgerrors.NewNotFoundError("no saved scene")
	}

	blob, err := s.exporter.DecodeBlob(data)
	if err != nil {
		return err
	}
	if err := s.scene.ReplaceContents(blob.Shapes, blob.Connections); err != nil {
		return err
	}
	s.scene.UpdateSettings(blob.CanvasSettings)

	s.logger.Info("scene loaded", zap.String("blobKey", s.blobKey))
	return nil
}

// Share saves the scene and mints a signed token referencing the stored blob
func (s *SceneService) Share(ctx context.Context) (string, error) {
	if err := s.Save(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.share.CreateToken(s.scene.ID().String(), s.blobKey)
	if err != nil {
		return "", err
	}

	s.timeline.Record(s.scene, history.ActionShare, "shared scene")
	return token, nil
}

// LoadShared verifies a share token and returns the blob it references
func (s *SceneService) LoadShared(ctx context.Context, token string) (*SceneBlob, error) {
	claims, err := s.share.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	data, found, err := s.blobs.Get(ctx, claims.BlobKey)
	if err != nil {
		return nil, pkgerrors.NewStorageError("failed to read shared scene blob").WithCause(err)
	}
	if !found {
		return nil, pkgerrors.NewNotFoundError("shared scene no longer exists")
	}

	return s.exporter.DecodeBlob(data)
}

// AddAnnotation drops a sticky-note text shape at a position
func (s *SceneService) AddAnnotation(ctx context.Context, x, y float64, text string) (*entities.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shape, err := s.scene.CreateShapeAt(aggregates.ToolAnnotation, valueobjects.Point{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	if text != "" {
		if err := s.scene.UpdateShape(shape.ID(), entities.ShapePatch{Text: &text}); err != nil {
			return nil, err
		}
	}

	s.timeline.Record(s.scene, history.ActionAnnotate, "added annotation")
	s.flushEvents(ctx)
	return shape, nil
}

// RemoveAnnotation deletes an annotation shape
func (s *SceneService) RemoveAnnotation(ctx context.Context, id valueobjects.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.scene.DeleteShape(id); err != nil {
		return err
	}

	s.timeline.Record(s.scene, history.ActionUnannotate, "removed annotation")
	s.flushEvents(ctx)
	return nil
}

// Undo steps the timeline back one entry, reporting whether anything changed
func (s *SceneService) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.Undo(s.scene)
}

// Redo steps the timeline forward one entry
func (s *SceneService) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.Redo(s.scene)
}

// History returns timeline metadata plus the cursor position
func (s *SceneService) History() ([]history.EntryInfo, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.Entries(), s.timeline.Index()
}

// CanUndo reports whether an undo step is available
func (s *SceneService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.CanUndo()
}

// CanRedo reports whether a redo step is available
func (s *SceneService) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.CanRedo()
}

// Search finds persisted nodes whose text matches the query. A non-empty
// scopeID limits results to nodes reachable from that node.
func (s *SceneService) Search(ctx context.Context, query, scopeID string) ([]*entities.Node, error) {
	if query == "" {
		return nil, pkgerrors.NewValidationError("search query is required")
	}
	return s.graph.SearchNodes(ctx, query, scopeID)
}

// RenderList returns the scene's current render-ready view
func (s *SceneService) RenderList() aggregates.RenderList {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.RenderList()
}

// Snapshot returns the scene's current full export view
func (s *SceneService) Snapshot() SceneExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	shapes, connections := s.scene.CloneContents()
	return SceneExport{
		Shapes:      shapes,
		Connections: connections,
		Canvas:      s.scene.Canvas().Clone(),
	}
}

// Settings returns the scene's current view settings
func (s *SceneService) Settings() aggregates.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.Settings()
}

// SelectedID returns the current selection, if any
func (s *SceneService) SelectedID() (valueobjects.NodeID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scene.SelectedID()
}

// flushEvents publishes and commits the scene's pending events. Publish
// failures are logged, not surfaced; event delivery never fails a mutation.
// Callers must hold s.mu.
func (s *SceneService) flushEvents(ctx context.Context) {
	pending := s.scene.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}
	if err := s.publisher.PublishBatch(ctx, pending); err != nil {
		s.logger.Warn("failed to publish scene events", zap.Int("count", len(pending)), zap.Error(err))
	}
	s.scene.MarkEventsAsCommitted()
}

// syncGraph mirrors the saved document tree into the graph store. It runs
// detached from the request with its own deadline; failures are logged and
// never affect the completed save.
func (s *SceneService) syncGraph(document *entities.Node) {
	ctx, cancel := context.WithTimeout(context.Background(), graphSyncTimeout)
	defer cancel()

	if err := s.graph.CreateNode(ctx, document); err != nil {
		s.logger.Warn("graph sync: create canvas failed",
			zap.String("nodeID", document.ID().String()),
			zap.Error(err),
		)
		return
	}

	for _, child := range document.Children() {
		if err := s.graph.CreateNode(ctx, child); err != nil {
			s.logger.Warn("graph sync: create child failed",
				zap.String("nodeID", child.ID().String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.graph.CreateRelationship(ctx, document.ID().String(), child.ID().String(), "CONTAINS"); err != nil {
			s.logger.Warn("graph sync: link child failed",
				zap.String("nodeID", child.ID().String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Debug("graph sync complete",
		zap.String("canvasID", document.ID().String()),
		zap.Int("children", document.ChildCount()),
	)
}
