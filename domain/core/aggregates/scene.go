package aggregates

import (
	"time"

	"github.com/google/uuid"

	"designcanvas/domain/config"
	"designcanvas/domain/core/entities"
	"designcanvas/domain/core/valueobjects"
	"designcanvas/domain/events"
	pkgerrors "designcanvas/pkg/errors"
)

// SceneID represents a unique scene identifier
type SceneID string

// NewSceneID creates a new random SceneID
func NewSceneID() SceneID {
	return SceneID(uuid.New().String())
}

// String returns the string representation
func (id SceneID) String() string {
	return string(id)
}

// Tool identifies the active drawing tool
type Tool string

const (
	ToolSelect     Tool = "select"
	ToolHand       Tool = "hand"
	ToolRectangle  Tool = "rectangle"
	ToolCircle     Tool = "circle"
	ToolText       Tool = "text"
	ToolAnnotation Tool = "annotation"
)

// Settings holds the scene's view and editing preferences
type Settings struct {
	ShowGrid        bool    `json:"showGrid"`
	ShowConnections bool    `json:"showConnections"`
	LockElements    bool    `json:"lockElements"`
	Zoom            float64 `json:"zoom"`
	BackgroundColor string  `json:"backgroundColor"`
	SnapToGrid      bool    `json:"snapToGrid"`
	GridSize        float64 `json:"gridSize"`
}

// Scene is the live, editable working document: one canvas node, ordered
// shapes (insertion order is render z-order), ordered connections, a single
// selection, the active tool, and view settings. Exactly one interaction
// context owns and mutates a scene at a time.
type Scene struct {
	id          SceneID
	canvas      *entities.Node
	shapes      []*entities.Node
	connections []*entities.Node
	selectedID  valueobjects.NodeID
	tool        Tool
	settings    Settings
	offsetX     float64
	offsetY     float64
	cfg         *config.DomainConfig
	events      []events.DomainEvent
}

// NewScene creates an empty scene with default settings
func NewScene(cfg *config.DomainConfig) *Scene {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Scene{
		id:          NewSceneID(),
		canvas:      entities.NewCanvasNode(cfg),
		shapes:      []*entities.Node{},
		connections: []*entities.Node{},
		tool:        ToolSelect,
		settings: Settings{
			ShowGrid:        cfg.GridEnabledByDefault,
			ShowConnections: true,
			LockElements:    false,
			Zoom:            1.0,
			BackgroundColor: cfg.DefaultBackground,
			SnapToGrid:      false,
			GridSize:        cfg.GridSize,
		},
		cfg:    cfg,
		events: []events.DomainEvent{},
	}
}

// ID returns the scene's identifier
func (s *Scene) ID() SceneID {
	return s.id
}

// Canvas returns the scene's canvas node
func (s *Scene) Canvas() *entities.Node {
	return s.canvas
}

// Shapes returns the ordered shape sequence. The slice is a copy; order is
// render z-order, later entries draw above earlier ones.
func (s *Scene) Shapes() []*entities.Node {
	shapes := make([]*entities.Node, len(s.shapes))
	copy(shapes, s.shapes)
	return shapes
}

// Connections returns the ordered connection sequence
func (s *Scene) Connections() []*entities.Node {
	connections := make([]*entities.Node, len(s.connections))
	copy(connections, s.connections)
	return connections
}

// SelectedID returns the currently selected node id, if any
func (s *Scene) SelectedID() (valueobjects.NodeID, bool) {
	return s.selectedID, !s.selectedID.IsZero()
}

// Tool returns the active tool
func (s *Scene) Tool() Tool {
	return s.tool
}

// SetTool switches the active tool
func (s *Scene) SetTool(tool Tool) {
	s.tool = tool
}

// Settings returns the current view settings
func (s *Scene) Settings() Settings {
	return s.settings
}

// UpdateSettings replaces the view settings, clamping zoom and grid size to
// their allowed ranges. The canvas node mirrors the visual settings so a
// saved document carries them.
func (s *Scene) UpdateSettings(settings Settings) {
	settings.Zoom = clamp(settings.Zoom, s.cfg.MinZoom, s.cfg.MaxZoom)
	settings.GridSize = clamp(settings.GridSize, s.cfg.MinGridSize, s.cfg.MaxGridSize)
	s.settings = settings

	_ = s.canvas.Apply(entities.CanvasPatch{
		BackgroundColor: &settings.BackgroundColor,
		GridEnabled:     &settings.ShowGrid,
		Zoom:            &settings.Zoom,
	})
}

// UpdateConnection merges a partial property set into a connection
func (s *Scene) UpdateConnection(id valueobjects.NodeID, patch entities.ConnectionPatch) error {
	if s.settings.LockElements {
		return pkgerrors.NewConflictError("elements are locked")
	}
	for _, connection := range s.connections {
		if connection.ID().Equals(id) {
			return connection.Apply(patch)
		}
	}
	return pkgerrors.NewNotFoundError("connection")
}

// Offset returns the current pan offset
func (s *Scene) Offset() (float64, float64) {
	return s.offsetX, s.offsetY
}

// pointer transforms a raw pointer coordinate for creation or drag use,
// applying snap-to-grid uniformly when enabled
func (s *Scene) pointer(p valueobjects.Point) valueobjects.Point {
	if s.settings.SnapToGrid {
		return p.Snap(s.settings.GridSize)
	}
	return p
}

// CreateShapeAt creates a shape at the pointer position using the tool's
// fixed default geometry policy, appends it to the shape sequence and
// returns it.
func (s *Scene) CreateShapeAt(tool Tool, at valueobjects.Point) (*entities.Node, error) {
	if s.settings.LockElements {
		return nil, pkgerrors.NewConflictError("elements are locked")
	}

	geometry, ok := s.cfg.ToolGeometries()[string(tool)]
	if !ok {
		return nil, pkgerrors.NewValidationError("tool '" + string(tool) + "' does not create shapes")
	}

	if len(s.shapes) >= s.cfg.MaxShapesPerScene {
		return nil, pkgerrors.NewConflictError("scene shape limit reached")
	}

	at = s.pointer(at)
	props := entities.DefaultShapeProps(
		s.cfg,
		shapeTypeForTool(tool),
		at.X+geometry.OffsetX,
		at.Y+geometry.OffsetY,
		geometry.Width,
		geometry.Height,
	)
	if props.ShapeType == entities.ShapeText {
		props.Text = s.cfg.DefaultText
		props.FontSize = s.cfg.DefaultFontSize
		props.FontFamily = s.cfg.DefaultFontFamily
		props.TextAlign = s.cfg.DefaultTextAlign
	}

	shape, err := entities.NewShapeNode(props)
	if err != nil {
		return nil, err
	}

	s.shapes = append(s.shapes, shape)
	s.addEvent(events.NewShapeCreated(s.id.String(), shape.ID(), string(tool), time.Now()))
	return shape, nil
}

func shapeTypeForTool(tool Tool) entities.ShapeType {
	switch tool {
	case ToolCircle:
		return entities.ShapeCircle
	case ToolText, ToolAnnotation:
		return entities.ShapeText
	default:
		return entities.ShapeRectangle
	}
}

// AddShape appends an existing shape node, preserving order
func (s *Scene) AddShape(shape *entities.Node) error {
	if shape == nil || shape.Type() != entities.TypeShape {
		return pkgerrors.NewValidationError("node is not a shape")
	}
	if len(s.shapes) >= s.cfg.MaxShapesPerScene {
		return pkgerrors.NewConflictError("scene shape limit reached")
	}
	s.shapes = append(s.shapes, shape)
	return nil
}

// AddConnection appends an existing connection node, preserving order
func (s *Scene) AddConnection(connection *entities.Node) error {
	if connection == nil || connection.Type() != entities.TypeConnection {
		return pkgerrors.NewValidationError("node is not a connection")
	}
	if len(s.connections) >= s.cfg.MaxConnectionsPerScene {
		return pkgerrors.NewConflictError("scene connection limit reached")
	}
	s.connections = append(s.connections, connection)
	return nil
}

// UpdateShape merges a partial property set into the matching shape. Used
// identically for live drag-move and for discrete property edits.
func (s *Scene) UpdateShape(id valueobjects.NodeID, patch entities.ShapePatch) error {
	if s.settings.LockElements {
		return pkgerrors.NewConflictError("elements are locked")
	}
	shape := s.findShape(id)
	if shape == nil {
		return pkgerrors.NewNotFoundError("shape")
	}
	return shape.Apply(patch)
}

// MoveShape positions a shape at the pointer coordinate, snapping when enabled
func (s *Scene) MoveShape(id valueobjects.NodeID, to valueobjects.Point) error {
	to = s.pointer(to)
	return s.UpdateShape(id, entities.ShapePatch{X: &to.X, Y: &to.Y})
}

// DeleteShape removes a shape from the sequence. Connections referencing it
// are retained; their endpoint lookups fail closed at render time.
func (s *Scene) DeleteShape(id valueobjects.NodeID) error {
	if s.settings.LockElements {
		return pkgerrors.NewConflictError("elements are locked")
	}
	for i, shape := range s.shapes {
		if shape.ID().Equals(id) {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			if s.selectedID.Equals(id) {
				s.selectedID = valueobjects.NodeID{}
			}
			s.addEvent(events.NewShapeDeleted(s.id.String(), id, time.Now()))
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("shape")
}

// Select replaces any prior selection with the given shape. The selection
// model is single-select only.
func (s *Scene) Select(id valueobjects.NodeID) error {
	if s.findShape(id) == nil {
		return pkgerrors.NewNotFoundError("shape")
	}
	s.selectedID = id
	return nil
}

// ClearSelection deselects any selected node
func (s *Scene) ClearSelection() {
	s.selectedID = valueobjects.NodeID{}
}

// ZoomIn multiplies the zoom by the fixed factor, clamped to the allowed range
func (s *Scene) ZoomIn() float64 {
	settings := s.settings
	settings.Zoom *= s.cfg.ZoomFactor
	s.UpdateSettings(settings)
	return s.settings.Zoom
}

// ZoomOut divides the zoom by the fixed factor, clamped to the allowed range
func (s *Scene) ZoomOut() float64 {
	settings := s.settings
	settings.Zoom /= s.cfg.ZoomFactor
	s.UpdateSettings(settings)
	return s.settings.Zoom
}

// Pan shifts the view offset additively, independent of zoom
func (s *Scene) Pan(dx, dy float64) {
	s.offsetX += dx
	s.offsetY += dy
}

// Clear resets shapes, connections and selection to empty. Distinct from
// deleting a single node; the caller records it as its own history action.
func (s *Scene) Clear() {
	s.shapes = []*entities.Node{}
	s.connections = []*entities.Node{}
	s.selectedID = valueobjects.NodeID{}
	s.addEvent(events.NewSceneCleared(s.id.String(), time.Now()))
}

// ReplaceContents swaps in normalizer output wholesale. Import is a full
// scene replacement, never a merge.
func (s *Scene) ReplaceContents(shapes, connections []*entities.Node) error {
	for _, shape := range shapes {
		if shape == nil || shape.Type() != entities.TypeShape {
			return pkgerrors.NewValidationError("replacement contains a non-shape node")
		}
	}
	for _, connection := range connections {
		if connection == nil || connection.Type() != entities.TypeConnection {
			return pkgerrors.NewValidationError("replacement contains a non-connection node")
		}
	}

	s.shapes = append([]*entities.Node{}, shapes...)
	s.connections = append([]*entities.Node{}, connections...)
	s.selectedID = valueobjects.NodeID{}
	return nil
}

// CloneContents returns deep copies of the shape and connection sequences,
// isolated from later mutation. Cost is O(scene size); acceptable for
// interactive scenes.
func (s *Scene) CloneContents() ([]*entities.Node, []*entities.Node) {
	shapes := make([]*entities.Node, len(s.shapes))
	for i, shape := range s.shapes {
		shapes[i] = shape.Clone()
	}
	connections := make([]*entities.Node, len(s.connections))
	for i, connection := range s.connections {
		connections[i] = connection.Clone()
	}
	return shapes, connections
}

// Restore replaces the scene contents from a snapshot. The snapshot is
// cloned again so the stored entry stays intact.
func (s *Scene) Restore(shapes, connections []*entities.Node) {
	s.shapes = make([]*entities.Node, len(shapes))
	for i, shape := range shapes {
		s.shapes[i] = shape.Clone()
	}
	s.connections = make([]*entities.Node, len(connections))
	for i, connection := range connections {
		s.connections[i] = connection.Clone()
	}
	s.selectedID = valueobjects.NodeID{}
}

// Document materializes the scene as a canonical document tree: a canvas
// node containing shape and connection children. Used for persistence sync.
func (s *Scene) Document() *entities.Node {
	root := s.canvas.Clone()
	for _, shape := range s.shapes {
		root.AddChild(shape.Clone())
	}
	for _, connection := range s.connections {
		root.AddChild(connection.Clone())
	}
	return root
}

func (s *Scene) findShape(id valueobjects.NodeID) *entities.Node {
	for _, shape := range s.shapes {
		if shape.ID().Equals(id) {
			return shape
		}
	}
	return nil
}

// Raise appends a domain event on behalf of an orchestrating service, for
// actions whose context (import format, gesture end) lives outside the
// aggregate.
func (s *Scene) Raise(event events.DomainEvent) {
	s.addEvent(event)
}

// GetUncommittedEvents returns all uncommitted domain events
func (s *Scene) GetUncommittedEvents() []events.DomainEvent {
	return s.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (s *Scene) MarkEventsAsCommitted() {
	s.events = []events.DomainEvent{}
}

func (s *Scene) addEvent(event events.DomainEvent) {
	s.events = append(s.events, event)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
