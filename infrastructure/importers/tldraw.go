package importers

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"designcanvas/domain/config"
	"designcanvas/domain/core/entities"
	pkgerrors "designcanvas/pkg/errors"
	"designcanvas/pkg/utils"
)

// FormatTldraw tags payloads of the .tldraw interchange format
const FormatTldraw = "tldraw"

// TldrawBinding references the shape an arrow endpoint is bound to
type TldrawBinding struct {
	ElementID string `json:"elementId"`
}

// TldrawShapeProps carries a tldraw shape's props bag. Optional throughout.
type TldrawShapeProps struct {
	W            float64        `json:"w"`
	H            float64        `json:"h"`
	Color        string         `json:"color"`
	StrokeColor  string         `json:"strokeColor"`
	StrokeWidth  float64        `json:"strokeWidth"`
	Text         string         `json:"text"`
	FontSize     float64        `json:"fontSize"`
	FontFamily   string         `json:"fontFamily"`
	TextAlign    string         `json:"textAlign"`
	StartBinding *TldrawBinding `json:"startBinding"`
	EndBinding   *TldrawBinding `json:"endBinding"`
}

// TldrawShape is one record of a tldraw document store
type TldrawShape struct {
	Type     string           `json:"type"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Rotation float64          `json:"rotation"`
	Props    TldrawShapeProps `json:"props"`
}

// TldrawDocument is the envelope of a .tldraw payload. The document field is
// a record store keyed by shape id.
type TldrawDocument struct {
	Type     string                 `json:"type" validate:"required,eq=tldraw"`
	Document map[string]TldrawShape `json:"document"`
}

// TldrawImporter converts .tldraw documents into canonical nodes.
// Line and arrow records are always normalized into connection nodes, never
// into degenerate shapes, matching the excalidraw mapping.
type TldrawImporter struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewTldrawImporter creates a new importer
func NewTldrawImporter(cfg *config.DomainConfig, logger *zap.Logger) *TldrawImporter {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &TldrawImporter{cfg: cfg, logger: logger}
}

// Format names the source format
func (i *TldrawImporter) Format() string {
	return FormatTldraw
}

// Parse decodes and validates a raw payload. A payload whose declared type
// is not "tldraw" is rejected and the scene is left unchanged.
func (i *TldrawImporter) Parse(data []byte) (*TldrawDocument, error) {
	var doc TldrawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.NewValidationError("malformed .tldraw payload").WithCause(err)
	}
	if err := utils.ValidateStruct(doc); err != nil {
		return nil, pkgerrors.NewValidationError("invalid .tldraw format: " + err.Error())
	}
	return &doc, nil
}

// Normalize converts the record store into ordered shape and connection
// sequences. Records are visited in sorted key order so output ordering is
// deterministic; fresh node ids are generated on every run.
func (i *TldrawImporter) Normalize(doc *TldrawDocument) ([]*entities.Node, []*entities.Node, error) {
	shapes := []*entities.Node{}
	connections := []*entities.Node{}
	if doc == nil || doc.Document == nil {
		return shapes, connections, nil
	}

	keys := make([]string, 0, len(doc.Document))
	for key := range doc.Document {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	idMap := make(map[string]string)

	for _, key := range keys {
		record := doc.Document[key]
		switch record.Type {
		case "rectangle", "ellipse", "text":
			shape, err := i.normalizeShape(record)
			if err != nil {
				return nil, nil, err
			}
			idMap[key] = shape.ID().String()
			shapes = append(shapes, shape)
		}
	}

	for _, key := range keys {
		record := doc.Document[key]
		switch record.Type {
		case "arrow", "line":
			connection, err := i.normalizeConnection(record, idMap)
			if err != nil {
				return nil, nil, err
			}
			connections = append(connections, connection)
		case "rectangle", "ellipse", "text":
			// handled above
		default:
			if i.logger != nil {
				i.logger.Debug("skipping unrecognized tldraw record",
					zap.String("type", record.Type))
			}
		}
	}

	return shapes, connections, nil
}

// Import parses and normalizes a raw payload in one step
func (i *TldrawImporter) Import(data []byte) ([]*entities.Node, []*entities.Node, error) {
	doc, err := i.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return i.Normalize(doc)
}

func (i *TldrawImporter) normalizeShape(record TldrawShape) (*entities.Node, error) {
	props := entities.DefaultShapeProps(
		i.cfg,
		shapeTypeFor(record.Type),
		record.X,
		record.Y,
		orDefault(record.Props.W, 100),
		orDefault(record.Props.H, 100),
	)
	props.Rotation = record.Rotation
	if record.Props.Color != "" {
		props.FillColor = record.Props.Color
	}
	if record.Props.StrokeColor != "" {
		props.StrokeColor = record.Props.StrokeColor
	}
	if record.Props.StrokeWidth > 0 {
		props.StrokeWidth = record.Props.StrokeWidth
	}
	props.Text = record.Props.Text
	props.FontSize = orDefault(record.Props.FontSize, i.cfg.DefaultFontSize)
	props.FontFamily = orDefaultString(record.Props.FontFamily, i.cfg.DefaultFontFamily)
	props.TextAlign = orDefaultString(record.Props.TextAlign, i.cfg.DefaultTextAlign)

	return entities.NewShapeNode(props)
}

func (i *TldrawImporter) normalizeConnection(record TldrawShape, idMap map[string]string) (*entities.Node, error) {
	connType := entities.ConnectionLine
	if record.Type == "arrow" {
		connType = entities.ConnectionArrow
	}
	props := entities.DefaultConnectionProps(
		i.cfg,
		tldrawEndpointID(record.Props.StartBinding, idMap),
		tldrawEndpointID(record.Props.EndBinding, idMap),
		connType,
	)
	if record.Props.StrokeColor != "" {
		props.StrokeColor = record.Props.StrokeColor
	}
	if record.Props.StrokeWidth > 0 {
		props.StrokeWidth = record.Props.StrokeWidth
	}
	return entities.NewConnectionNode(props)
}

func tldrawEndpointID(binding *TldrawBinding, idMap map[string]string) string {
	if binding == nil || binding.ElementID == "" {
		return entities.UnresolvedEndpoint
	}
	if mapped, ok := idMap[binding.ElementID]; ok {
		return mapped
	}
	return binding.ElementID
}
