// Package importers normalizes external whiteboard documents into canonical
// shape and connection nodes. Sources are loosely typed: every absent field
// gets a canonical default, unrecognized element kinds are skipped, and a
// missing element collection yields empty output rather than an error.
package importers

import (
	"encoding/json"

	"go.uber.org/zap"

	"designcanvas/domain/config"
	"designcanvas/domain/core/entities"
	pkgerrors "designcanvas/pkg/errors"
	"designcanvas/pkg/utils"
)

// FormatExcalidraw tags payloads of the .excalidraw interchange format
const FormatExcalidraw = "excalidraw"

// ExcalidrawBinding references the element an arrow endpoint is bound to
type ExcalidrawBinding struct {
	ElementID string `json:"elementId"`
}

// ExcalidrawElement is one element of an .excalidraw payload. Everything is
// optional; zero values are replaced by canonical defaults.
type ExcalidrawElement struct {
	ID              string             `json:"id"`
	Type            string             `json:"type"`
	X               float64            `json:"x"`
	Y               float64            `json:"y"`
	Width           float64            `json:"width"`
	Height          float64            `json:"height"`
	Rotation        float64            `json:"rotation"`
	BackgroundColor string             `json:"backgroundColor"`
	StrokeColor     string             `json:"strokeColor"`
	StrokeWidth     float64            `json:"strokeWidth"`
	Text            string             `json:"text"`
	FontSize        float64            `json:"fontSize"`
	FontFamily      string             `json:"fontFamily"`
	TextAlign       string             `json:"textAlign"`
	StartBinding    *ExcalidrawBinding `json:"startBinding"`
	EndBinding      *ExcalidrawBinding `json:"endBinding"`
}

// ExcalidrawDocument is the envelope of an .excalidraw payload
type ExcalidrawDocument struct {
	Type     string              `json:"type" validate:"required,eq=excalidraw"`
	Elements []ExcalidrawElement `json:"elements"`
}

// ExcalidrawImporter converts .excalidraw documents into canonical nodes
type ExcalidrawImporter struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewExcalidrawImporter creates a new importer
func NewExcalidrawImporter(cfg *config.DomainConfig, logger *zap.Logger) *ExcalidrawImporter {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &ExcalidrawImporter{cfg: cfg, logger: logger}
}

// Format names the source format
func (i *ExcalidrawImporter) Format() string {
	return FormatExcalidraw
}

// Parse decodes and validates a raw payload. A payload that does not parse,
// or whose declared type is not "excalidraw", is rejected; the caller leaves
// the scene unchanged.
func (i *ExcalidrawImporter) Parse(data []byte) (*ExcalidrawDocument, error) {
	var doc ExcalidrawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, pkgerrors.NewValidationError("malformed .excalidraw payload").WithCause(err)
	}
	if err := utils.ValidateStruct(doc); err != nil {
		return nil, pkgerrors.NewValidationError("invalid .excalidraw format: " + err.Error())
	}
	return &doc, nil
}

// Normalize converts the element collection into ordered shape and
// connection sequences. Every run generates fresh node ids; re-importing the
// same input yields structurally equal but differently identified nodes.
func (i *ExcalidrawImporter) Normalize(doc *ExcalidrawDocument) ([]*entities.Node, []*entities.Node, error) {
	shapes := []*entities.Node{}
	connections := []*entities.Node{}
	if doc == nil || doc.Elements == nil {
		return shapes, connections, nil
	}

	// Endpoint bindings reference source element ids; remap the ones that
	// point inside the imported set to the freshly generated node ids.
	idMap := make(map[string]string)

	for _, element := range doc.Elements {
		switch element.Type {
		case "rectangle", "ellipse", "text":
			shape, err := i.normalizeShape(element)
			if err != nil {
				return nil, nil, err
			}
			if element.ID != "" {
				idMap[element.ID] = shape.ID().String()
			}
			shapes = append(shapes, shape)
		}
	}

	for _, element := range doc.Elements {
		switch element.Type {
		case "arrow", "line":
			connection, err := i.normalizeConnection(element, idMap)
			if err != nil {
				return nil, nil, err
			}
			connections = append(connections, connection)
		case "rectangle", "ellipse", "text":
			// handled above
		default:
			if i.logger != nil {
				i.logger.Debug("skipping unrecognized excalidraw element",
					zap.String("type", element.Type))
			}
		}
	}

	return shapes, connections, nil
}

// Import parses and normalizes a raw payload in one step
func (i *ExcalidrawImporter) Import(data []byte) ([]*entities.Node, []*entities.Node, error) {
	doc, err := i.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return i.Normalize(doc)
}

func (i *ExcalidrawImporter) normalizeShape(element ExcalidrawElement) (*entities.Node, error) {
	props := entities.DefaultShapeProps(
		i.cfg,
		shapeTypeFor(element.Type),
		element.X,
		element.Y,
		orDefault(element.Width, 100),
		orDefault(element.Height, 100),
	)
	props.Rotation = element.Rotation
	if element.BackgroundColor != "" {
		props.FillColor = element.BackgroundColor
	}
	if element.StrokeColor != "" {
		props.StrokeColor = element.StrokeColor
	}
	if element.StrokeWidth > 0 {
		props.StrokeWidth = element.StrokeWidth
	}
	props.Text = element.Text
	props.FontSize = orDefault(element.FontSize, i.cfg.DefaultFontSize)
	props.FontFamily = orDefaultString(element.FontFamily, i.cfg.DefaultFontFamily)
	props.TextAlign = orDefaultString(element.TextAlign, i.cfg.DefaultTextAlign)

	return entities.NewShapeNode(props)
}

func (i *ExcalidrawImporter) normalizeConnection(element ExcalidrawElement, idMap map[string]string) (*entities.Node, error) {
	connType := entities.ConnectionLine
	if element.Type == "arrow" {
		connType = entities.ConnectionArrow
	}
	props := entities.DefaultConnectionProps(
		i.cfg,
		endpointID(element.StartBinding, idMap),
		endpointID(element.EndBinding, idMap),
		connType,
	)
	if element.StrokeColor != "" {
		props.StrokeColor = element.StrokeColor
	}
	if element.StrokeWidth > 0 {
		props.StrokeWidth = element.StrokeWidth
	}
	return entities.NewConnectionNode(props)
}

// endpointID resolves a binding to an endpoint reference. An absent binding
// becomes the unresolved sentinel; a binding that points outside the imported
// set keeps its raw id so lookups fail closed instead of erroring.
func endpointID(binding *ExcalidrawBinding, idMap map[string]string) string {
	if binding == nil || binding.ElementID == "" {
		return entities.UnresolvedEndpoint
	}
	if mapped, ok := idMap[binding.ElementID]; ok {
		return mapped
	}
	return binding.ElementID
}

func shapeTypeFor(elementType string) entities.ShapeType {
	switch elementType {
	case "ellipse":
		return entities.ShapeCircle
	case "text":
		return entities.ShapeText
	default:
		return entities.ShapeRectangle
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
