package entities

import (
	"time"

	"designcanvas/domain/config"
)

// NodeType tags a node with its variant. The set is closed: every node in a
// document carries exactly one of these tags and the matching property struct.
type NodeType string

const (
	TypeCanvas     NodeType = "canvas"
	TypeShape      NodeType = "shape"
	TypeConnection NodeType = "connection"
	TypeChat       NodeType = "chat"
	TypeComponent  NodeType = "component"
	TypeProject    NodeType = "project"
	TypeTemplate   NodeType = "template"
)

// ShapeType defines the kind of a shape node
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeLine      ShapeType = "line"
	ShapeArrow     ShapeType = "arrow"
	ShapeText      ShapeType = "text"
	ShapeImage     ShapeType = "image"
)

// ConnectionType defines how a connection is drawn
type ConnectionType string

const (
	ConnectionLine  ConnectionType = "line"
	ConnectionArrow ConnectionType = "arrow"
	ConnectionCurve ConnectionType = "curve"
)

// UnresolvedEndpoint is the sentinel recorded when a source format omits a
// connection's endpoint binding. Lookups against it fail closed.
const UnresolvedEndpoint = "unknown"

// Properties is the closed set of typed property variants. Each node type has
// a fixed, strongly-typed field list instead of an open property map.
type Properties interface {
	NodeType() NodeType

	// Clone returns a deep copy of the property set
	Clone() Properties
}

// CanvasProps holds canvas-level properties
type CanvasProps struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BackgroundColor string  `json:"backgroundColor"`
	GridEnabled     bool    `json:"gridEnabled"`
	Zoom            float64 `json:"zoom"`
}

func (p CanvasProps) NodeType() NodeType { return TypeCanvas }
func (p CanvasProps) Clone() Properties  { return p }

// ShapeProps holds the geometry and styling of a drawable shape
type ShapeProps struct {
	ShapeType   ShapeType `json:"shapeType"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Rotation    float64   `json:"rotation"`
	FillColor   string    `json:"fillColor"`
	StrokeColor string    `json:"strokeColor"`
	StrokeWidth float64   `json:"strokeWidth"`
	Text        string    `json:"text,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	FontFamily  string    `json:"fontFamily,omitempty"`
	TextAlign   string    `json:"textAlign,omitempty"`
}

func (p ShapeProps) NodeType() NodeType { return TypeShape }
func (p ShapeProps) Clone() Properties  { return p }

// ConnectionProps references two shapes by id. The references are weak:
// a connection never owns or keeps alive the shapes it points at, endpoints
// are resolved against the live shape sequence at render time.
type ConnectionProps struct {
	FromNodeID     string         `json:"fromNodeId"`
	ToNodeID       string         `json:"toNodeId"`
	ConnectionType ConnectionType `json:"connectionType"`
	StrokeColor    string         `json:"strokeColor"`
	StrokeWidth    float64        `json:"strokeWidth"`
	DashArray      string         `json:"dashArray,omitempty"`
}

func (p ConnectionProps) NodeType() NodeType { return TypeConnection }
func (p ConnectionProps) Clone() Properties  { return p }

// ChatMessage is one message in a chat node's transcript
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatProps holds the AI chat context attached to a document
type ChatProps struct {
	Messages     []ChatMessage `json:"messages"`
	AIContext    string        `json:"aiContext"`
	CurrentTopic string        `json:"currentTopic"`
}

func (p ChatProps) NodeType() NodeType { return TypeChat }

func (p ChatProps) Clone() Properties {
	clone := p
	clone.Messages = make([]ChatMessage, len(p.Messages))
	copy(clone.Messages, p.Messages)
	return clone
}

// ComponentProps describes a reusable UI component
type ComponentProps struct {
	ComponentType string                 `json:"componentType"`
	Name          string                 `json:"name"`
	Props         map[string]interface{} `json:"props,omitempty"`
}

func (p ComponentProps) NodeType() NodeType { return TypeComponent }

func (p ComponentProps) Clone() Properties {
	clone := p
	if p.Props != nil {
		clone.Props = make(map[string]interface{}, len(p.Props))
		for k, v := range p.Props {
			clone.Props[k] = v
		}
	}
	return clone
}

// ProjectProps describes a design project
type ProjectProps struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Collaborators []string `json:"collaborators,omitempty"`
	Templates     []string `json:"templates,omitempty"`
	Version       string   `json:"version"`
}

func (p ProjectProps) NodeType() NodeType { return TypeProject }

func (p ProjectProps) Clone() Properties {
	clone := p
	clone.Collaborators = append([]string(nil), p.Collaborators...)
	clone.Templates = append([]string(nil), p.Templates...)
	return clone
}

// TemplateProps describes a reusable document template
type TemplateProps struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description"`
}

func (p TemplateProps) NodeType() NodeType { return TypeTemplate }
func (p TemplateProps) Clone() Properties  { return p }

// DefaultShapeProps builds shape properties with the canonical defaults filled in
func DefaultShapeProps(cfg *config.DomainConfig, shapeType ShapeType, x, y, width, height float64) ShapeProps {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return ShapeProps{
		ShapeType:   shapeType,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Rotation:    0,
		FillColor:   cfg.DefaultFillColor,
		StrokeColor: cfg.DefaultStrokeColor,
		StrokeWidth: cfg.DefaultStrokeWidth,
	}
}

// DefaultConnectionProps builds connection properties with the canonical defaults
func DefaultConnectionProps(cfg *config.DomainConfig, fromID, toID string, connType ConnectionType) ConnectionProps {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return ConnectionProps{
		FromNodeID:     fromID,
		ToNodeID:       toID,
		ConnectionType: connType,
		StrokeColor:    cfg.DefaultStrokeColor,
		StrokeWidth:    cfg.DefaultStrokeWidth,
	}
}

// DefaultCanvasProps builds canvas properties with the canonical defaults
func DefaultCanvasProps(cfg *config.DomainConfig) CanvasProps {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return CanvasProps{
		Width:           cfg.CanvasWidth,
		Height:          cfg.CanvasHeight,
		BackgroundColor: cfg.DefaultBackground,
		GridEnabled:     cfg.GridEnabledByDefault,
		Zoom:            1.0,
	}
}
