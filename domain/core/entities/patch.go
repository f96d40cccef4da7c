package entities

import pkgerrors "designcanvas/pkg/errors"

// Patch is a partial property update. Fields left nil survive the merge,
// fields set overwrite. Applying a patch bumps the node version exactly once
// no matter how many fields it carries.
type Patch interface {
	apply(props Properties) (Properties, error)
}

// ShapePatch is a partial update for shape properties
type ShapePatch struct {
	ShapeType   *ShapeType
	X           *float64
	Y           *float64
	Width       *float64
	Height      *float64
	Rotation    *float64
	FillColor   *string
	StrokeColor *string
	StrokeWidth *float64
	Text        *string
	FontSize    *float64
	FontFamily  *string
	TextAlign   *string
}

func (p ShapePatch) apply(props Properties) (Properties, error) {
	sp, ok := props.(ShapeProps)
	if !ok {
		return nil, pkgerrors.NewValidationError("shape patch applied to non-shape node")
	}
	if p.ShapeType != nil {
		sp.ShapeType = *p.ShapeType
	}
	if p.X != nil {
		sp.X = *p.X
	}
	if p.Y != nil {
		sp.Y = *p.Y
	}
	if p.Width != nil {
		sp.Width = *p.Width
	}
	if p.Height != nil {
		sp.Height = *p.Height
	}
	if p.Rotation != nil {
		sp.Rotation = *p.Rotation
	}
	if p.FillColor != nil {
		sp.FillColor = *p.FillColor
	}
	if p.StrokeColor != nil {
		sp.StrokeColor = *p.StrokeColor
	}
	if p.StrokeWidth != nil {
		sp.StrokeWidth = *p.StrokeWidth
	}
	if p.Text != nil {
		sp.Text = *p.Text
	}
	if p.FontSize != nil {
		sp.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		sp.FontFamily = *p.FontFamily
	}
	if p.TextAlign != nil {
		sp.TextAlign = *p.TextAlign
	}
	return sp, nil
}

// CanvasPatch is a partial update for canvas properties
type CanvasPatch struct {
	Width           *float64
	Height          *float64
	BackgroundColor *string
	GridEnabled     *bool
	Zoom            *float64
}

func (p CanvasPatch) apply(props Properties) (Properties, error) {
	cp, ok := props.(CanvasProps)
	if !ok {
		return nil, pkgerrors.NewValidationError("canvas patch applied to non-canvas node")
	}
	if p.Width != nil {
		cp.Width = *p.Width
	}
	if p.Height != nil {
		cp.Height = *p.Height
	}
	if p.BackgroundColor != nil {
		cp.BackgroundColor = *p.BackgroundColor
	}
	if p.GridEnabled != nil {
		cp.GridEnabled = *p.GridEnabled
	}
	if p.Zoom != nil {
		cp.Zoom = *p.Zoom
	}
	return cp, nil
}

// ConnectionPatch is a partial update for connection properties
type ConnectionPatch struct {
	FromNodeID     *string
	ToNodeID       *string
	ConnectionType *ConnectionType
	StrokeColor    *string
	StrokeWidth    *float64
	DashArray      *string
}

func (p ConnectionPatch) apply(props Properties) (Properties, error) {
	cp, ok := props.(ConnectionProps)
	if !ok {
		return nil, pkgerrors.NewValidationError("connection patch applied to non-connection node")
	}
	if p.FromNodeID != nil {
		cp.FromNodeID = *p.FromNodeID
	}
	if p.ToNodeID != nil {
		cp.ToNodeID = *p.ToNodeID
	}
	if p.ConnectionType != nil {
		cp.ConnectionType = *p.ConnectionType
	}
	if p.StrokeColor != nil {
		cp.StrokeColor = *p.StrokeColor
	}
	if p.StrokeWidth != nil {
		cp.StrokeWidth = *p.StrokeWidth
	}
	if p.DashArray != nil {
		cp.DashArray = *p.DashArray
	}
	return cp, nil
}
