package aggregates

import (
	"designcanvas/domain/core/entities"
	"designcanvas/domain/core/valueobjects"
)

// ResolvedConnection is a connection whose endpoints were successfully looked
// up against the live shape sequence. Anchor points are the geometric centers
// of the endpoint shapes' bounding boxes.
type ResolvedConnection struct {
	Connection *entities.Node
	From       valueobjects.Point
	To         valueobjects.Point
}

// ResolvedConnections resolves every connection's endpoints at render time.
// A connection whose endpoint lookup fails is skipped here but remains in the
// connections sequence, tolerating out-of-order import and later shape
// arrival. Endpoints are never stored.
func (s *Scene) ResolvedConnections() []ResolvedConnection {
	byID := make(map[string]entities.ShapeProps, len(s.shapes))
	for _, shape := range s.shapes {
		if props, ok := shape.Shape(); ok {
			byID[shape.ID().String()] = props
		}
	}

	resolved := make([]ResolvedConnection, 0, len(s.connections))
	for _, connection := range s.connections {
		props, ok := connection.Connection()
		if !ok {
			continue
		}
		from, fromOK := byID[props.FromNodeID]
		to, toOK := byID[props.ToNodeID]
		if !fromOK || !toOK {
			continue
		}
		resolved = append(resolved, ResolvedConnection{
			Connection: connection,
			From:       anchor(from),
			To:         anchor(to),
		})
	}
	return resolved
}

func anchor(props entities.ShapeProps) valueobjects.Point {
	bounds := valueobjects.Bounds{X: props.X, Y: props.Y, Width: props.Width, Height: props.Height}
	return bounds.Center()
}

// RenderList is the scene flattened into draw order, back to front:
// background and grid, connections, shapes in insertion order, then the
// selection highlight overlay.
type RenderList struct {
	BackgroundColor string
	ShowGrid        bool
	GridSize        float64
	Connections     []ResolvedConnection
	Shapes          []*entities.Node
	SelectedID      string
}

// RenderList assembles the draw-ordered view of the scene for a renderer
func (s *Scene) RenderList() RenderList {
	list := RenderList{
		BackgroundColor: s.settings.BackgroundColor,
		ShowGrid:        s.settings.ShowGrid,
		GridSize:        s.settings.GridSize,
		Shapes:          s.Shapes(),
	}
	if s.settings.ShowConnections {
		list.Connections = s.ResolvedConnections()
	}
	if selected, ok := s.SelectedID(); ok {
		list.SelectedID = selected.String()
	}
	return list
}
