package config

// DomainConfig holds all configurable business rules and canvas defaults
type DomainConfig struct {
	// Canvas defaults
	CanvasWidth          float64
	CanvasHeight         float64
	DefaultBackground    string
	GridEnabledByDefault bool

	// Canonical shape defaults applied when a source omits a field
	DefaultFillColor   string
	DefaultStrokeColor string
	DefaultStrokeWidth float64
	DefaultFontSize    float64
	DefaultFontFamily  string
	DefaultTextAlign   string
	DefaultText        string

	// View settings
	ZoomFactor  float64
	MinZoom     float64
	MaxZoom     float64
	GridSize    float64
	MinGridSize float64
	MaxGridSize float64

	// Scene constraints
	MaxShapesPerScene      int
	MaxConnectionsPerScene int

	// History
	MaxHistoryEntries int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		CanvasWidth:          1200,
		CanvasHeight:         800,
		DefaultBackground:    "#ffffff",
		GridEnabledByDefault: true,

		DefaultFillColor:   "#ffffff",
		DefaultStrokeColor: "#000000",
		DefaultStrokeWidth: 2,
		DefaultFontSize:    16,
		DefaultFontFamily:  "Arial, sans-serif",
		DefaultTextAlign:   "left",
		DefaultText:        "New Text",

		ZoomFactor:  1.2,
		MinZoom:     0.1,
		MaxZoom:     5,
		GridSize:    20,
		MinGridSize: 10,
		MaxGridSize: 50,

		MaxShapesPerScene:      10000,
		MaxConnectionsPerScene: 50000,

		MaxHistoryEntries: 500,
	}
}

// ToolGeometry is the fixed default geometry a drawing tool applies at the
// pointer position. Offsets shift the shape so it lands centered or anchored
// on the click point.
type ToolGeometry struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

// ToolGeometries maps each creation tool to its default geometry policy
func (c *DomainConfig) ToolGeometries() map[string]ToolGeometry {
	return map[string]ToolGeometry{
		"rectangle":  {Width: 100, Height: 50, OffsetX: -50, OffsetY: -25},
		"circle":     {Width: 50, Height: 50, OffsetX: -25, OffsetY: -25},
		"text":       {Width: 100, Height: 30},
		"annotation": {Width: 120, Height: 60},
	}
}
