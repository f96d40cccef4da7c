package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Snap(t *testing.T) {
	tests := []struct {
		name     string
		in       Point
		gridSize float64
		want     Point
	}{
		{"rounds up", Point{X: 53, Y: 77}, 20, Point{X: 60, Y: 80}},
		{"rounds down", Point{X: 49, Y: 9}, 20, Point{X: 40, Y: 0}},
		{"midpoint rounds away from zero", Point{X: 30, Y: 50}, 20, Point{X: 40, Y: 60}},
		{"negative coordinates", Point{X: -53, Y: -77}, 20, Point{X: -60, Y: -80}},
		{"zero grid is identity", Point{X: 53, Y: 77}, 0, Point{X: 53, Y: 77}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Snap(tt.gridSize))
		})
	}
}

func TestBounds_Center(t *testing.T) {
	bounds := Bounds{X: 10, Y: 20, Width: 100, Height: 50}
	assert.Equal(t, Point{X: 60, Y: 45}, bounds.Center())
}

func TestNodeID_RoundTrip(t *testing.T) {
	id := NewNodeID()
	assert.False(t, id.IsZero())

	parsed, err := NewNodeIDFromString(id.String())
	assert.NoError(t, err)
	assert.True(t, parsed.Equals(id))

	_, err = NewNodeIDFromString("not-a-uuid")
	assert.Error(t, err)
}
