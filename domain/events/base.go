package events

import (
	"time"

	"designcanvas/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events.
// Events describe something that already happened to the scene.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// ShapeCreated is raised when a shape is added to the scene
type ShapeCreated struct {
	BaseEvent
	SceneID string              `json:"scene_id"`
	ShapeID valueobjects.NodeID `json:"shape_id"`
	Tool    string              `json:"tool"`
}

// NewShapeCreated creates a ShapeCreated event
func NewShapeCreated(sceneID string, shapeID valueobjects.NodeID, tool string, timestamp time.Time) ShapeCreated {
	return ShapeCreated{
		BaseEvent: BaseEvent{
			AggregateID: sceneID,
			EventType:   "scene.shape_created",
			Timestamp:   timestamp,
		},
		SceneID: sceneID,
		ShapeID: shapeID,
		Tool:    tool,
	}
}

// ShapeMoved is raised once per completed drag gesture
type ShapeMoved struct {
	BaseEvent
	SceneID string              `json:"scene_id"`
	ShapeID valueobjects.NodeID `json:"shape_id"`
	X       float64             `json:"x"`
	Y       float64             `json:"y"`
}

// NewShapeMoved creates a ShapeMoved event
func NewShapeMoved(sceneID string, shapeID valueobjects.NodeID, x, y float64, timestamp time.Time) ShapeMoved {
	return ShapeMoved{
		BaseEvent: BaseEvent{
			AggregateID: sceneID,
			EventType:   "scene.shape_moved",
			Timestamp:   timestamp,
		},
		SceneID: sceneID,
		ShapeID: shapeID,
		X:       x,
		Y:       y,
	}
}

// ShapeDeleted is raised when a shape is removed from the scene
type ShapeDeleted struct {
	BaseEvent
	SceneID string              `json:"scene_id"`
	ShapeID valueobjects.NodeID `json:"shape_id"`
}

// NewShapeDeleted creates a ShapeDeleted event
func NewShapeDeleted(sceneID string, shapeID valueobjects.NodeID, timestamp time.Time) ShapeDeleted {
	return ShapeDeleted{
		BaseEvent: BaseEvent{
			AggregateID: sceneID,
			EventType:   "scene.shape_deleted",
			Timestamp:   timestamp,
		},
		SceneID: sceneID,
		ShapeID: shapeID,
	}
}

// SceneCleared is raised when the scene is reset to empty
type SceneCleared struct {
	BaseEvent
	SceneID string `json:"scene_id"`
}

// NewSceneCleared creates a SceneCleared event
func NewSceneCleared(sceneID string, timestamp time.Time) SceneCleared {
	return SceneCleared{
		BaseEvent: BaseEvent{
			AggregateID: sceneID,
			EventType:   "scene.cleared",
			Timestamp:   timestamp,
		},
		SceneID: sceneID,
	}
}

// SceneImported is raised after a normalizer's output replaces the scene
type SceneImported struct {
	BaseEvent
	SceneID     string `json:"scene_id"`
	Format      string `json:"format"`
	Shapes      int    `json:"shapes"`
	Connections int    `json:"connections"`
}

// NewSceneImported creates a SceneImported event
func NewSceneImported(sceneID, format string, shapes, connections int, timestamp time.Time) SceneImported {
	return SceneImported{
		BaseEvent: BaseEvent{
			AggregateID: sceneID,
			EventType:   "scene.imported",
			Timestamp:   timestamp,
		},
		SceneID:     sceneID,
		Format:      format,
		Shapes:      shapes,
		Connections: connections,
	}
}

// SceneSaved is raised when the scene is persisted
type SceneSaved struct {
	BaseEvent
	SceneID string `json:"scene_id"`
	BlobKey string `json:"blob_key"`
}

// NewSceneSaved creates a SceneSaved event
func NewSceneSaved(sceneID, blobKey string, timestamp time.Time) SceneSaved {
	return SceneSaved{
		BaseEvent: BaseEvent{
			AggregateID: sceneID,
			EventType:   "scene.saved",
			Timestamp:   timestamp,
		},
		SceneID: sceneID,
		BlobKey: blobKey,
	}
}
