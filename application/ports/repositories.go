package ports

import (
	"context"

	"designcanvas/domain/core/entities"
	"designcanvas/domain/events"
)

// GraphStore is the abstract persistence capability the core calls into.
// How it is backed (a graph database or otherwise) is not this core's
// concern; the adapter owns delivery, retry and timeout policy, and the
// core treats calls as fire-and-forget.
type GraphStore interface {
	// CreateNode persists a document node
	CreateNode(ctx context.Context, node *entities.Node) error

	// CreateRelationship links two persisted nodes
	CreateRelationship(ctx context.Context, fromID, toID, relationshipType string) error

	// FindNode retrieves a node by id, nil when absent
	FindNode(ctx context.Context, id string) (*entities.Node, error)

	// UpdateNode merges a partial property set into a persisted node
	UpdateNode(ctx context.Context, id string, patch entities.Patch) error

	// DeleteNode removes a node
	DeleteNode(ctx context.Context, id string) error

	// SearchNodes finds nodes whose text matches the query, optionally
	// scoped to one canvas subtree
	SearchNodes(ctx context.Context, query string, scopeID string) ([]*entities.Node, error)
}

// BlobStore persists the serialized scene as a single JSON blob under a
// fixed key. Round trips must be lossless.
type BlobStore interface {
	// Put stores a blob under the given key
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves a blob, reporting whether the key existed
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Delete removes a blob
	Delete(ctx context.Context, key string) error
}

// EventPublisher delivers domain events to interested collaborators
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
