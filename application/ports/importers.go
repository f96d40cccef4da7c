package ports

import (
	"designcanvas/domain/core/entities"
)

// SceneImporter converts a foreign document format into normalized shape
// and connection nodes with freshly minted ids. Implementations must not
// touch the live scene; replacement is the caller's decision.
type SceneImporter interface {
	// Format names the source format, e.g. "excalidraw"
	Format() string

	// Import parses and normalizes a serialized foreign document
	Import(data []byte) (shapes []*entities.Node, connections []*entities.Node, err error)
}
