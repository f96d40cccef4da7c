// Package memory provides map-backed adapters for the persistence ports.
// They are the default wiring for local development and tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"designcanvas/application/ports"
	"designcanvas/domain/core/entities"
	pkgerrors "designcanvas/pkg/errors"
)

type relationship struct {
	fromID string
	toID   string
	kind   string
}

// GraphStore is an in-memory node and relationship store
type GraphStore struct {
	mu            sync.RWMutex
	nodes         map[string]*entities.Node
	relationships []relationship
}

// NewGraphStore creates an empty in-memory graph store
func NewGraphStore() *GraphStore {
	return &GraphStore{
		nodes: make(map[string]*entities.Node),
	}
}

var _ ports.GraphStore = (*GraphStore)(nil)

// CreateNode stores a deep copy of the node, replacing any previous version
func (s *GraphStore) CreateNode(ctx context.Context, node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes[node.ID().String()] = node.Clone()
	return nil
}

// CreateRelationship links two stored nodes
func (s *GraphStore) CreateRelationship(ctx context.Context, fromID, toID, relationshipType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[fromID]; !ok {
		return pkgerrors.NewNotFoundError("node not found: " + fromID)
	}
	if _, ok := s.nodes[toID]; !ok {
		return pkgerrors.NewNotFoundError("node not found: " + toID)
	}

	s.relationships = append(s.relationships, relationship{fromID: fromID, toID: toID, kind: relationshipType})
	return nil
}

// FindNode returns a copy of a stored node, nil when absent
func (s *GraphStore) FindNode(ctx context.Context, id string) (*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}
	return node.Clone(), nil
}

// UpdateNode merges a partial property set into a stored node
func (s *GraphStore) UpdateNode(ctx context.Context, id string, patch entities.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return pkgerrors.NewNotFoundError("node not found: " + id)
	}
	return node.Apply(patch)
}

// DeleteNode removes a node and any relationships touching it
func (s *GraphStore) DeleteNode(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[id]; !ok {
		return pkgerrors.NewNotFoundError("node not found: " + id)
	}
	delete(s.nodes, id)

	kept := s.relationships[:0]
	for _, rel := range s.relationships {
		if rel.fromID != id && rel.toID != id {
			kept = append(kept, rel)
		}
	}
	s.relationships = kept
	return nil
}

// SearchNodes finds nodes whose text content contains the query, case
// insensitively. A non-empty scopeID restricts the search to that node and
// the nodes it links to.
func (s *GraphStore) SearchNodes(ctx context.Context, query string, scopeID string) ([]*entities.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var scope map[string]bool
	if scopeID != "" {
		scope = s.reachableFrom(scopeID)
	}

	var matches []*entities.Node
	for id, node := range s.nodes {
		if scope != nil && !scope[id] {
			continue
		}
		if nodeMatches(node, needle) {
			matches = append(matches, node.Clone())
		}
	}
	return matches, nil
}

// reachableFrom collects scopeID plus every node it links to, directly or
// transitively. Callers must hold s.mu.
func (s *GraphStore) reachableFrom(scopeID string) map[string]bool {
	seen := map[string]bool{scopeID: true}
	frontier := []string{scopeID}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, rel := range s.relationships {
			if rel.fromID == current && !seen[rel.toID] {
				seen[rel.toID] = true
				frontier = append(frontier, rel.toID)
			}
		}
	}
	return seen
}

func nodeMatches(node *entities.Node, needle string) bool {
	found := false
	node.Walk(func(n *entities.Node) bool {
		if strings.Contains(strings.ToLower(nodeText(n)), needle) {
			found = true
			return false
		}
		return true
	})
	return found
}

func nodeText(node *entities.Node) string {
	switch props := node.Properties().(type) {
	case entities.ShapeProps:
		return props.Text
	case entities.ChatProps:
		var parts []string
		for _, msg := range props.Messages {
			parts = append(parts, msg.Content)
		}
		return strings.Join(parts, "\n")
	case entities.ComponentProps:
		return props.Name
	case entities.ProjectProps:
		return props.Name + "\n" + props.Description
	case entities.TemplateProps:
		return props.Name + "\n" + props.Description
	default:
		return ""
	}
}
