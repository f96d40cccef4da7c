// Package history implements linear, branch-pruning undo/redo over full
// scene snapshots. Each record deep-copies the shape and connection
// sequences; interactive scenes are small enough that full snapshots beat
// the complexity of a delta log.
package history

import (
	"time"

	"github.com/google/uuid"

	"designcanvas/domain/config"
	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/core/entities"
)

// ActionKind classifies a recordable user action
type ActionKind string

const (
	ActionCreate     ActionKind = "create"
	ActionMove       ActionKind = "move"
	ActionUpdate     ActionKind = "update"
	ActionDelete     ActionKind = "delete"
	ActionClear      ActionKind = "clear"
	ActionImport     ActionKind = "import"
	ActionSave       ActionKind = "save"
	ActionShare      ActionKind = "share"
	ActionExport     ActionKind = "export"
	ActionAnnotate   ActionKind = "annotation.add"
	ActionUnannotate ActionKind = "annotation.remove"
)

// Entry is one snapshot on the timeline
type Entry struct {
	ID          string
	Action      ActionKind
	Timestamp   time.Time
	Description string

	shapes      []*entities.Node
	connections []*entities.Node
}

// EntryInfo is the metadata view of an entry, without the snapshot payload
type EntryInfo struct {
	ID          string     `json:"id"`
	Action      ActionKind `json:"action"`
	Timestamp   time.Time  `json:"timestamp"`
	Description string     `json:"description"`
}

// Timeline is an append-only sequence of snapshot entries plus a current
// index. Index -1 means no recorded action yet; index == len-1 means the
// timeline is at its head. The entry count is capped; once full, recording
// evicts the oldest entry.
type Timeline struct {
	entries    []Entry
	index      int
	maxEntries int
}

// NewTimeline creates an empty timeline with the default entry cap
func NewTimeline() *Timeline {
	return NewTimelineWithLimit(config.DefaultDomainConfig().MaxHistoryEntries)
}

// NewTimelineWithLimit creates an empty timeline holding at most limit entries
func NewTimelineWithLimit(limit int) *Timeline {
	if limit < 1 {
		limit = 1
	}
	return &Timeline{
		entries:    []Entry{},
		index:      -1,
		maxEntries: limit,
	}
}

// Record captures a deep copy of the scene's current shapes and connections
// as a new entry. Any entries beyond the current index are discarded first:
// a new action after undo permanently prunes the undone future.
func (t *Timeline) Record(scene *aggregates.Scene, action ActionKind, description string) Entry {
	t.entries = t.entries[:t.index+1]

	shapes, connections := scene.CloneContents()
	entry := Entry{
		ID:          uuid.New().String(),
		Action:      action,
		Timestamp:   time.Now(),
		Description: description,
		shapes:      shapes,
		connections: connections,
	}
	t.entries = append(t.entries, entry)
	if len(t.entries) > t.maxEntries {
		t.entries = t.entries[1:]
	}
	t.index = len(t.entries) - 1
	return entry
}

// Undo steps the index back one entry and restores the scene from the
// snapshot now at the index. At index 0 or on an empty timeline it is a
// no-op and returns false.
func (t *Timeline) Undo(scene *aggregates.Scene) bool {
	if t.index <= 0 {
		return false
	}
	t.index--
	entry := t.entries[t.index]
	scene.Restore(entry.shapes, entry.connections)
	return true
}

// Redo steps the index forward one entry and restores the scene from it.
// At the head it is a no-op and returns false.
func (t *Timeline) Redo(scene *aggregates.Scene) bool {
	if t.index >= len(t.entries)-1 {
		return false
	}
	t.index++
	entry := t.entries[t.index]
	scene.Restore(entry.shapes, entry.connections)
	return true
}

// CanUndo reports whether an undo would change state
func (t *Timeline) CanUndo() bool {
	return t.index > 0
}

// CanRedo reports whether a redo would change state
func (t *Timeline) CanRedo() bool {
	return t.index < len(t.entries)-1
}

// Index returns the current position, -1 when nothing is recorded
func (t *Timeline) Index() int {
	return t.index
}

// Length returns the number of recorded entries
func (t *Timeline) Length() int {
	return len(t.entries)
}

// Entries returns the metadata of every entry in order, oldest first
func (t *Timeline) Entries() []EntryInfo {
	infos := make([]EntryInfo, len(t.entries))
	for i, entry := range t.entries {
		infos[i] = EntryInfo{
			ID:          entry.ID,
			Action:      entry.Action,
			Timestamp:   entry.Timestamp,
			Description: entry.Description,
		}
	}
	return infos
}
