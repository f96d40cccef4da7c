package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/pkg/common"
)

// HistoryHandler handles undo/redo HTTP requests
type HistoryHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(scenes *services.SceneService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{scenes: scenes, logger: logger}
}

// HistoryResponse represents the timeline metadata view
type HistoryResponse struct {
	Entries interface{} `json:"entries"`
	Index   int         `json:"index"`
	CanUndo bool        `json:"canUndo"`
	CanRedo bool        `json:"canRedo"`
}

// GetHistory handles GET /history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, index := h.scenes.History()
	common.RespondJSON(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Index:   index,
		CanUndo: h.scenes.CanUndo(),
		CanRedo: h.scenes.CanRedo(),
	})
}

// Undo handles POST /history/undo
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]bool{"undone": h.scenes.Undo()})
}

// Redo handles POST /history/redo
func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]bool{"redone": h.scenes.Redo()})
}
