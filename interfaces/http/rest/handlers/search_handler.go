package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/pkg/common"
)

// SearchHandler handles search HTTP requests
type SearchHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(scenes *services.SceneService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{scenes: scenes, logger: logger}
}

// Search handles GET /search?q=...&scope=...
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	scopeID := r.URL.Query().Get("scope")

	nodes, err := h.scenes.Search(r.Context(), query, scopeID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": nodes,
		"count":   len(nodes),
	})
}
