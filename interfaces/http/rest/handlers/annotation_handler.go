package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/domain/core/valueobjects"
	"designcanvas/pkg/common"
)

// AnnotationHandler handles annotation HTTP requests
type AnnotationHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(scenes *services.SceneService, logger *zap.Logger) *AnnotationHandler {
	return &AnnotationHandler{scenes: scenes, logger: logger}
}

// AddAnnotationRequest represents the request body for adding an annotation
type AddAnnotationRequest struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// AddAnnotation handles POST /annotations
func (h *AnnotationHandler) AddAnnotation(w http.ResponseWriter, r *http.Request) {
	var req AddAnnotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}

	shape, err := h.scenes.AddAnnotation(r.Context(), req.X, req.Y, req.Text)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, shape)
}

// RemoveAnnotation handles DELETE /annotations/{annotationID}
func (h *AnnotationHandler) RemoveAnnotation(w http.ResponseWriter, r *http.Request) {
	id, err := valueobjects.NewNodeIDFromString(chi.URLParam(r, "annotationID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid annotation ID")
		return
	}

	if err := h.scenes.RemoveAnnotation(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}
