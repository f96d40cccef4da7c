package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/core/entities"
	"designcanvas/domain/core/valueobjects"
	"designcanvas/pkg/common"
	"designcanvas/pkg/utils"
)

// ShapeHandler handles shape-related HTTP requests
type ShapeHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewShapeHandler creates a new shape handler
func NewShapeHandler(scenes *services.SceneService, logger *zap.Logger) *ShapeHandler {
	return &ShapeHandler{scenes: scenes, logger: logger}
}

// CreateShapeRequest represents the request body for creating a shape
type CreateShapeRequest struct {
	Tool string  `json:"tool" validate:"required,oneof=rectangle circle text annotation"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// MoveShapeRequest represents one pointer position during or at the end of
// a drag. Final marks the end of the gesture.
type MoveShapeRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Final bool    `json:"final"`
}

// UpdateShapeRequest represents a partial shape update. Absent fields are
// left untouched.
type UpdateShapeRequest struct {
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	Width       *float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height      *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Rotation    *float64 `json:"rotation,omitempty"`
	FillColor   *string  `json:"fillColor,omitempty"`
	StrokeColor *string  `json:"strokeColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty" validate:"omitempty,gte=0"`
	Text        *string  `json:"text,omitempty"`
	FontSize    *float64 `json:"fontSize,omitempty" validate:"omitempty,gt=0"`
	FontFamily  *string  `json:"fontFamily,omitempty"`
	TextAlign   *string  `json:"textAlign,omitempty" validate:"omitempty,oneof=left center right"`
}

// CreateShape handles POST /shapes
func (h *ShapeHandler) CreateShape(w http.ResponseWriter, r *http.Request) {
	var req CreateShapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	shape, err := h.scenes.CreateShape(r.Context(), aggregates.Tool(req.Tool), req.X, req.Y)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, shape)
}

// MoveShape handles POST /shapes/{shapeID}/move
func (h *ShapeHandler) MoveShape(w http.ResponseWriter, r *http.Request) {
	id, ok := h.shapeID(w, r)
	if !ok {
		return
	}

	var req MoveShapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}

	var err error
	if req.Final {
		err = h.scenes.EndMove(r.Context(), id, req.X, req.Y)
	} else {
		err = h.scenes.MoveShape(r.Context(), id, req.X, req.Y)
	}
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"id": id.String(), "final": req.Final})
}

// UpdateShape handles PUT /shapes/{shapeID}
func (h *ShapeHandler) UpdateShape(w http.ResponseWriter, r *http.Request) {
	id, ok := h.shapeID(w, r)
	if !ok {
		return
	}

	var req UpdateShapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	patch := entities.ShapePatch{
		X:           req.X,
		Y:           req.Y,
		Width:       req.Width,
		Height:      req.Height,
		Rotation:    req.Rotation,
		FillColor:   req.FillColor,
		StrokeColor: req.StrokeColor,
		StrokeWidth: req.StrokeWidth,
		Text:        req.Text,
		FontSize:    req.FontSize,
		FontFamily:  req.FontFamily,
		TextAlign:   req.TextAlign,
	}
	if err := h.scenes.UpdateShape(r.Context(), id, patch); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// DeleteShape handles DELETE /shapes/{shapeID}
func (h *ShapeHandler) DeleteShape(w http.ResponseWriter, r *http.Request) {
	id, ok := h.shapeID(w, r)
	if !ok {
		return
	}

	if err := h.scenes.DeleteShape(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

// SelectShape handles POST /shapes/{shapeID}/select
func (h *ShapeHandler) SelectShape(w http.ResponseWriter, r *http.Request) {
	id, ok := h.shapeID(w, r)
	if !ok {
		return
	}

	if err := h.scenes.SelectShape(id); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"selectedId": id.String()})
}

func (h *ShapeHandler) shapeID(w http.ResponseWriter, r *http.Request) (valueobjects.NodeID, bool) {
	id, err := valueobjects.NewNodeIDFromString(chi.URLParam(r, "shapeID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid shape ID")
		return valueobjects.NodeID{}, false
	}
	return id, true
}
