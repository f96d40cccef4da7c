package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/domain/core/entities"
	"designcanvas/domain/core/valueobjects"
	"designcanvas/pkg/common"
	"designcanvas/pkg/utils"
)

// ConnectionHandler handles connection-related HTTP requests
type ConnectionHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(scenes *services.SceneService, logger *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{scenes: scenes, logger: logger}
}

// UpdateConnectionRequest represents a partial connection update
type UpdateConnectionRequest struct {
	FromNodeID     *string  `json:"fromNodeId,omitempty"`
	ToNodeID       *string  `json:"toNodeId,omitempty"`
	ConnectionType *string  `json:"connectionType,omitempty" validate:"omitempty,oneof=line arrow"`
	StrokeColor    *string  `json:"strokeColor,omitempty"`
	StrokeWidth    *float64 `json:"strokeWidth,omitempty" validate:"omitempty,gte=0"`
	DashArray      *string  `json:"dashArray,omitempty"`
}

// UpdateConnection handles PUT /connections/{connectionID}
func (h *ConnectionHandler) UpdateConnection(w http.ResponseWriter, r *http.Request) {
	id, err := valueobjects.NewNodeIDFromString(chi.URLParam(r, "connectionID"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid connection ID")
		return
	}

	var req UpdateConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	patch := entities.ConnectionPatch{
		FromNodeID:  req.FromNodeID,
		ToNodeID:    req.ToNodeID,
		StrokeColor: req.StrokeColor,
		StrokeWidth: req.StrokeWidth,
		DashArray:   req.DashArray,
	}
	if req.ConnectionType != nil {
		connType := entities.ConnectionType(*req.ConnectionType)
		patch.ConnectionType = &connType
	}

	if err := h.scenes.UpdateConnection(r.Context(), id, patch); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}
