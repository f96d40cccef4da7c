package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/domain/core/aggregates"
	"designcanvas/pkg/common"
	"designcanvas/pkg/utils"
)

// SceneHandler handles scene view and interaction HTTP requests
type SceneHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(scenes *services.SceneService, logger *zap.Logger) *SceneHandler {
	return &SceneHandler{scenes: scenes, logger: logger}
}

// SetToolRequest represents the request body for switching the active tool
type SetToolRequest struct {
	Tool string `json:"tool" validate:"required,oneof=select hand rectangle circle text annotation"`
}

// PanRequest represents a viewport pan delta
type PanRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// GetScene handles GET /scene
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.scenes.RenderList())
}

// GetSnapshot handles GET /scene/snapshot
func (h *SceneHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.scenes.Snapshot())
}

// GetSettings handles GET /scene/settings
func (h *SceneHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.scenes.Settings())
}

// UpdateSettings handles PUT /scene/settings
func (h *SceneHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings aggregates.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}

	h.scenes.UpdateSettings(settings)
	common.RespondJSON(w, http.StatusOK, h.scenes.Settings())
}

// SetTool handles POST /scene/tool
func (h *SceneHandler) SetTool(w http.ResponseWriter, r *http.Request) {
	var req SetToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	h.scenes.SetTool(aggregates.Tool(req.Tool))
	common.RespondJSON(w, http.StatusOK, map[string]string{"tool": req.Tool})
}

// ZoomIn handles POST /scene/zoom-in
func (h *SceneHandler) ZoomIn(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]float64{"zoom": h.scenes.ZoomIn()})
}

// ZoomOut handles POST /scene/zoom-out
func (h *SceneHandler) ZoomOut(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]float64{"zoom": h.scenes.ZoomOut()})
}

// Pan handles POST /scene/pan
func (h *SceneHandler) Pan(w http.ResponseWriter, r *http.Request) {
	var req PanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}

	h.scenes.Pan(req.DX, req.DY)
	common.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ClearSelection handles DELETE /scene/selection
func (h *SceneHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.scenes.ClearSelection()
	common.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Clear handles POST /scene/clear
func (h *SceneHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.scenes.Clear(r.Context())
	common.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
