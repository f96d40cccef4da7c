package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/pkg/common"
)

// maxImportBytes caps uploaded documents at 10 MiB
const maxImportBytes = 10 << 20

// TransferHandler handles import, export, save and share HTTP requests
type TransferHandler struct {
	scenes *services.SceneService
	logger *zap.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(scenes *services.SceneService, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{scenes: scenes, logger: logger}
}

// Import handles POST /import/{format}; the body is the raw document
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Failed to read request body")
		return
	}

	if err := h.scenes.Import(r.Context(), format, data); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"format": format})
}

// Export handles GET /export?format=json
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(services.FormatJSON)
	}

	data, err := h.scenes.Export(r.Context(), services.ExportFormat(format))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="scene.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Save handles POST /save
func (h *TransferHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.scenes.Save(r.Context()); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// Load handles POST /load
func (h *TransferHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.scenes.Load(r.Context()); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"loaded": true})
}

// Share handles POST /share
func (h *TransferHandler) Share(w http.ResponseWriter, r *http.Request) {
	token, err := h.scenes.Share(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// LoadShared handles GET /shared?token=...
func (h *TransferHandler) LoadShared(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "token query parameter is required")
		return
	}

	blob, err := h.scenes.LoadShared(r.Context(), token)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, blob)
}
