package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"filedesk-backend/internal/i18n"
	"filedesk-backend/internal/metrics"
	"filedesk-backend/internal/models"
	"filedesk-backend/internal/service"
	"filedesk-backend/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	authService *service.AuthService
	fileService *service.FileService
	appState    *state.AppState
	validate    *validator.Validate
	log         *zap.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(authSvc *service.AuthService, fileSvc *service.FileService, appState *state.AppState, log *zap.Logger) *Handler {
	return &Handler{
		authService: authSvc,
		fileService: fileSvc,
		appState:    appState,
		validate:    validator.New(),
		log:         log,
	}
}

// === Response helpers ===

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

// respondWithOpError maps a service error onto the wire. Typed operation
// failures carry their own status and user-facing message; anything else is an
// infrastructure failure.
func (h *Handler) respondWithOpError(w http.ResponseWriter, err error) {
	var opErr *service.Error
	if errors.As(err, &opErr) {
		h.respondWithError(w, opErr.Status, opErr.Message)
		return
	}
	h.log.Error("operation failed", zap.Error(err))
	h.respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"Internal server error"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// === Auth handlers ===

// handleRegister (POST /auth/register)
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		metrics.RecordAuthAttempt(false)
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordAuthAttempt(true)
	h.respondWithJSON(w, http.StatusCreated, result)
}

// handleLogin (POST /auth/login)
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordAuthAttempt(false)
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordAuthAttempt(true)
	h.respondWithJSON(w, http.StatusOK, result)
}

// handleWhoami (GET /auth/whoami)
func (h *Handler) handleWhoami(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Whoami(r.Context())
	if err != nil {
		h.respondWithOpError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, user)
}

// handleLogout (POST /auth/logout)
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		h.respondWithOpError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// === File handlers ===

// handleListFiles (GET /files?parent=)
func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	parent := r.URL.Query().Get("parent")

	entries, err := h.fileService.List(r.Context(), parent)
	if err != nil {
		metrics.RecordFileOp("list", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("list", http.StatusOK)
	h.respondWithJSON(w, http.StatusOK, entries)
}

// handleCreateFile (POST /files)
func (h *Handler) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name" validate:"required"`
		Parent string `json:"parent"`
		Type   string `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	entry, err := h.fileService.Create(r.Context(), req.Name, req.Parent, models.EntryType(req.Type))
	if err != nil {
		metrics.RecordFileOp("create", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("create", http.StatusCreated)
	h.respondWithJSON(w, http.StatusCreated, entry)
}

// handleGetFile (GET /files/{id})
func (h *Handler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.fileService.Get(r.Context(), id)
	if err != nil {
		metrics.RecordFileOp("get", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("get", http.StatusOK)
	h.respondWithJSON(w, http.StatusOK, entry)
}

// handleSaveFile (PUT /files/{id}/content)
func (h *Handler) handleSaveFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	entry, err := h.fileService.Save(r.Context(), id, req.Content)
	if err != nil {
		metrics.RecordFileOp("save", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("save", http.StatusOK)
	h.respondWithJSON(w, http.StatusOK, entry)
}

// handleRenameFile (POST /files/{id}/rename)
func (h *Handler) handleRenameFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	entry, err := h.fileService.Rename(r.Context(), id, req.Name)
	if err != nil {
		metrics.RecordFileOp("rename", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("rename", http.StatusOK)
	h.respondWithJSON(w, http.StatusOK, entry)
}

// handleMoveFile (POST /files/{id}/move)
func (h *Handler) handleMoveFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Parent string `json:"parent" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	entry, err := h.fileService.Move(r.Context(), id, req.Parent)
	if err != nil {
		metrics.RecordFileOp("move", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("move", http.StatusOK)
	h.respondWithJSON(w, http.StatusOK, entry)
}

// handleDeleteFile (DELETE /files/{id})
func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		metrics.RecordFileOp("delete", service.StatusOf(err))
		h.respondWithOpError(w, err)
		return
	}

	metrics.RecordFileOp("delete", http.StatusNoContent)
	w.WriteHeader(http.StatusNoContent)
}

// === Localization ===

// handleI18n (GET /i18n/{lang}) serves the UI dictionary for a language.
func (h *Handler) handleI18n(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Lang(chi.URLParam(r, "lang"))
	if !i18n.Supported(lang) {
		h.respondWithError(w, http.StatusNotFound, "Unsupported language")
		return
	}
	h.respondWithJSON(w, http.StatusOK, i18n.Dict(lang))
}

// === Preferences ===

type prefsResponse struct {
	Lang  i18n.Lang `json:"lang"`
	Theme string    `json:"theme"`
}

// handleGetPrefs (GET /prefs) returns the persisted UI preferences.
func (h *Handler) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, prefsResponse{
		Lang:  h.appState.Lang.Get(),
		Theme: h.appState.Theme.Get(),
	})
}

// handleSetPrefs (PUT /prefs) updates language and/or theme. Omitted fields
// keep their current value.
func (h *Handler) handleSetPrefs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lang  string `json:"lang"`
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.Lang != "" {
		lang := i18n.Lang(req.Lang)
		if !i18n.Supported(lang) {
			h.respondWithError(w, http.StatusBadRequest, "Unsupported language")
			return
		}
		if err := h.appState.Lang.Set(r.Context(), lang); err != nil {
			h.respondWithOpError(w, err)
			return
		}
	}
	if req.Theme != "" {
		if req.Theme != "light" && req.Theme != "dark" {
			h.respondWithError(w, http.StatusBadRequest, "Unsupported theme")
			return
		}
		if err := h.appState.Theme.Set(r.Context(), req.Theme); err != nil {
			h.respondWithOpError(w, err)
			return
		}
	}

	h.respondWithJSON(w, http.StatusOK, prefsResponse{
		Lang:  h.appState.Lang.Get(),
		Theme: h.appState.Theme.Get(),
	})
}

// handleHealth (GET /healthz)
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
