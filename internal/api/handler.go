package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prepflow/backend/internal/domain/category"
	"github.com/prepflow/backend/internal/service"
	"github.com/prepflow/backend/internal/store"
)

// SessionStore is what export and import need from the store.
type SessionStore interface {
	store.SessionReader
	store.SessionWriter
}

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	history *service.HistoryService
	store   SessionStore
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(history *service.HistoryService, s SessionStore, logger *slog.Logger) *Handler {
	return &Handler{
		history: history,
		store:   s,
		logger:  logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// categoryParam reads the optional ?category= filter. An absent value means
// no filter; an unknown one is answered with a 400 and ok=false.
func categoryParam(w http.ResponseWriter, r *http.Request) (cat *category.Category, ok bool) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil, true
	}
	c, err := category.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown category: "+raw)
		return nil, false
	}
	return &c, true
}

// intParam reads a positive integer query parameter, falling back to def
// when it is absent.
func intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		respondError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return n, true
}
