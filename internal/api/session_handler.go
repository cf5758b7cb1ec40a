package api

import (
	"net/http"

	"github.com/prepflow/backend/internal/service"
)

// listSessions returns every quiz session, newest first.
// @Summary      List quiz sessions
// @Description  Returns all quiz sessions, completed or not, newest first.
// @Tags         Sessions
// @Produce      json
// @Param        category  query     string  false  "Category filter"  Enums(LLD, HLD, DSA)
// @Success      200       {array}   SessionResponse
// @Failure      400       {object}  map[string]string
// @Router       /sessions [get]
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}

	sessions := h.history.GetAllSessions(r.Context(), cat)
	respondJSON(w, http.StatusOK, toSessionResponses(sessions))
}

// recentSessions returns the latest completed sessions.
// @Summary      Recent quiz sessions
// @Description  Returns the most recent completed sessions, newest first.
// @Tags         Sessions
// @Produce      json
// @Param        limit     query     int     false  "Maximum sessions returned"  default(5)
// @Param        category  query     string  false  "Category filter"  Enums(LLD, HLD, DSA)
// @Success      200       {array}   SessionResponse
// @Failure      400       {object}  map[string]string
// @Router       /sessions/recent [get]
func (h *Handler) recentSessions(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", service.DefaultRecentLimit)
	if !ok {
		return
	}
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}

	sessions := h.history.GetRecentSessions(r.Context(), limit, cat)
	respondJSON(w, http.StatusOK, toSessionResponses(sessions))
}

// getSession returns one session with its question records.
// @Summary      Get a quiz session
// @Description  Returns a session with every graded question record.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.history.GetSession(r.Context(), r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(*session, true))
}
