package api

import "net/http"

// RegisterRoutes mounts the quiz history and stats endpoints on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Sessions
	mux.HandleFunc("GET /sessions", h.listSessions)
	mux.HandleFunc("GET /sessions/recent", h.recentSessions)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)

	// Stats
	mux.HandleFunc("GET /stats/overall", h.overallStats)
	mux.HandleFunc("GET /stats/categories", h.categoryStats)
	mux.HandleFunc("GET /stats/weak-areas", h.weakAreas)
	mux.HandleFunc("GET /stats/mistakes", h.commonMistakes)
	mux.HandleFunc("GET /stats/trend", h.improvementTrend)
	mux.HandleFunc("GET /stats/best-score", h.bestScore)
	mux.HandleFunc("GET /stats/topics", h.topicPerformance)
	mux.HandleFunc("GET /stats/dashboard", h.dashboard)

	// Export / Import
	mux.HandleFunc("GET /export", h.exportSessions)
	mux.HandleFunc("POST /import", h.importSessions)
}
