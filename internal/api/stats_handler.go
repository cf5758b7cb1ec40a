package api

import (
	"net/http"

	"github.com/prepflow/backend/internal/analytics"
	"github.com/prepflow/backend/internal/domain/category"
)

// overallStats
// @Summary      Overall statistics
// @Description  Totals over every completed session, with best and worst category.
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  OverallStatsResponse
// @Router       /stats/overall [get]
func (h *Handler) overallStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toOverallResponse(h.history.GetOverallStats(r.Context())))
}

// categoryStats
// @Summary      Per-category statistics
// @Description  One entry per category (LLD, HLD, DSA), including categories with no quizzes.
// @Tags         Stats
// @Produce      json
// @Success      200  {array}  CategoryStatsResponse
// @Router       /stats/categories [get]
func (h *Handler) categoryStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toCategoryResponses(h.history.GetCategoryStats(r.Context())))
}

// weakAreas
// @Summary      Weak areas
// @Description  Topics averaging below 7 over at least two answers, weakest first.
// @Tags         Stats
// @Produce      json
// @Param        category  query     string  false  "Category filter"  Enums(LLD, HLD, DSA)
// @Success      200       {array}   WeakAreaResponse
// @Failure      400       {object}  map[string]string
// @Router       /stats/weak-areas [get]
func (h *Handler) weakAreas(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, toWeakAreaResponses(h.history.GetWeakAreas(r.Context(), cat)))
}

// commonMistakes
// @Summary      Common mistakes
// @Description  Most frequently missed concepts across all completed sessions.
// @Tags         Stats
// @Produce      json
// @Param        limit  query     int  false  "Maximum concepts returned"  default(10)
// @Success      200    {array}   MistakeResponse
// @Failure      400    {object}  map[string]string
// @Router       /stats/mistakes [get]
func (h *Handler) commonMistakes(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", analytics.DefaultMistakeLimit)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, toMistakeResponses(h.history.GetCommonMistakes(r.Context(), limit)))
}

// improvementTrend
// @Summary      Improvement trend
// @Description  Session averages of the latest completed sessions, oldest first, with their trend label.
// @Tags         Stats
// @Produce      json
// @Param        category  query     string  false  "Category filter"  Enums(LLD, HLD, DSA)
// @Param        count     query     int     false  "Number of sessions"  default(10)
// @Success      200       {object}  TrendResponse
// @Failure      400       {object}  map[string]string
// @Router       /stats/trend [get]
func (h *Handler) improvementTrend(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	count, ok := intParam(w, r, "count", analytics.DefaultTrendCount)
	if !ok {
		return
	}

	scores := h.history.GetImprovementTrend(r.Context(), cat, count)
	respondJSON(w, http.StatusOK, toTrendResponse(scores))
}

// bestScore
// @Summary      Best score in a category
// @Description  Highest session average in the category; best_score is null when there are no completed sessions.
// @Tags         Stats
// @Produce      json
// @Param        category  query     string  true  "Category"  Enums(LLD, HLD, DSA)
// @Success      200       {object}  BestScoreResponse
// @Failure      400       {object}  map[string]string
// @Router       /stats/best-score [get]
func (h *Handler) bestScore(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "category is required")
		return
	}
	cat, err := category.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown category: "+raw)
		return
	}

	respondJSON(w, http.StatusOK, BestScoreResponse{
		Category:  cat.String(),
		BestScore: h.history.GetBestScore(r.Context(), cat),
	})
}

// topicPerformance
// @Summary      Topic performance
// @Description  Average, attempt count, last attempt and trend for every topic answered.
// @Tags         Stats
// @Produce      json
// @Param        category  query     string  false  "Category filter"  Enums(LLD, HLD, DSA)
// @Success      200       {array}   TopicPerformanceResponse
// @Failure      400       {object}  map[string]string
// @Router       /stats/topics [get]
func (h *Handler) topicPerformance(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, toTopicResponses(h.history.GetTopicPerformance(r.Context(), cat)))
}

// dashboard
// @Summary      Stats dashboard
// @Description  Overall, per-category, weak areas, common mistakes and improvement trend in one call. The category filter narrows weak areas and the trend only.
// @Tags         Stats
// @Produce      json
// @Param        category  query     string  false  "Category filter"  Enums(LLD, HLD, DSA)
// @Success      200       {object}  DashboardResponse
// @Failure      400       {object}  map[string]string
// @Router       /stats/dashboard [get]
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, toDashboardResponse(h.history.GetDashboard(r.Context(), cat)))
}
