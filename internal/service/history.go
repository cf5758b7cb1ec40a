// internal/service/history.go
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/prepflow/backend/internal/analytics"
	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/store"
)

// DefaultRecentLimit caps GetRecentSessions when no limit is given.
const DefaultRecentLimit = 5

// StoreErrorRecorder is notified whenever a store failure is swallowed.
type StoreErrorRecorder interface {
	StoreError(operation string)
}

// HistoryService answers quiz history and analytics queries.
// It holds no state besides its dependencies: every call fetches a fresh
// snapshot from the store, so two calls may observe different data.
//
// Store failures never reach callers. They are logged and the query
// degrades to an empty result, so stats screens always have something
// to render.
type HistoryService struct {
	store   store.SessionReader
	logger  *slog.Logger
	metrics StoreErrorRecorder
}

// NewHistoryService creates a HistoryService. recorder may be nil.
func NewHistoryService(s store.SessionReader, logger *slog.Logger, recorder StoreErrorRecorder) *HistoryService {
	return &HistoryService{
		store:   s,
		logger:  logger,
		metrics: recorder,
	}
}

// Dashboard bundles the queries a stats screen renders together.
type Dashboard struct {
	Overall     analytics.OverallStats
	Categories  []analytics.CategoryStats
	WeakAreas   []analytics.WeakArea
	Mistakes    []analytics.MistakeFrequency
	Improvement []float64
}

// fetchSessions is the single accessor every query goes through.
func (hs *HistoryService) fetchSessions(ctx context.Context, operation string, q store.Query) []quizsession.QuizSession {
	sessions, err := hs.store.ListSessions(ctx, q)
	if err != nil {
		hs.logger.Error("failed to fetch quiz sessions",
			"operation", operation,
			"completed_only", q.CompletedOnly,
			"error", err,
		)
		if hs.metrics != nil {
			hs.metrics.StoreError(operation)
		}
		return []quizsession.QuizSession{}
	}
	return sessions
}

// GetAllSessions returns every session, newest first.
func (hs *HistoryService) GetAllSessions(ctx context.Context, cat *category.Category) []quizsession.QuizSession {
	return hs.fetchSessions(ctx, "all_sessions", store.Query{
		Category:       cat,
		SortDescending: true,
	})
}

// GetRecentSessions returns the latest completed sessions, newest first.
func (hs *HistoryService) GetRecentSessions(ctx context.Context, limit int, cat *category.Category) []quizsession.QuizSession {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return hs.fetchSessions(ctx, "recent_sessions", store.Query{
		Category:       cat,
		CompletedOnly:  true,
		SortDescending: true,
		Limit:          limit,
	})
}

// GetSession is a plain lookup; unlike the analytics queries it reports
// store.ErrNotFound and other failures to the caller.
func (hs *HistoryService) GetSession(ctx context.Context, id string) (*quizsession.QuizSession, error) {
	return hs.store.GetSession(ctx, id)
}

func (hs *HistoryService) completed(ctx context.Context, operation string, cat *category.Category) []quizsession.QuizSession {
	return hs.fetchSessions(ctx, operation, store.Query{
		Category:       cat,
		CompletedOnly:  true,
		SortDescending: true,
	})
}

func (hs *HistoryService) GetOverallStats(ctx context.Context) analytics.OverallStats {
	return analytics.Overall(hs.completed(ctx, "overall_stats", nil))
}

func (hs *HistoryService) GetCategoryStats(ctx context.Context) []analytics.CategoryStats {
	return analytics.ByCategory(hs.completed(ctx, "category_stats", nil))
}

func (hs *HistoryService) GetWeakAreas(ctx context.Context, cat *category.Category) []analytics.WeakArea {
	// Oldest first so first-seen tie-breaks follow the learner's history.
	sessions := hs.fetchSessions(ctx, "weak_areas", store.Query{
		Category:      cat,
		CompletedOnly: true,
	})
	return analytics.WeakAreas(sessions)
}

func (hs *HistoryService) GetCommonMistakes(ctx context.Context, limit int) []analytics.MistakeFrequency {
	sessions := hs.fetchSessions(ctx, "common_mistakes", store.Query{CompletedOnly: true})
	return analytics.CommonMistakes(sessions, limit)
}

// GetImprovementTrend returns up to count session averages, oldest first.
func (hs *HistoryService) GetImprovementTrend(ctx context.Context, cat *category.Category, count int) []float64 {
	sessions := hs.fetchSessions(ctx, "improvement_trend", store.Query{
		Category:      cat,
		CompletedOnly: true,
	})
	return analytics.ImprovementTrend(sessions, count)
}

// GetBestScore returns nil when the category has no completed sessions.
func (hs *HistoryService) GetBestScore(ctx context.Context, cat category.Category) *float64 {
	best, ok := analytics.BestScore(hs.completed(ctx, "best_score", &cat))
	if !ok {
		return nil
	}
	return &best
}

func (hs *HistoryService) GetTopicPerformance(ctx context.Context, cat *category.Category) []analytics.TopicPerformance {
	sessions := hs.fetchSessions(ctx, "topic_performance", store.Query{
		Category:      cat,
		CompletedOnly: true,
	})
	return analytics.TopicPerformances(sessions)
}

// GetDashboard runs the stats screen queries concurrently. cat narrows the
// weak areas and the improvement trend; overall and category stats always
// cover everything.
func (hs *HistoryService) GetDashboard(ctx context.Context, cat *category.Category) Dashboard {
	var (
		d Dashboard
		g errgroup.Group
	)

	g.Go(func() error {
		d.Overall = hs.GetOverallStats(ctx)
		return nil
	})
	g.Go(func() error {
		d.Categories = hs.GetCategoryStats(ctx)
		return nil
	})
	g.Go(func() error {
		d.WeakAreas = hs.GetWeakAreas(ctx, cat)
		return nil
	})
	g.Go(func() error {
		d.Mistakes = hs.GetCommonMistakes(ctx, analytics.DefaultMistakeLimit)
		return nil
	})
	g.Go(func() error {
		d.Improvement = hs.GetImprovementTrend(ctx, cat, analytics.DefaultTrendCount)
		return nil
	})

	// Queries degrade instead of failing, so Wait has nothing to report.
	_ = g.Wait()
	return d
}
