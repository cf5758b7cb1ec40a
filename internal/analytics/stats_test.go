package analytics_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/prepflow/backend/internal/analytics"
	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverall_Empty(t *testing.T) {
	stats := analytics.Overall(nil)

	if stats.TotalQuizzes != 0 || stats.AverageScore != 0 || stats.TotalQuestions != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.BestCategory != nil || stats.WorstCategory != nil {
		t.Error("expected nil best/worst category")
	}
}

func TestOverall_OnlyInProgressIsEmpty(t *testing.T) {
	stats := analytics.Overall([]quizsession.QuizSession{
		inProgressSession(category.LLD, 0, 8, record("SOLID", 8)),
	})

	if stats.TotalQuizzes != 0 || stats.BestCategory != nil {
		t.Errorf("expected in-progress sessions to be ignored, got %+v", stats)
	}
}

func TestOverall_AveragesSessionsNotQuestions(t *testing.T) {
	sessions := []quizsession.QuizSession{
		completedSession(category.LLD, 0, 8, record("SOLID", 8)),
		completedSession(category.HLD, 1, 4, record("Caching", 4), record("Caching", 4), record("Caching", 4)),
	}

	stats := analytics.Overall(sessions)

	if stats.TotalQuizzes != 2 {
		t.Errorf("expected 2 quizzes, got %d", stats.TotalQuizzes)
	}
	// pooled over questions this would be 5.0
	if !approx(stats.AverageScore, 6.0) {
		t.Errorf("expected 6.0, got %v", stats.AverageScore)
	}
	if stats.TotalQuestions != 4 {
		t.Errorf("expected 4 questions, got %d", stats.TotalQuestions)
	}
	if stats.BestCategory == nil || *stats.BestCategory != category.LLD {
		t.Errorf("expected best LLD, got %v", stats.BestCategory)
	}
	if stats.WorstCategory == nil || *stats.WorstCategory != category.HLD {
		t.Errorf("expected worst HLD, got %v", stats.WorstCategory)
	}
	if stats.FormattedAverageScore() != "6.0" {
		t.Errorf("unexpected formatted score %q", stats.FormattedAverageScore())
	}
}

func TestOverall_TiesBreakByCanonicalOrder(t *testing.T) {
	sessions := []quizsession.QuizSession{
		completedSession(category.DSA, 0, 7),
		completedSession(category.HLD, 1, 7),
	}

	stats := analytics.Overall(sessions)

	if *stats.BestCategory != category.HLD {
		t.Errorf("expected best HLD on tie, got %v", *stats.BestCategory)
	}
	if *stats.WorstCategory != category.HLD {
		t.Errorf("expected worst HLD on tie, got %v", *stats.WorstCategory)
	}
}

func TestOverall_SingleCategoryIsBothBestAndWorst(t *testing.T) {
	stats := analytics.Overall([]quizsession.QuizSession{
		completedSession(category.DSA, 0, 5),
		completedSession(category.DSA, 1, 9),
	})

	if *stats.BestCategory != category.DSA || *stats.WorstCategory != category.DSA {
		t.Errorf("expected DSA for both, got %v/%v", *stats.BestCategory, *stats.WorstCategory)
	}
}

func TestByCategory_AlwaysOneEntryPerCategory(t *testing.T) {
	stats := analytics.ByCategory(nil)

	if len(stats) != len(category.All()) {
		t.Fatalf("expected %d entries, got %d", len(category.All()), len(stats))
	}
	for i, cat := range category.All() {
		s := stats[i]
		if s.Category != cat {
			t.Errorf("position %d: expected %q, got %q", i, cat, s.Category)
		}
		if s.QuizCount != 0 || s.AverageScore != 0 || s.BestScore != 0 {
			t.Errorf("%s: expected zero stats, got %+v", cat, s)
		}
		if s.Trend != analytics.TrendInsufficientData {
			t.Errorf("%s: expected insufficient data, got %q", cat, s.Trend)
		}
	}
}

func TestByCategory_Aggregates(t *testing.T) {
	sessions := []quizsession.QuizSession{
		completedSession(category.HLD, 0, 5),
		completedSession(category.HLD, 1, 6),
		completedSession(category.HLD, 2, 7),
		completedSession(category.HLD, 3, 8),
		inProgressSession(category.HLD, 4, 10),
		completedSession(category.DSA, 0, 9),
	}

	stats := analytics.ByCategory(sessions)

	hld := stats[category.HLD.Index()]
	if hld.QuizCount != 4 {
		t.Errorf("expected 4 HLD quizzes, got %d", hld.QuizCount)
	}
	if !approx(hld.AverageScore, 6.5) {
		t.Errorf("expected 6.5, got %v", hld.AverageScore)
	}
	if hld.BestScore != 8 {
		t.Errorf("expected best 8, got %v", hld.BestScore)
	}
	if hld.Trend != analytics.TrendImproving {
		t.Errorf("expected improving, got %q", hld.Trend)
	}

	dsa := stats[category.DSA.Index()]
	if dsa.QuizCount != 1 || dsa.Trend != analytics.TrendInsufficientData {
		t.Errorf("unexpected DSA stats %+v", dsa)
	}
}

func TestByCategory_TrendUsesMostRecentFive(t *testing.T) {
	// Old sessions climb steeply; the latest five fall.
	sessions := []quizsession.QuizSession{
		completedSession(category.LLD, 0, 1),
		completedSession(category.LLD, 1, 2),
		completedSession(category.LLD, 2, 3),
		completedSession(category.LLD, 3, 10),
		completedSession(category.LLD, 4, 9),
		completedSession(category.LLD, 5, 8),
		completedSession(category.LLD, 6, 7),
		completedSession(category.LLD, 7, 6),
	}
	// Store order must not matter.
	shuffled := []quizsession.QuizSession{sessions[5], sessions[0], sessions[7], sessions[2], sessions[4], sessions[1], sessions[6], sessions[3]}

	stats := analytics.ByCategory(shuffled)

	if got := stats[category.LLD.Index()].Trend; got != analytics.TrendDeclining {
		t.Errorf("expected declining, got %q", got)
	}
}

func TestBestScore(t *testing.T) {
	if _, ok := analytics.BestScore(nil); ok {
		t.Error("expected no best score for empty input")
	}

	best, ok := analytics.BestScore([]quizsession.QuizSession{
		completedSession(category.LLD, 0, 6.5),
		completedSession(category.LLD, 1, 8.25),
		inProgressSession(category.LLD, 2, 10),
	})
	if !ok || best != 8.25 {
		t.Errorf("expected 8.25, got %v (ok=%v)", best, ok)
	}
}

func TestImprovementTrend_KeepsMostRecent(t *testing.T) {
	var sessions []quizsession.QuizSession
	for day := 11; day >= 0; day-- { // newest first, like the store's default
		sessions = append(sessions, completedSession(category.DSA, day, float64(day)))
	}

	trend := analytics.ImprovementTrend(sessions, 10)

	want := []float64{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if !reflect.DeepEqual(trend, want) {
		t.Errorf("expected %v, got %v", want, trend)
	}
}

func TestImprovementTrend_DefaultsAndFiltering(t *testing.T) {
	sessions := []quizsession.QuizSession{
		completedSession(category.DSA, 0, 4),
		inProgressSession(category.DSA, 1, 9),
		completedSession(category.DSA, 2, 6),
	}

	trend := analytics.ImprovementTrend(sessions, 0)

	if !reflect.DeepEqual(trend, []float64{4, 6}) {
		t.Errorf("expected [4 6], got %v", trend)
	}
}

func TestAnalytics_Idempotent(t *testing.T) {
	sessions := []quizsession.QuizSession{
		completedSession(category.HLD, 2, 5, record("Sharding", 5, "consistent hashing")),
		completedSession(category.HLD, 0, 6, record("Sharding", 6, "rebalancing")),
		completedSession(category.LLD, 1, 3, record("", 3, "interfaces")),
	}
	before := make([]quizsession.QuizSession, len(sessions))
	copy(before, sessions)

	if !reflect.DeepEqual(analytics.Overall(sessions), analytics.Overall(sessions)) {
		t.Error("Overall not idempotent")
	}
	if !reflect.DeepEqual(analytics.ByCategory(sessions), analytics.ByCategory(sessions)) {
		t.Error("ByCategory not idempotent")
	}
	if !reflect.DeepEqual(analytics.WeakAreas(sessions), analytics.WeakAreas(sessions)) {
		t.Error("WeakAreas not idempotent")
	}
	if !reflect.DeepEqual(analytics.CommonMistakes(sessions, 10), analytics.CommonMistakes(sessions, 10)) {
		t.Error("CommonMistakes not idempotent")
	}
	if !reflect.DeepEqual(analytics.ImprovementTrend(sessions, 10), analytics.ImprovementTrend(sessions, 10)) {
		t.Error("ImprovementTrend not idempotent")
	}
	if !reflect.DeepEqual(sessions, before) {
		t.Error("input sessions were reordered or mutated")
	}
}
