package analytics

import (
	"fmt"
	"sort"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
)

const (
	// CategoryTrendWindow is how many recent sessions feed a category trend.
	CategoryTrendWindow = 5
	// DefaultTrendCount caps ImprovementTrend when no count is given.
	DefaultTrendCount = 10
)

// OverallStats summarises every completed session.
type OverallStats struct {
	TotalQuizzes   int
	AverageScore   float64
	BestCategory   *category.Category
	WorstCategory  *category.Category
	TotalQuestions int
}

func (s OverallStats) FormattedAverageScore() string {
	return fmt.Sprintf("%.1f", s.AverageScore)
}

// CategoryStats aggregates one category's completed sessions.
type CategoryStats struct {
	Category     category.Category
	QuizCount    int
	AverageScore float64
	BestScore    float64
	Trend        Trend
}

// Overall computes totals over the completed sessions. Sessions are the unit
// of averaging: the result is the mean of session averages, not of questions.
func Overall(sessions []quizsession.QuizSession) OverallStats {
	completed := completedOnly(sessions)
	if len(completed) == 0 {
		return OverallStats{}
	}

	var total float64
	var questions int
	for _, s := range completed {
		total += s.AverageScore
		questions += s.QuestionsAnswered
	}

	stats := OverallStats{
		TotalQuizzes:   len(completed),
		AverageScore:   total / float64(len(completed)),
		TotalQuestions: questions,
	}

	// Canonical order plus strict comparisons: ties go to the earlier category.
	var bestScore, worstScore float64
	for _, cat := range category.All() {
		sum, count := 0.0, 0
		for _, s := range completed {
			if s.Category == cat {
				sum += s.AverageScore
				count++
			}
		}
		if count == 0 {
			continue
		}
		avg := sum / float64(count)
		if stats.BestCategory == nil || avg > bestScore {
			c := cat
			stats.BestCategory, bestScore = &c, avg
		}
		if stats.WorstCategory == nil || avg < worstScore {
			c := cat
			stats.WorstCategory, worstScore = &c, avg
		}
	}
	return stats
}

// ByCategory returns exactly one entry per category in canonical order,
// zero-valued with TrendInsufficientData when a category has no sessions.
func ByCategory(sessions []quizsession.QuizSession) []CategoryStats {
	completed := completedOnly(sessions)
	result := make([]CategoryStats, 0, len(category.All()))

	for _, cat := range category.All() {
		var catSessions []quizsession.QuizSession
		for _, s := range completed {
			if s.Category == cat {
				catSessions = append(catSessions, s)
			}
		}

		stats := CategoryStats{Category: cat, Trend: TrendInsufficientData}
		if len(catSessions) > 0 {
			var sum float64
			for _, s := range catSessions {
				sum += s.AverageScore
				if s.AverageScore > stats.BestScore {
					stats.BestScore = s.AverageScore
				}
			}
			stats.QuizCount = len(catSessions)
			stats.AverageScore = sum / float64(len(catSessions))
			stats.Trend = ClassifyTrend(recentScores(catSessions, CategoryTrendWindow))
		}
		result = append(result, stats)
	}
	return result
}

// BestScore is the highest session average among completed sessions.
func BestScore(sessions []quizsession.QuizSession) (float64, bool) {
	best, found := 0.0, false
	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		if !found || s.AverageScore > best {
			best, found = s.AverageScore, true
		}
	}
	return best, found
}

// ImprovementTrend returns the session averages of the most recent count
// completed sessions, oldest first.
func ImprovementTrend(sessions []quizsession.QuizSession, count int) []float64 {
	if count <= 0 {
		count = DefaultTrendCount
	}
	return recentScores(completedOnly(sessions), count)
}

// recentScores keeps the last n sessions by StartedAt and returns their
// averages in chronological order.
func recentScores(sessions []quizsession.QuizSession, n int) []float64 {
	ordered := chronological(sessions)
	if len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}

	scores := make([]float64, len(ordered))
	for i, s := range ordered {
		scores[i] = s.AverageScore
	}
	return scores
}

// chronological returns a copy sorted ascending by StartedAt.
func chronological(sessions []quizsession.QuizSession) []quizsession.QuizSession {
	ordered := make([]quizsession.QuizSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})
	return ordered
}

func completedOnly(sessions []quizsession.QuizSession) []quizsession.QuizSession {
	completed := make([]quizsession.QuizSession, 0, len(sessions))
	for _, s := range sessions {
		if s.IsCompleted() {
			completed = append(completed, s)
		}
	}
	return completed
}
