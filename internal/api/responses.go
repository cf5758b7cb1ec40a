package api

import (
	"time"

	"github.com/prepflow/backend/internal/analytics"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/service"
)

// ── Response types ──────────────────────────────────────────────────────────

type QuestionRecordResponse struct {
	ID            string    `json:"id" example:"3f1c6a52-7d0e-4a8b-9c1d-2e3f4a5b6c7d"`
	QuestionText  string    `json:"question_text" example:"Explain the Liskov Substitution Principle"`
	Hint          string    `json:"hint,omitempty"`
	KeyPoints     []string  `json:"key_points"`
	UserAnswer    string    `json:"user_answer"`
	Score         int       `json:"score" example:"6"`
	Feedback      string    `json:"feedback,omitempty"`
	CoveredPoints []string  `json:"covered_points"`
	MissedPoints  []string  `json:"missed_points"`
	AnsweredAt    time.Time `json:"answered_at"`
	Topic         string    `json:"topic" example:"SOLID Principles"`
}

type SessionResponse struct {
	ID                string                   `json:"id" example:"9b2e4c1a-0f3d-4e5b-8a7c-6d5e4f3a2b1c"`
	Category          string                   `json:"category" example:"LLD"`
	CategoryName      string                   `json:"category_name" example:"Low Level Design"`
	TopicTitle        *string                  `json:"topic_title,omitempty" example:"SOLID Principles"`
	StartedAt         time.Time                `json:"started_at"`
	CompletedAt       *time.Time               `json:"completed_at,omitempty"`
	IsCompleted       bool                     `json:"is_completed"`
	TotalQuestions    int                      `json:"total_questions" example:"5"`
	AverageScore      float64                  `json:"average_score" example:"6.8"`
	ScorePercentage   float64                  `json:"score_percentage" example:"68"`
	QuestionsAnswered int                      `json:"questions_answered" example:"5"`
	Questions         []QuestionRecordResponse `json:"questions,omitempty"`
}

type OverallStatsResponse struct {
	TotalQuizzes          int     `json:"total_quizzes" example:"12"`
	AverageScore          float64 `json:"average_score" example:"7.25"`
	FormattedAverageScore string  `json:"formatted_average_score" example:"7.3"`
	BestCategory          *string `json:"best_category" example:"DSA"`
	WorstCategory         *string `json:"worst_category" example:"HLD"`
	TotalQuestions        int     `json:"total_questions" example:"60"`
}

type CategoryStatsResponse struct {
	Category     string          `json:"category" example:"HLD"`
	CategoryName string          `json:"category_name" example:"High Level Design"`
	QuizCount    int             `json:"quiz_count" example:"4"`
	AverageScore float64         `json:"average_score" example:"6.5"`
	BestScore    float64         `json:"best_score" example:"8.2"`
	Trend        analytics.Trend `json:"trend" example:"improving"`
}

type WeakAreaResponse struct {
	Topic          string   `json:"topic" example:"Caching"`
	Category       string   `json:"category" example:"HLD"`
	AverageScore   float64  `json:"average_score" example:"5.5"`
	QuizCount      int      `json:"quiz_count" example:"4"`
	MissedConcepts []string `json:"missed_concepts"`
}

type MistakeResponse struct {
	Concept   string `json:"concept" example:"cache invalidation"`
	Frequency int    `json:"frequency" example:"3"`
}

type TrendResponse struct {
	Scores []float64       `json:"scores"`
	Trend  analytics.Trend `json:"trend" example:"stable"`
}

type BestScoreResponse struct {
	Category  string   `json:"category" example:"DSA"`
	BestScore *float64 `json:"best_score" example:"8.6"`
}

type TopicPerformanceResponse struct {
	Topic        string          `json:"topic" example:"Graphs"`
	AverageScore float64         `json:"average_score" example:"7.4"`
	AttemptCount int             `json:"attempt_count" example:"9"`
	LastAttempt  *time.Time      `json:"last_attempt,omitempty"`
	Trend        analytics.Trend `json:"trend" example:"declining"`
}

type DashboardResponse struct {
	Overall     OverallStatsResponse    `json:"overall"`
	Categories  []CategoryStatsResponse `json:"categories"`
	WeakAreas   []WeakAreaResponse      `json:"weak_areas"`
	Mistakes    []MistakeResponse       `json:"common_mistakes"`
	Improvement TrendResponse           `json:"improvement"`
}

// ── Mapping ─────────────────────────────────────────────────────────────────

func toQuestionResponse(q quizsession.QuestionRecord) QuestionRecordResponse {
	return QuestionRecordResponse{
		ID:            q.ID,
		QuestionText:  q.QuestionText,
		Hint:          q.Hint,
		KeyPoints:     orEmpty(q.KeyPoints),
		UserAnswer:    q.UserAnswer,
		Score:         q.Score,
		Feedback:      q.Feedback,
		CoveredPoints: orEmpty(q.CoveredPoints),
		MissedPoints:  orEmpty(q.MissedPoints),
		AnsweredAt:    q.AnsweredAt,
		Topic:         q.NormalizedTopic(),
	}
}

// toSessionResponse maps a session; questions are included only when
// withQuestions is set, list views stay small.
func toSessionResponse(s quizsession.QuizSession, withQuestions bool) SessionResponse {
	resp := SessionResponse{
		ID:                s.ID,
		Category:          s.Category.String(),
		CategoryName:      s.Category.FullName(),
		TopicTitle:        s.TopicTitle,
		StartedAt:         s.StartedAt,
		CompletedAt:       s.CompletedAt,
		IsCompleted:       s.IsCompleted(),
		TotalQuestions:    s.TotalQuestions,
		AverageScore:      s.AverageScore,
		ScorePercentage:   s.ScorePercentage(),
		QuestionsAnswered: s.QuestionsAnswered,
	}
	if withQuestions {
		resp.Questions = make([]QuestionRecordResponse, len(s.Questions))
		for i, q := range s.Questions {
			resp.Questions[i] = toQuestionResponse(q)
		}
	}
	return resp
}

func toSessionResponses(sessions []quizsession.QuizSession) []SessionResponse {
	resp := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = toSessionResponse(s, false)
	}
	return resp
}

func toOverallResponse(s analytics.OverallStats) OverallStatsResponse {
	resp := OverallStatsResponse{
		TotalQuizzes:          s.TotalQuizzes,
		AverageScore:          s.AverageScore,
		FormattedAverageScore: s.FormattedAverageScore(),
		TotalQuestions:        s.TotalQuestions,
	}
	if s.BestCategory != nil {
		best := s.BestCategory.String()
		resp.BestCategory = &best
	}
	if s.WorstCategory != nil {
		worst := s.WorstCategory.String()
		resp.WorstCategory = &worst
	}
	return resp
}

func toCategoryResponses(stats []analytics.CategoryStats) []CategoryStatsResponse {
	resp := make([]CategoryStatsResponse, len(stats))
	for i, s := range stats {
		resp[i] = CategoryStatsResponse{
			Category:     s.Category.String(),
			CategoryName: s.Category.FullName(),
			QuizCount:    s.QuizCount,
			AverageScore: s.AverageScore,
			BestScore:    s.BestScore,
			Trend:        s.Trend,
		}
	}
	return resp
}

func toWeakAreaResponses(areas []analytics.WeakArea) []WeakAreaResponse {
	resp := make([]WeakAreaResponse, len(areas))
	for i, a := range areas {
		resp[i] = WeakAreaResponse{
			Topic:          a.Topic,
			Category:       a.Category.String(),
			AverageScore:   a.AverageScore,
			QuizCount:      a.QuizCount,
			MissedConcepts: orEmpty(a.MissedConcepts),
		}
	}
	return resp
}

func toMistakeResponses(mistakes []analytics.MistakeFrequency) []MistakeResponse {
	resp := make([]MistakeResponse, len(mistakes))
	for i, m := range mistakes {
		resp[i] = MistakeResponse{Concept: m.Concept, Frequency: m.Frequency}
	}
	return resp
}

func toTrendResponse(scores []float64) TrendResponse {
	if scores == nil {
		scores = []float64{}
	}
	return TrendResponse{Scores: scores, Trend: analytics.ClassifyTrend(scores)}
}

func toTopicResponses(perf []analytics.TopicPerformance) []TopicPerformanceResponse {
	resp := make([]TopicPerformanceResponse, len(perf))
	for i, p := range perf {
		resp[i] = TopicPerformanceResponse{
			Topic:        p.Topic,
			AverageScore: p.AverageScore,
			AttemptCount: p.AttemptCount,
			LastAttempt:  p.LastAttempt,
			Trend:        p.Trend,
		}
	}
	return resp
}

func toDashboardResponse(d service.Dashboard) DashboardResponse {
	return DashboardResponse{
		Overall:     toOverallResponse(d.Overall),
		Categories:  toCategoryResponses(d.Categories),
		WeakAreas:   toWeakAreaResponses(d.WeakAreas),
		Mistakes:    toMistakeResponses(d.Mistakes),
		Improvement: toTrendResponse(d.Improvement),
	}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
