package quizsession

import (
	"time"

	"github.com/prepflow/backend/internal/domain/category"
	"github.com/prepflow/backend/internal/id"
)

// QuizSession is one quiz attempt. It owns its question records.
type QuizSession struct {
	ID                string
	Category          category.Category
	TopicTitle        *string // nil = random/mixed topic quiz
	StartedAt         time.Time
	CompletedAt       *time.Time
	TotalQuestions    int
	AverageScore      float64 // 0-10 scale
	QuestionsAnswered int
	Questions         []QuestionRecord
}

// New starts a session in the given category using the default config.
func New(cat category.Category) *QuizSession {
	return NewWithConfig(cat, DefaultConfig())
}

// NewWithConfig starts a session. StartedAt is set here and never changes.
func NewWithConfig(cat category.Category, config SessionConfig) *QuizSession {
	total := config.TotalQuestions
	if total <= 0 {
		total = DefaultTotalQuestions
	}

	startedAt := time.Now()
	if config.StartedAt != nil {
		startedAt = *config.StartedAt
	}

	return &QuizSession{
		ID:             id.GenerateID(),
		Category:       cat,
		TopicTitle:     config.TopicTitle,
		StartedAt:      startedAt,
		TotalQuestions: total,
		Questions:      []QuestionRecord{},
	}
}

// IsCompleted is derived from CompletedAt; there is no stored flag.
func (s *QuizSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

func (s *QuizSession) ScorePercentage() float64 {
	return s.AverageScore / 10.0 * 100.0
}

// AddQuestion appends a graded record and counts it as answered.
func (s *QuizSession) AddQuestion(rec QuestionRecord) {
	if rec.ID == "" {
		rec.ID = id.GenerateID()
	}
	rec.SessionID = s.ID
	s.Questions = append(s.Questions, rec)
	s.QuestionsAnswered = len(s.Questions)
}

// Complete stamps the session as finished and recomputes AverageScore as
// the mean of the recorded question scores.
func (s *QuizSession) Complete(at time.Time) {
	s.CompletedAt = &at
	s.QuestionsAnswered = len(s.Questions)
	s.AverageScore = MeanScore(s.Questions)
}

// MeanScore is the arithmetic mean of the integer scores, 0 when empty.
func MeanScore(records []QuestionRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, r := range records {
		total += r.Score
	}
	return float64(total) / float64(len(records))
}
