package analytics_test

import (
	"time"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// completedSession builds a finished session started `day` days after baseTime.
func completedSession(cat category.Category, day int, avg float64, questions ...quizsession.QuestionRecord) quizsession.QuizSession {
	started := baseTime.AddDate(0, 0, day)
	completed := started.Add(20 * time.Minute)
	return quizsession.QuizSession{
		ID:                string(cat) + "-" + started.Format("0102"),
		Category:          cat,
		StartedAt:         started,
		CompletedAt:       &completed,
		TotalQuestions:    len(questions),
		AverageScore:      avg,
		QuestionsAnswered: len(questions),
		Questions:         questions,
	}
}

func inProgressSession(cat category.Category, day int, avg float64, questions ...quizsession.QuestionRecord) quizsession.QuizSession {
	s := completedSession(cat, day, avg, questions...)
	s.CompletedAt = nil
	return s
}

func record(topic string, score int, missed ...string) quizsession.QuestionRecord {
	return quizsession.QuestionRecord{
		Topic:        topic,
		Score:        score,
		MissedPoints: missed,
	}
}

func recordAt(topic string, score int, at time.Time) quizsession.QuestionRecord {
	r := record(topic, score)
	r.AnsweredAt = at
	return r
}
