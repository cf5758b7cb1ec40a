package analytics

import quizsession "github.com/prepflow/backend/internal/domain/quiz_session"

// DefaultMistakeLimit caps CommonMistakes when no limit is given.
const DefaultMistakeLimit = 10

// MistakeFrequency is how often a concept was missed.
type MistakeFrequency struct {
	Concept   string
	Frequency int
}

// CommonMistakes pools every missed point of every completed session and
// ranks them by frequency. Equal frequencies keep first-seen order.
func CommonMistakes(sessions []quizsession.QuizSession, limit int) []MistakeFrequency {
	if limit <= 0 {
		limit = DefaultMistakeLimit
	}

	c := newCounter()
	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		for _, q := range s.Questions {
			c.add(q.MissedPoints...)
		}
	}
	return c.top(limit)
}
