package quizsession

import "time"

// DefaultTotalQuestions is the planned question count when none is given.
const DefaultTotalQuestions = 5

// SessionConfig holds optional settings for a new quiz session.
type SessionConfig struct {
	TotalQuestions int        // <= 0 = DefaultTotalQuestions
	TopicTitle     *string    // nil = mixed topic
	StartedAt      *time.Time // nil = now
}

// DefaultConfig returns a config for a mixed-topic quiz of the default length.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		TotalQuestions: DefaultTotalQuestions,
		TopicTitle:     nil,
		StartedAt:      nil,
	}
}
