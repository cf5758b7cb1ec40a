package quizsession

import "time"

// GeneralTopic is the bucket used for records without a topic.
const GeneralTopic = "General"

// QuestionRecord is one graded question within a session.
type QuestionRecord struct {
	ID            string
	SessionID     string // owning session, navigation only
	QuestionText  string
	Hint          string
	KeyPoints     []string
	UserAnswer    string
	Score         int // 1-10
	Feedback      string
	CoveredPoints []string
	MissedPoints  []string
	AnsweredAt    time.Time
	Topic         string
}

func (q QuestionRecord) NormalizedTopic() string {
	if q.Topic == "" {
		return GeneralTopic
	}
	return q.Topic
}

func (q QuestionRecord) ScorePercentage() float64 {
	return float64(q.Score) / 10.0 * 100.0
}
