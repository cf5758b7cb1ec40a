package analytics

import (
	"sort"
	"time"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
)

const (
	// WeakScoreThreshold: topics averaging below this are weak.
	WeakScoreThreshold = 7.0
	// MinWeakSamples is the fewest question records a weak topic needs.
	MinWeakSamples = 2
	// MaxMissedConcepts per weak area.
	MaxMissedConcepts = 3
	// TopicTrendWindow is how many recent answers feed a topic trend.
	TopicTrendWindow = 5
)

// WeakArea is a topic the learner keeps scoring poorly on.
type WeakArea struct {
	Topic          string
	Category       category.Category
	AverageScore   float64
	QuizCount      int // question records, not sessions
	MissedConcepts []string
}

// TopicPerformance summarises every answer given on a topic.
type TopicPerformance struct {
	Topic        string
	AverageScore float64
	AttemptCount int
	LastAttempt  *time.Time
	Trend        Trend
}

type topicRecord struct {
	score      int
	missed     []string
	answeredAt time.Time
}

type topicGroup struct {
	topic    string
	category category.Category
	records  []topicRecord
}

func (g *topicGroup) average() float64 {
	if len(g.records) == 0 {
		return 0
	}
	total := 0
	for _, r := range g.records {
		total += r.score
	}
	return float64(total) / float64(len(g.records))
}

// groupByTopic buckets the question records of completed sessions by
// normalized topic in one pass, keeping first-seen topic order. A topic's
// category is the category of the first session that contributed to it.
func groupByTopic(sessions []quizsession.QuizSession) []*topicGroup {
	index := make(map[string]*topicGroup)
	var groups []*topicGroup

	for _, s := range sessions {
		if !s.IsCompleted() {
			continue
		}
		for _, q := range s.Questions {
			topic := q.NormalizedTopic()
			g, ok := index[topic]
			if !ok {
				g = &topicGroup{topic: topic, category: s.Category}
				index[topic] = g
				groups = append(groups, g)
			}
			g.records = append(g.records, topicRecord{
				score:      q.Score,
				missed:     q.MissedPoints,
				answeredAt: q.AnsweredAt,
			})
		}
	}
	return groups
}

// WeakAreas returns topics averaging below WeakScoreThreshold with at least
// MinWeakSamples records, weakest first. Equal averages keep first-seen order.
func WeakAreas(sessions []quizsession.QuizSession) []WeakArea {
	var areas []WeakArea

	for _, g := range groupByTopic(sessions) {
		avg := g.average()
		if avg >= WeakScoreThreshold || len(g.records) < MinWeakSamples {
			continue
		}

		var missed []string
		for _, r := range g.records {
			missed = append(missed, r.missed...)
		}

		areas = append(areas, WeakArea{
			Topic:          g.topic,
			Category:       g.category,
			AverageScore:   avg,
			QuizCount:      len(g.records),
			MissedConcepts: mostFrequent(missed, MaxMissedConcepts),
		})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].AverageScore < areas[j].AverageScore
	})
	return areas
}

// TopicPerformances reports every topic in first-seen order. The trend uses
// the topic's most recent TopicTrendWindow answers by AnsweredAt.
func TopicPerformances(sessions []quizsession.QuizSession) []TopicPerformance {
	groups := groupByTopic(sessions)
	result := make([]TopicPerformance, 0, len(groups))

	for _, g := range groups {
		records := make([]topicRecord, len(g.records))
		copy(records, g.records)
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].answeredAt.Before(records[j].answeredAt)
		})

		perf := TopicPerformance{
			Topic:        g.topic,
			AverageScore: g.average(),
			AttemptCount: len(records),
		}

		if last := records[len(records)-1].answeredAt; !last.IsZero() {
			perf.LastAttempt = &last
		}

		window := records
		if len(window) > TopicTrendWindow {
			window = window[len(window)-TopicTrendWindow:]
		}
		scores := make([]float64, len(window))
		for i, r := range window {
			scores[i] = float64(r.score)
		}
		perf.Trend = ClassifyTrend(scores)

		result = append(result, perf)
	}
	return result
}
