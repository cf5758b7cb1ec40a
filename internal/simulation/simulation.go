// Package simulation generates a believable quiz history for demos and
// local development.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/store"
	"github.com/prepflow/backend/internal/worker"
)

const (
	DefaultSessions  = 24
	DefaultWorkers   = 3
	questionsPerQuiz = 5
)

// Options tunes Seed. Zero values fall back to defaults.
type Options struct {
	Sessions int
	Workers  int
	Rand     *rand.Rand // nil = fixed seed, so the history is reproducible
	Now      time.Time  // the last session starts shortly before Now
}

type topic struct {
	name     string
	concepts []string
}

var catalog = map[category.Category][]topic{
	category.LLD: {
		{"OOP Fundamentals", []string{"encapsulation", "inheritance vs composition", "polymorphism", "abstraction"}},
		{"Factory Pattern", []string{"creator interface", "decoupling construction", "abstract factory"}},
		{"Singleton Pattern", []string{"lazy initialization", "thread safety", "testability"}},
		{"Builder Pattern", []string{"fluent interface", "immutable result", "optional parameters"}},
	},
	category.HLD: {
		{"Load Balancing", []string{"round robin", "health checks", "sticky sessions", "layer 4 vs layer 7"}},
		{"CAP Theorem", []string{"partition tolerance", "consistency trade-off", "eventual consistency"}},
		{"Database Fundamentals", []string{"indexing", "replication", "sharding keys", "transactions"}},
		{"Scaling Basics", []string{"horizontal scaling", "caching layer", "stateless services"}},
	},
	category.DSA: {
		{"Two pointers", []string{"sorted input", "in-place swaps", "termination condition"}},
		{"Sliding window", []string{"window invariant", "shrinking the window", "frequency map"}},
		{"Hash map", []string{"collision handling", "O(1) lookup", "counting pattern"}},
		{"Monotonic stack", []string{"next greater element", "stack invariant", "amortized cost"}},
	},
}

// Seed writes opts.Sessions quiz sessions through w, spread across every
// category and topic, one per day ending at opts.Now. Skill per topic
// starts at a random level and drifts upward, so trends and weak areas
// have something to show. The newest session is left in progress.
func Seed(ctx context.Context, w store.SessionWriter, opts Options) (int, error) {
	if opts.Sessions <= 0 {
		opts.Sessions = DefaultSessions
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(42, 7))
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	sessions := Generate(opts)

	pool := worker.NewPool[error](opts.Workers, len(sessions))
	go func() {
		for _, s := range sessions {
			pool.Submit(s.ID, func() error {
				return w.SaveSession(ctx, s)
			})
		}
		pool.Close()
	}()

	saved := 0
	var errs []error
	for res := range pool.Results() {
		if res.Output != nil {
			errs = append(errs, fmt.Errorf("save session %s: %w", res.JobID, res.Output))
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

// SeedIfEmpty seeds only a store that has no sessions yet.
func SeedIfEmpty(ctx context.Context, w store.SessionWriter, opts Options) (int, error) {
	n, err := w.CountSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	return Seed(ctx, w, opts)
}

// Generate builds the sessions Seed would save without touching a store.
// opts must already carry a Rand.
func Generate(opts Options) []*quizsession.QuizSession {
	r := opts.Rand
	categories := category.All()

	skill := make(map[string]float64)
	for _, cat := range categories {
		for _, t := range catalog[cat] {
			skill[t.name] = 3 + r.Float64()*5
		}
	}

	sessions := make([]*quizsession.QuizSession, 0, opts.Sessions)
	for i := 0; i < opts.Sessions; i++ {
		cat := categories[i%len(categories)]
		topics := catalog[cat]

		daysAgo := opts.Sessions - i
		startedAt := opts.Now.AddDate(0, 0, -daysAgo).Add(time.Duration(r.IntN(120)) * time.Minute)

		config := quizsession.SessionConfig{
			TotalQuestions: questionsPerQuiz,
			StartedAt:      &startedAt,
		}
		// Every other quiz focuses on a single topic; the rest are mixed.
		var focus *topic
		if r.IntN(2) == 0 {
			focus = &topics[r.IntN(len(topics))]
			title := focus.name
			config.TopicTitle = &title
		}

		s := quizsession.NewWithConfig(cat, config)
		last := i == opts.Sessions-1
		answered := questionsPerQuiz
		if last {
			answered = 2
		}

		at := startedAt
		for q := 0; q < answered; q++ {
			t := focus
			if t == nil {
				t = &topics[r.IntN(len(topics))]
			}
			at = at.Add(time.Duration(2+r.IntN(4)) * time.Minute)
			s.AddQuestion(answer(r, *t, skill[t.name], at))
			skill[t.name] += 0.15
		}

		if !last {
			s.Complete(at.Add(time.Minute))
		}
		sessions = append(sessions, s)
	}
	return sessions
}

func answer(r *rand.Rand, t topic, skill float64, at time.Time) quizsession.QuestionRecord {
	score := int(skill + r.NormFloat64()*1.2 + 0.5)
	score = max(1, min(10, score))

	var covered, missed []string
	for _, c := range t.concepts {
		if r.IntN(10) < score {
			covered = append(covered, c)
		} else {
			missed = append(missed, c)
		}
	}

	return quizsession.QuestionRecord{
		QuestionText:  fmt.Sprintf("Walk me through %s.", t.name),
		Hint:          "Start from " + t.concepts[0] + ".",
		KeyPoints:     t.concepts,
		UserAnswer:    fmt.Sprintf("My take on %s.", t.name),
		Score:         score,
		Feedback:      feedback(score),
		CoveredPoints: covered,
		MissedPoints:  missed,
		AnsweredAt:    at,
		Topic:         t.name,
	}
}

func feedback(score int) string {
	switch {
	case score >= 8:
		return "Strong answer."
	case score >= 5:
		return "Solid, with gaps."
	default:
		return "Review the fundamentals."
	}
}
