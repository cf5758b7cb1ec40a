package simulation_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/simulation"
)

type memoryWriter struct {
	mu       sync.Mutex
	sessions []*quizsession.QuizSession
	existing int
}

func (m *memoryWriter) SaveSession(_ context.Context, s *quizsession.QuizSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memoryWriter) CountSessions(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existing + len(m.sessions), nil
}

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func opts(seed uint64) simulation.Options {
	return simulation.Options{
		Sessions: 12,
		Rand:     rand.New(rand.NewPCG(seed, 1)),
		Now:      now,
	}
}

func TestGenerate_Shape(t *testing.T) {
	sessions := simulation.Generate(opts(1))
	require.Len(t, sessions, 12)

	counts := map[category.Category]int{}
	for i, s := range sessions {
		counts[s.Category]++
		assert.True(t, s.StartedAt.Before(now))
		if i > 0 {
			assert.True(t, s.StartedAt.After(sessions[i-1].StartedAt), "sessions are one day apart")
		}

		assert.Equal(t, len(s.Questions), s.QuestionsAnswered)
		for _, q := range s.Questions {
			assert.GreaterOrEqual(t, q.Score, 1)
			assert.LessOrEqual(t, q.Score, 10)
			assert.Equal(t, s.ID, q.SessionID)
			assert.Len(t, q.KeyPoints, len(q.CoveredPoints)+len(q.MissedPoints))
			if s.TopicTitle != nil {
				assert.Equal(t, *s.TopicTitle, q.Topic)
			}
		}
	}
	for _, cat := range category.All() {
		assert.Equal(t, 4, counts[cat], cat.String())
	}

	for _, s := range sessions[:11] {
		require.True(t, s.IsCompleted())
		assert.Equal(t, quizsession.MeanScore(s.Questions), s.AverageScore)
	}
	last := sessions[11]
	assert.False(t, last.IsCompleted())
	assert.Len(t, last.Questions, 2)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := simulation.Generate(opts(9))
	b := simulation.Generate(opts(9))

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Category, b[i].Category)
		assert.Equal(t, a[i].StartedAt, b[i].StartedAt)
		assert.Equal(t, a[i].AverageScore, b[i].AverageScore)
		require.Len(t, b[i].Questions, len(a[i].Questions))
		for j := range a[i].Questions {
			assert.Equal(t, a[i].Questions[j].Topic, b[i].Questions[j].Topic)
			assert.Equal(t, a[i].Questions[j].MissedPoints, b[i].Questions[j].MissedPoints)
		}
	}
}

func TestSeed_SavesEverySession(t *testing.T) {
	w := &memoryWriter{}

	n, err := simulation.Seed(context.Background(), w, opts(3))
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Len(t, w.sessions, 12)
}

func TestSeed_Defaults(t *testing.T) {
	w := &memoryWriter{}

	n, err := simulation.Seed(context.Background(), w, simulation.Options{})
	require.NoError(t, err)
	assert.Equal(t, simulation.DefaultSessions, n)
}

func TestSeed_ReportsSaveErrors(t *testing.T) {
	w := &failingWriter{memoryWriter: &memoryWriter{}, failAt: 5}

	n, err := simulation.Seed(context.Background(), w, opts(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 11, n)
	assert.Len(t, w.sessions, 11)
}

type failingWriter struct {
	*memoryWriter
	mu     sync.Mutex
	calls  int
	failAt int
}

func (f *failingWriter) SaveSession(ctx context.Context, s *quizsession.QuizSession) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls == f.failAt
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.memoryWriter.SaveSession(ctx, s)
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()

	full := &memoryWriter{existing: 3}
	n, err := simulation.SeedIfEmpty(ctx, full, opts(2))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, full.sessions)

	empty := &memoryWriter{}
	n, err = simulation.SeedIfEmpty(ctx, empty, opts(2))
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}
