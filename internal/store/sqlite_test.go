package store_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/store"
)

var base = time.Date(2026, 5, 10, 8, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newSession(cat category.Category, day int, completed bool, scores ...int) *quizsession.QuizSession {
	started := base.AddDate(0, 0, day)
	session := quizsession.NewWithConfig(cat, quizsession.SessionConfig{
		TotalQuestions: len(scores),
		StartedAt:      &started,
	})
	for i, score := range scores {
		session.AddQuestion(quizsession.QuestionRecord{
			QuestionText:  "question",
			KeyPoints:     []string{"a", "b"},
			Score:         score,
			CoveredPoints: []string{"a"},
			MissedPoints:  []string{"b"},
			AnsweredAt:    started.Add(time.Duration(i+1) * time.Minute),
			Topic:         "Topic",
		})
	}
	if completed {
		session.Complete(started.Add(10 * time.Minute))
	}
	return session
}

func saveAll(t *testing.T, s *store.SQLiteStore, sessions ...*quizsession.QuizSession) {
	t.Helper()
	for _, session := range sessions {
		require.NoError(t, s.SaveSession(context.Background(), session))
	}
}

func ids(sessions []quizsession.QuizSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}

func TestSQLiteStore_SaveAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	title := "Consistent Hashing"
	session := newSession(category.HLD, 0, true, 6, 8)
	session.TopicTitle = &title
	saveAll(t, s, session)

	got, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, category.HLD, got.Category)
	require.NotNil(t, got.TopicTitle)
	assert.Equal(t, title, *got.TopicTitle)
	assert.True(t, got.StartedAt.Equal(session.StartedAt))
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(*session.CompletedAt))
	assert.Equal(t, 7.0, got.AverageScore)
	assert.Equal(t, 2, got.QuestionsAnswered)

	require.Len(t, got.Questions, 2)
	assert.Equal(t, 6, got.Questions[0].Score)
	assert.Equal(t, 8, got.Questions[1].Score)
	assert.Equal(t, []string{"a", "b"}, got.Questions[0].KeyPoints)
	assert.Equal(t, []string{"b"}, got.Questions[0].MissedPoints)
	assert.Equal(t, session.ID, got.Questions[0].SessionID)
	assert.True(t, got.Questions[1].AnsweredAt.Equal(session.Questions[1].AnsweredAt))
}

func TestSQLiteStore_GetSession_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSession(context.Background(), "missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSQLiteStore_SaveSession_RequiresID(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveSession(context.Background(), &quizsession.QuizSession{Category: category.LLD})
	assert.ErrorIs(t, err, store.ErrMissingID)
}

func TestSQLiteStore_InProgressSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	session := newSession(category.DSA, 0, false, 4)
	saveAll(t, s, session)

	got, err := s.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)
	assert.False(t, got.IsCompleted())
	assert.Nil(t, got.TopicTitle)
}

func TestSQLiteStore_ListSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lld0 := newSession(category.LLD, 0, true, 5)
	hld1 := newSession(category.HLD, 1, true, 6)
	lld2 := newSession(category.LLD, 2, false, 7)
	dsa3 := newSession(category.DSA, 3, true, 8)
	lld4 := newSession(category.LLD, 4, true, 9)
	saveAll(t, s, hld1, lld4, lld0, dsa3, lld2)

	lld := category.LLD

	tests := []struct {
		name  string
		query store.Query
		want  []string
	}{
		{"all ascending", store.Query{}, []string{lld0.ID, hld1.ID, lld2.ID, dsa3.ID, lld4.ID}},
		{"all descending", store.Query{SortDescending: true}, []string{lld4.ID, dsa3.ID, lld2.ID, hld1.ID, lld0.ID}},
		{"category", store.Query{Category: &lld}, []string{lld0.ID, lld2.ID, lld4.ID}},
		{"completed only", store.Query{CompletedOnly: true}, []string{lld0.ID, hld1.ID, dsa3.ID, lld4.ID}},
		{"category and completed", store.Query{Category: &lld, CompletedOnly: true, SortDescending: true}, []string{lld4.ID, lld0.ID}},
		{"limit after filter and sort", store.Query{CompletedOnly: true, SortDescending: true, Limit: 2}, []string{lld4.ID, dsa3.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := s.ListSessions(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(sessions))
		})
	}
}

func TestSQLiteStore_ListSessions_LoadsQuestions(t *testing.T) {
	s := newTestStore(t)
	a := newSession(category.LLD, 0, true, 3, 4, 5)
	b := newSession(category.HLD, 1, true, 9)
	saveAll(t, s, a, b)

	sessions, err := s.ListSessions(context.Background(), store.Query{})
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Len(t, sessions[0].Questions, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{sessions[0].Questions[0].Score, sessions[0].Questions[1].Score, sessions[0].Questions[2].Score})
	assert.Len(t, sessions[1].Questions, 1)
}

func TestSQLiteStore_ListSessions_Empty(t *testing.T) {
	s := newTestStore(t)

	sessions, err := s.ListSessions(context.Background(), store.Query{})
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestSQLiteStore_CountSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	saveAll(t, s, newSession(category.LLD, 0, true, 5), newSession(category.DSA, 1, false))

	n, err = s.CountSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLiteStore_SaveSession_DuplicateRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	session := newSession(category.LLD, 0, true, 5)
	saveAll(t, s, session)

	require.Error(t, s.SaveSession(ctx, session))

	got, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, got.Questions, 1)
}

func TestSQLiteStore_ListSessions_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := store.NewSQLiteFromDB(db)
	dsa := category.DSA

	mock.ExpectQuery("SELECT id, category, topic_title.* FROM quiz_sessions WHERE category = \\? AND completed_at IS NOT NULL ORDER BY started_at DESC, rowid DESC LIMIT \\?").
		WithArgs("DSA", 3).
		WillReturnError(errors.New("disk I/O error"))

	_, err = s.ListSessions(context.Background(), store.Query{Category: &dsa, CompletedOnly: true, SortDescending: true, Limit: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ListSessions_QuestionLoadError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := store.NewSQLiteFromDB(db)

	rows := sqlmock.NewRows([]string{"id", "category", "topic_title", "started_at", "completed_at", "total_questions", "average_score", "questions_answered"}).
		AddRow("s1", "LLD", nil, base.UnixNano(), base.Add(time.Hour).UnixNano(), 5, 6.5, 5)

	mock.ExpectQuery("SELECT id, category, topic_title.* FROM quiz_sessions ORDER BY started_at ASC").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT id, session_id, .* FROM question_records WHERE session_id IN \\(\\?\\)").
		WithArgs("s1").
		WillReturnError(errors.New("database is locked"))

	_, err = s.ListSessions(context.Background(), store.Query{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ListSessions_BeyondVariableLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("inserts 33000 sessions")
	}
	s := newTestStore(t)
	ctx := context.Background()

	const total = 33000
	tx, err := s.DB().BeginTx(ctx, nil)
	require.NoError(t, err)
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO quiz_sessions (id, category, started_at, completed_at, total_questions, average_score, questions_answered) VALUES (?, 'DSA', ?, ?, 1, 6, 1)")
	require.NoError(t, err)
	for i := 0; i < total; i++ {
		started := base.Add(time.Duration(i) * time.Second).UnixNano()
		_, err := stmt.ExecContext(ctx, fmt.Sprintf("s%05d", i), started, started+1)
		require.NoError(t, err)
	}
	require.NoError(t, stmt.Close())
	_, err = tx.ExecContext(ctx,
		`INSERT INTO question_records (id, session_id, position, question_text, hint, key_points, user_answer, score, feedback, covered_points, missed_points, answered_at, topic)
		 VALUES ('q-last', ?, 0, 'question', '', '[]', '', 6, '', '[]', '["bfs"]', 0, 'Graphs')`,
		fmt.Sprintf("s%05d", total-1))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	sessions, err := s.ListSessions(ctx, store.Query{CompletedOnly: true})
	require.NoError(t, err)
	require.Len(t, sessions, total)

	last := sessions[total-1]
	require.Len(t, last.Questions, 1)
	assert.Equal(t, []string{"bfs"}, last.Questions[0].MissedPoints)
	assert.Empty(t, sessions[0].Questions)
}

func TestSQLiteStore_ListSessions_CorruptListIsAnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	session := newSession(category.HLD, 0, true, 4)
	saveAll(t, s, session)

	_, err := s.DB().ExecContext(ctx, "UPDATE question_records SET missed_points = '[\"cache' WHERE session_id = ?", session.ID)
	require.NoError(t, err)

	_, err = s.ListSessions(ctx, store.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missed_points")

	_, err = s.GetSession(ctx, session.ID)
	assert.Error(t, err)
}
