// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/id"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_sessions (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    topic_title TEXT,
    started_at INTEGER NOT NULL,
    completed_at INTEGER,
    total_questions INTEGER NOT NULL,
    average_score REAL NOT NULL DEFAULT 0,
    questions_answered INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS question_records (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    question_text TEXT NOT NULL,
    hint TEXT NOT NULL,
    key_points TEXT NOT NULL,
    user_answer TEXT NOT NULL,
    score INTEGER NOT NULL,
    feedback TEXT NOT NULL,
    covered_points TEXT NOT NULL,
    missed_points TEXT NOT NULL,
    answered_at INTEGER NOT NULL,
    topic TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES quiz_sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_quiz_sessions_started_at ON quiz_sessions(started_at);
CREATE INDEX IF NOT EXISTS idx_quiz_sessions_category ON quiz_sessions(category, started_at);
CREATE INDEX IF NOT EXISTS idx_question_records_session ON question_records(session_id, position);
`

const sessionColumns = "id, category, topic_title, started_at, completed_at, total_questions, average_score, questions_answered"

const recordColumns = "id, session_id, question_text, hint, key_points, user_answer, score, feedback, covered_points, missed_points, answered_at, topic"

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database file and applies the schema.
// Write transactions take the lock up front and wait on contention, so
// concurrent SaveSession calls queue instead of failing with SQLITE_BUSY.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewSQLiteFromDB wraps an existing handle without touching the schema.
func NewSQLiteFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the handle for connection pool metrics.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// ============================================================================
// Sessions
// ============================================================================

func (s *SQLiteStore) SaveSession(ctx context.Context, session *quizsession.QuizSession) error {
	if session.ID == "" {
		return ErrMissingID
	}
	for i := range session.Questions {
		if session.Questions[i].ID == "" {
			session.Questions[i].ID = id.GenerateID()
		}
		session.Questions[i].SessionID = session.ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO quiz_sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		session.ID,
		string(session.Category),
		session.TopicTitle,
		session.StartedAt.UnixNano(),
		nullableTime(session.CompletedAt),
		session.TotalQuestions,
		session.AverageScore,
		session.QuestionsAnswered,
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", session.ID, err)
	}

	for i, q := range session.Questions {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO question_records ("+recordColumns+", position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			q.ID, session.ID, q.QuestionText, q.Hint, encodeList(q.KeyPoints), q.UserAnswer,
			q.Score, q.Feedback, encodeList(q.CoveredPoints), encodeList(q.MissedPoints),
			q.AnsweredAt.UnixNano(), q.Topic, i,
		)
		if err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*quizsession.QuizSession, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM quiz_sessions WHERE id = ?", id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sessions := []quizsession.QuizSession{*session}
	if err := s.attachQuestions(ctx, sessions); err != nil {
		return nil, err
	}
	return &sessions[0], nil
}

// ListSessions filters, sorts by started_at and limits in SQL, then loads
// the question records of the returned sessions in one query.
func (s *SQLiteStore) ListSessions(ctx context.Context, q Query) ([]quizsession.QuizSession, error) {
	query, args := buildListQuery(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []quizsession.QuizSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachQuestions(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SQLiteStore) CountSessions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quiz_sessions").Scan(&n)
	return n, err
}

func buildListQuery(q Query) (string, []any) {
	var (
		where []string
		args  []any
	)
	if q.Category != nil {
		where = append(where, "category = ?")
		args = append(args, string(*q.Category))
	}
	if q.CompletedOnly {
		where = append(where, "completed_at IS NOT NULL")
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + sessionColumns + " FROM quiz_sessions")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	if q.SortDescending {
		sb.WriteString(" ORDER BY started_at DESC, rowid DESC")
	} else {
		sb.WriteString(" ORDER BY started_at ASC, rowid ASC")
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return sb.String(), args
}

// ============================================================================
// Question records
// ============================================================================

// questionBatchSize bounds the IN list of one question query. SQLite caps
// bound variables at 32766.
const questionBatchSize = 500

// attachQuestions loads the question records of sessions, batching the
// session IDs so any number of sessions can be listed.
func (s *SQLiteStore) attachQuestions(ctx context.Context, sessions []quizsession.QuizSession) error {
	byID := make(map[string]int, len(sessions))
	for i, session := range sessions {
		byID[session.ID] = i
		sessions[i].Questions = []quizsession.QuestionRecord{}
	}

	for start := 0; start < len(sessions); start += questionBatchSize {
		end := min(start+questionBatchSize, len(sessions))
		if err := s.loadQuestionBatch(ctx, sessions, byID, sessions[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadQuestionBatch(ctx context.Context, sessions []quizsession.QuizSession, byID map[string]int, batch []quizsession.QuizSession) error {
	placeholders := make([]string, len(batch))
	args := make([]any, len(batch))
	for i, session := range batch {
		placeholders[i] = "?"
		args[i] = session.ID
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM question_records WHERE session_id IN ("+strings.Join(placeholders, ", ")+") ORDER BY session_id, position",
		args...,
	)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			q                          quizsession.QuestionRecord
			keyPoints, covered, missed string
			answeredAt                 int64
		)
		if err := rows.Scan(
			&q.ID, &q.SessionID, &q.QuestionText, &q.Hint, &keyPoints, &q.UserAnswer,
			&q.Score, &q.Feedback, &covered, &missed, &answeredAt, &q.Topic,
		); err != nil {
			return err
		}
		if q.KeyPoints, err = decodeList(keyPoints); err != nil {
			return fmt.Errorf("question %s key_points: %w", q.ID, err)
		}
		if q.CoveredPoints, err = decodeList(covered); err != nil {
			return fmt.Errorf("question %s covered_points: %w", q.ID, err)
		}
		if q.MissedPoints, err = decodeList(missed); err != nil {
			return fmt.Errorf("question %s missed_points: %w", q.ID, err)
		}
		q.AnsweredAt = time.Unix(0, answeredAt).UTC()

		i := byID[q.SessionID]
		sessions[i].Questions = append(sessions[i].Questions, q)
	}
	return rows.Err()
}

// ============================================================================
// Helpers
// ============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*quizsession.QuizSession, error) {
	var (
		session     quizsession.QuizSession
		cat         string
		topicTitle  sql.NullString
		startedAt   int64
		completedAt sql.NullInt64
	)
	if err := row.Scan(
		&session.ID, &cat, &topicTitle, &startedAt, &completedAt,
		&session.TotalQuestions, &session.AverageScore, &session.QuestionsAnswered,
	); err != nil {
		return nil, err
	}

	session.Category = category.Category(cat)
	if topicTitle.Valid {
		session.TopicTitle = &topicTitle.String
	}
	session.StartedAt = time.Unix(0, startedAt).UTC()
	if completedAt.Valid {
		t := time.Unix(0, completedAt.Int64).UTC()
		session.CompletedAt = &t
	}
	return &session, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}

// Lists are stored as JSON text; nil is stored as [] so reads never yield null.
func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func decodeList(s string) ([]string, error) {
	items := []string{}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	return items, nil
}
