package store

import (
	"context"
	"errors"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrMissingID = errors.New("session id is required")
)

// Query selects sessions. The zero value returns every session, oldest first.
type Query struct {
	Category       *category.Category // nil = all categories
	CompletedOnly  bool               // exclude sessions without CompletedAt
	SortDescending bool               // true = most recent StartedAt first
	Limit          int                // <= 0 = no limit; applied after filter and sort
}

// SessionReader is the read side used by analytics.
type SessionReader interface {
	ListSessions(ctx context.Context, q Query) ([]quizsession.QuizSession, error)
	GetSession(ctx context.Context, id string) (*quizsession.QuizSession, error)
}

// SessionWriter is the create side used by import and demo seeding.
type SessionWriter interface {
	SaveSession(ctx context.Context, session *quizsession.QuizSession) error
	CountSessions(ctx context.Context) (int, error)
}

// Store is a persisted collection of quiz sessions.
type Store interface {
	SessionReader
	SessionWriter
	Close() error
}
