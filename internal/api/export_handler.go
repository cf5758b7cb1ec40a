package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/id"
	"github.com/prepflow/backend/internal/store"
)

// ExportVersion is written to every export document.
const ExportVersion = "1.0"

var (
	ErrTooManyQuestions     = errors.New("more questions than total_questions")
	ErrCompletedBeforeStart = errors.New("completed_at is before started_at")
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportQuestion struct {
	ID            string    `json:"id,omitempty"`
	QuestionText  string    `json:"question_text" validate:"required"`
	Hint          string    `json:"hint,omitempty"`
	KeyPoints     []string  `json:"key_points"`
	UserAnswer    string    `json:"user_answer"`
	Score         int       `json:"score" validate:"min=1,max=10"`
	Feedback      string    `json:"feedback,omitempty"`
	CoveredPoints []string  `json:"covered_points"`
	MissedPoints  []string  `json:"missed_points"`
	AnsweredAt    time.Time `json:"answered_at"`
	Topic         string    `json:"topic"`
}

type ExportSession struct {
	ID             string           `json:"id,omitempty"`
	Category       string           `json:"category" example:"LLD" validate:"category"`
	TopicTitle     *string          `json:"topic_title,omitempty"`
	StartedAt      time.Time        `json:"started_at" validate:"required"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	TotalQuestions int              `json:"total_questions" validate:"min=0"`
	AverageScore   float64          `json:"average_score" validate:"min=0,max=10"`
	Questions      []ExportQuestion `json:"questions" validate:"dive"`
}

type ExportData struct {
	Version    string          `json:"version" example:"1.0" validate:"required"`
	ExportedAt string          `json:"exported_at"`
	Sessions   []ExportSession `json:"sessions"`
}

type ImportResult struct {
	SessionsCreated  int `json:"sessions_created"`
	QuestionsCreated int `json:"questions_created"`
	SessionsSkipped  int `json:"sessions_skipped"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportSessions downloads the whole quiz history.
// @Summary      Export quiz history
// @Description  Download every session with its question records as a JSON document.
// @Tags         Export
// @Produce      json
// @Success      200  {object}  ExportData
// @Failure      500  {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions(r.Context(), store.Query{})
	if err != nil {
		h.logger.Error("failed to load sessions for export", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}

	exportData := ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Sessions:   make([]ExportSession, len(sessions)),
	}
	for i, s := range sessions {
		exportData.Sessions[i] = toExportSession(s)
	}

	w.Header().Set("Content-Disposition", "attachment; filename=prepflow-export.json")
	respondJSON(w, http.StatusOK, exportData)
}

// importSessions recreates sessions from an export document.
// @Summary      Import quiz history
// @Description  Create sessions from an export document. Invalid sessions (unknown category, scores out of range, more questions than total_questions, completed before started) and clashing IDs are skipped.
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        body  body      ExportData  true  "Export document"
// @Success      201   {object}  ImportResult
// @Failure      400   {object}  map[string]string
// @Router       /import [post]
func (h *Handler) importSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var importData ExportData
	if !decodeAndValidate(w, r, &importData) {
		return
	}

	result := ImportResult{}

	for _, es := range importData.Sessions {
		if err := validate.Struct(es); err != nil {
			h.logger.Warn("skipping invalid imported session", "id", es.ID, "error", validationMessage(err))
			result.SessionsSkipped++
			continue
		}

		session, err := fromExportSession(es)
		if err != nil {
			h.logger.Warn("skipping imported session", "id", es.ID, "category", es.Category, "error", err)
			result.SessionsSkipped++
			continue
		}

		if err := h.store.SaveSession(ctx, session); err != nil {
			h.logger.Error("failed to save imported session", "id", session.ID, "error", err)
			result.SessionsSkipped++
			continue
		}
		result.SessionsCreated++
		result.QuestionsCreated += len(session.Questions)
	}

	respondJSON(w, http.StatusCreated, result)
}

func toExportSession(s quizsession.QuizSession) ExportSession {
	es := ExportSession{
		ID:             s.ID,
		Category:       s.Category.String(),
		TopicTitle:     s.TopicTitle,
		StartedAt:      s.StartedAt,
		CompletedAt:    s.CompletedAt,
		TotalQuestions: s.TotalQuestions,
		AverageScore:   s.AverageScore,
		Questions:      make([]ExportQuestion, len(s.Questions)),
	}
	for i, q := range s.Questions {
		es.Questions[i] = ExportQuestion{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			Hint:          q.Hint,
			KeyPoints:     orEmpty(q.KeyPoints),
			UserAnswer:    q.UserAnswer,
			Score:         q.Score,
			Feedback:      q.Feedback,
			CoveredPoints: orEmpty(q.CoveredPoints),
			MissedPoints:  orEmpty(q.MissedPoints),
			AnsweredAt:    q.AnsweredAt,
			Topic:         q.Topic,
		}
	}
	return es
}

// fromExportSession rebuilds a session. IDs that are not UUIDs are replaced.
// The exported average is kept as-is.
func fromExportSession(es ExportSession) (*quizsession.QuizSession, error) {
	cat, err := category.Parse(es.Category)
	if err != nil {
		return nil, err
	}
	if len(es.Questions) > es.TotalQuestions {
		return nil, ErrTooManyQuestions
	}
	if es.CompletedAt != nil && es.CompletedAt.Before(es.StartedAt) {
		return nil, ErrCompletedBeforeStart
	}

	sessionID := es.ID
	if !id.Valid(sessionID) {
		sessionID = id.GenerateID()
	}

	session := &quizsession.QuizSession{
		ID:             sessionID,
		Category:       cat,
		TopicTitle:     es.TopicTitle,
		StartedAt:      es.StartedAt,
		CompletedAt:    es.CompletedAt,
		TotalQuestions: es.TotalQuestions,
		AverageScore:   es.AverageScore,
		Questions:      []quizsession.QuestionRecord{},
	}

	for _, q := range es.Questions {
		questionID := q.ID
		if !id.Valid(questionID) {
			questionID = ""
		}
		session.AddQuestion(quizsession.QuestionRecord{
			ID:            questionID,
			QuestionText:  q.QuestionText,
			Hint:          q.Hint,
			KeyPoints:     q.KeyPoints,
			UserAnswer:    q.UserAnswer,
			Score:         q.Score,
			Feedback:      q.Feedback,
			CoveredPoints: q.CoveredPoints,
			MissedPoints:  q.MissedPoints,
			AnsweredAt:    q.AnsweredAt,
			Topic:         q.Topic,
		})
	}
	return session, nil
}
