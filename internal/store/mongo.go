package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/prepflow/backend/internal/domain/category"
	quizsession "github.com/prepflow/backend/internal/domain/quiz_session"
	"github.com/prepflow/backend/internal/id"
)

const sessionsCollection = "quiz_sessions"

// Question records are embedded in their session document, so removing a
// session removes its questions with it.
type sessionDocument struct {
	ID                string             `bson:"_id"`
	Category          string             `bson:"category"`
	TopicTitle        *string            `bson:"topic_title,omitempty"`
	StartedAt         time.Time          `bson:"started_at"`
	CompletedAt       *time.Time         `bson:"completed_at"`
	TotalQuestions    int                `bson:"total_questions"`
	AverageScore      float64            `bson:"average_score"`
	QuestionsAnswered int                `bson:"questions_answered"`
	Questions         []questionDocument `bson:"questions"`
}

type questionDocument struct {
	ID            string    `bson:"id"`
	QuestionText  string    `bson:"question_text"`
	Hint          string    `bson:"hint"`
	KeyPoints     []string  `bson:"key_points"`
	UserAnswer    string    `bson:"user_answer"`
	Score         int       `bson:"score"`
	Feedback      string    `bson:"feedback"`
	CoveredPoints []string  `bson:"covered_points"`
	MissedPoints  []string  `bson:"missed_points"`
	AnsweredAt    time.Time `bson:"answered_at"`
	Topic         string    `bson:"topic"`
}

type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongo connects, pings and ensures the indexes used by ListSessions.
func NewMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	col := client.Database(database).Collection(sessionsCollection)
	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "started_at", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "started_at", Value: 1}}},
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	return &MongoStore{client: client, col: col}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) SaveSession(ctx context.Context, session *quizsession.QuizSession) error {
	if session.ID == "" {
		return ErrMissingID
	}
	for i := range session.Questions {
		if session.Questions[i].ID == "" {
			session.Questions[i].ID = id.GenerateID()
		}
		session.Questions[i].SessionID = session.ID
	}

	if _, err := s.col.InsertOne(ctx, toDocument(session)); err != nil {
		return fmt.Errorf("insert session %s: %w", session.ID, err)
	}
	return nil
}

func (s *MongoStore) GetSession(ctx context.Context, id string) (*quizsession.QuizSession, error) {
	var doc sessionDocument
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	session := fromDocument(doc)
	return &session, nil
}

func (s *MongoStore) ListSessions(ctx context.Context, q Query) ([]quizsession.QuizSession, error) {
	filter, opts := buildFind(q)

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	sessions := []quizsession.QuizSession{}
	for cur.Next(ctx) {
		var doc sessionDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		sessions = append(sessions, fromDocument(doc))
	}
	return sessions, cur.Err()
}

func (s *MongoStore) CountSessions(ctx context.Context) (int, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func buildFind(q Query) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if q.Category != nil {
		filter["category"] = string(*q.Category)
	}
	if q.CompletedOnly {
		filter["completed_at"] = bson.M{"$ne": nil}
	}

	direction := 1
	if q.SortDescending {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "started_at", Value: direction},
		{Key: "_id", Value: direction},
	})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return filter, opts
}

func toDocument(s *quizsession.QuizSession) sessionDocument {
	doc := sessionDocument{
		ID:                s.ID,
		Category:          string(s.Category),
		TopicTitle:        s.TopicTitle,
		StartedAt:         s.StartedAt,
		CompletedAt:       s.CompletedAt,
		TotalQuestions:    s.TotalQuestions,
		AverageScore:      s.AverageScore,
		QuestionsAnswered: s.QuestionsAnswered,
		Questions:         make([]questionDocument, len(s.Questions)),
	}
	for i, q := range s.Questions {
		doc.Questions[i] = questionDocument{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			Hint:          q.Hint,
			KeyPoints:     nonNil(q.KeyPoints),
			UserAnswer:    q.UserAnswer,
			Score:         q.Score,
			Feedback:      q.Feedback,
			CoveredPoints: nonNil(q.CoveredPoints),
			MissedPoints:  nonNil(q.MissedPoints),
			AnsweredAt:    q.AnsweredAt,
			Topic:         q.Topic,
		}
	}
	return doc
}

func fromDocument(doc sessionDocument) quizsession.QuizSession {
	session := quizsession.QuizSession{
		ID:                doc.ID,
		Category:          category.Category(doc.Category),
		TopicTitle:        doc.TopicTitle,
		StartedAt:         doc.StartedAt.UTC(),
		TotalQuestions:    doc.TotalQuestions,
		AverageScore:      doc.AverageScore,
		QuestionsAnswered: doc.QuestionsAnswered,
		Questions:         make([]quizsession.QuestionRecord, len(doc.Questions)),
	}
	if doc.CompletedAt != nil {
		t := doc.CompletedAt.UTC()
		session.CompletedAt = &t
	}
	for i, q := range doc.Questions {
		session.Questions[i] = quizsession.QuestionRecord{
			ID:            q.ID,
			SessionID:     doc.ID,
			QuestionText:  q.QuestionText,
			Hint:          q.Hint,
			KeyPoints:     nonNil(q.KeyPoints),
			UserAnswer:    q.UserAnswer,
			Score:         q.Score,
			Feedback:      q.Feedback,
			CoveredPoints: nonNil(q.CoveredPoints),
			MissedPoints:  nonNil(q.MissedPoints),
			AnsweredAt:    q.AnsweredAt.UTC(),
			Topic:         q.Topic,
		}
	}
	return session
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
