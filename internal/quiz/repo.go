package quiz

import (
	"context"
	"errors"

	"github.com/persona-lab/archetype-engine/internal/scoring"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrAttemptSubmitted = errors.New("attempt already submitted")
	ErrUnknownEdition   = errors.New("unknown catalogue edition")
)

type ListOpts struct {
	Q      string // substring match on title
	Limit  int
	Offset int
}

type AttemptListOpts struct {
	QuizID string
	UserID string
	Status string // optional: in_progress|submitted
	Limit  int
	Offset int
}

type Store interface {
	PutQuiz(q Quiz) error
	GetQuiz(id string) (Quiz, error) // respondent-safe (answer points stripped)
	GetQuizFull(ctx context.Context, id string) (Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
	ListQuizzes(ctx context.Context, opts ListOpts) ([]Summary, error)

	NewAttempt(quizID, userID string) (Attempt, error)
	SaveResponses(attemptID string, responses []scoring.Response) (Attempt, error)
	Submit(attemptID string) (Attempt, error)
	GetAttempt(id string) (Attempt, error)
	ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)
}
