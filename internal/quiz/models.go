package quiz

import "github.com/persona-lab/archetype-engine/internal/scoring"

// Attempt statuses.
const (
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
)

// Quiz wraps a scoring definition with persistence metadata. The
// embedded definition carries id, title and questions; Edition names
// the archetype catalogue the quiz scores against (empty selects the
// default edition).
type Quiz struct {
	scoring.Quiz `yaml:",inline"`

	Edition   string `json:"edition,omitempty" yaml:"edition,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty" yaml:"-"`
}

// Attempt is one respondent's run through a quiz. Responses hold at
// most one answer per question (saving again replaces it); Result is
// set on submit and never recomputed afterwards.
type Attempt struct {
	ID          string             `json:"id"`
	QuizID      string             `json:"quiz_id"`
	UserID      string             `json:"user_id"`
	Status      string             `json:"status"` // in_progress|submitted
	Responses   []scoring.Response `json:"responses"`
	Result      *scoring.Result    `json:"result,omitempty"`
	StartedAt   int64              `json:"started_at,omitempty"`
	SubmittedAt int64              `json:"submitted_at,omitempty"`
}

// Summary is the list view of a quiz, without question content.
type Summary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Edition       string `json:"edition,omitempty"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at,omitempty"`
}
