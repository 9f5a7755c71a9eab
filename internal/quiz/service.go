package quiz

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/persona-lab/archetype-engine/internal/archetype"
	"github.com/persona-lab/archetype-engine/internal/scoring"
)

type memoryStore struct {
	mu       sync.RWMutex
	quizzes  map[string]Quiz
	attempts map[string]Attempt
}

// NewInMemoryStore backs the gateway in offline/dev mode. State lives
// for the process only.
func NewInMemoryStore() Store {
	return &memoryStore{
		quizzes:  map[string]Quiz{},
		attempts: map[string]Attempt{},
	}
}

func (m *memoryStore) PutQuiz(q Quiz) error {
	if q.Edition != "" {
		if _, ok := archetype.Lookup(q.Edition); !ok {
			return ErrUnknownEdition
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	m.quizzes[q.ID] = q
	return nil
}

func (m *memoryStore) GetQuiz(id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return stripAnswerPoints(q), nil
}

func (m *memoryStore) GetQuizFull(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrQuizNotFound
	}
	delete(m.quizzes, id)
	for aid, a := range m.attempts {
		if a.QuizID == id {
			delete(m.attempts, aid)
		}
	}
	return nil
}

func (m *memoryStore) ListQuizzes(_ context.Context, opts ListOpts) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(opts.Q))
	out := make([]Summary, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		if needle != "" && !strings.Contains(strings.ToLower(q.Title), needle) {
			continue
		}
		out = append(out, Summary{
			ID:            q.ID,
			Title:         q.Title,
			Edition:       q.Edition,
			QuestionCount: len(q.Questions),
			CreatedAt:     q.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Summary{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) NewAttempt(quizID, userID string) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[quizID]; !ok {
		return Attempt{}, ErrQuizNotFound
	}
	a := Attempt{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		UserID:    userID,
		Status:    StatusInProgress,
		Responses: []scoring.Response{},
		StartedAt: time.Now().Unix(),
	}
	m.attempts[a.ID] = a
	return a, nil
}

func (m *memoryStore) SaveResponses(attemptID string, responses []scoring.Response) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[attemptID]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	if a.Status == StatusSubmitted {
		return Attempt{}, ErrAttemptSubmitted
	}
	a.Responses = mergeResponses(a.Responses, responses)
	m.attempts[attemptID] = a
	return a, nil
}

func (m *memoryStore) Submit(attemptID string) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[attemptID]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	if a.Status == StatusSubmitted {
		return a, nil
	}
	q, ok := m.quizzes[a.QuizID]
	if !ok {
		return Attempt{}, ErrQuizNotFound
	}
	eng := scoring.NewEngine(catalogueFor(q.Edition))
	res, err := eng.Score(q.Quiz, a.Responses, scoring.DefaultOptions())
	if err != nil {
		return Attempt{}, err
	}
	a.Result = res
	a.Status = StatusSubmitted
	a.SubmittedAt = time.Now().Unix()
	m.attempts[attemptID] = a
	return a, nil
}

func (m *memoryStore) GetAttempt(id string) (Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[id]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	return a, nil
}

func (m *memoryStore) ListAttempts(_ context.Context, opts AttemptListOpts) ([]Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Attempt, 0, len(m.attempts))
	for _, a := range m.attempts {
		if opts.QuizID != "" && a.QuizID != opts.QuizID {
			continue
		}
		if opts.UserID != "" && a.UserID != opts.UserID {
			continue
		}
		if opts.Status != "" && a.Status != opts.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt != out[j].StartedAt {
			return out[i].StartedAt > out[j].StartedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Attempt{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

// helpers

// catalogueFor resolves a quiz's edition, falling back to the default
// edition when it is empty or unknown.
func catalogueFor(edition string) *archetype.Catalogue {
	if edition != "" {
		if c, ok := archetype.Lookup(edition); ok {
			return c
		}
	}
	return archetype.Default()
}

// stripAnswerPoints deep-copies the question list with every answer's
// points map removed, so respondents cannot see the scoring key.
func stripAnswerPoints(q Quiz) Quiz {
	qs := make([]scoring.Question, len(q.Questions))
	copy(qs, q.Questions)
	for i := range qs {
		answers := make([]scoring.Answer, len(qs[i].Answers))
		copy(answers, qs[i].Answers)
		for j := range answers {
			answers[j].Points = nil
		}
		qs[i].Answers = answers
	}
	q.Questions = qs
	return q
}

// mergeResponses keeps at most one response per question: saving a
// question again replaces the earlier pick in place, new questions
// append in arrival order.
func mergeResponses(existing, incoming []scoring.Response) []scoring.Response {
	byQuestion := make(map[string]int, len(existing))
	out := make([]scoring.Response, len(existing))
	copy(out, existing)
	for i, r := range out {
		byQuestion[r.QuestionID] = i
	}
	for _, r := range incoming {
		if i, ok := byQuestion[r.QuestionID]; ok {
			out[i] = r
			continue
		}
		byQuestion[r.QuestionID] = len(out)
		out = append(out, r)
	}
	return out
}
