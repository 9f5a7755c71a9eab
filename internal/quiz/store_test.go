package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/persona-lab/archetype-engine/internal/quiz"
	"github.com/persona-lab/archetype-engine/internal/scoring"
)

/* ---------------- Fixtures ---------------- */

func sampleQuiz(id, title string, createdAt int64) quiz.Quiz {
	return quiz.Quiz{
		Quiz: scoring.Quiz{
			ID:    id,
			Title: title,
			Questions: []scoring.Question{
				{ID: "q1", Text: "First sign of trouble?", Answers: []scoring.Answer{
					{ID: "a", Text: "Ignore it", Points: map[string]float64{"ostrich": 2}},
					{ID: "b", Text: "Stock the pantry", Points: map[string]float64{"prepper": 2}},
				}},
				{ID: "q2", Text: "Weekend plans?", Weight: 2, Answers: []scoring.Answer{
					{ID: "a", Text: "Beach day", Points: map[string]float64{"ostrich": 1}},
					{ID: "b", Text: "Evacuation drills", Points: map[string]float64{"prepper": 1}},
				}},
			},
		},
		CreatedAt: createdAt,
	}
}

func seedStore(t *testing.T) quiz.Store {
	t.Helper()
	st := quiz.NewInMemoryStore()
	if err := st.PutQuiz(sampleQuiz("readiness", "Readiness Check", 100)); err != nil {
		t.Fatalf("PutQuiz: %v", err)
	}
	return st
}

/* ---------------- Quiz CRUD ---------------- */

func TestMemoryStorePutGetStripsPoints(t *testing.T) {
	st := seedStore(t)

	q, err := st.GetQuiz("readiness")
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	for _, question := range q.Questions {
		for _, ans := range question.Answers {
			if ans.Points != nil {
				t.Fatalf("GetQuiz leaked points for %s/%s", question.ID, ans.ID)
			}
		}
	}

	// the stored copy keeps its key
	full, err := st.GetQuizFull(context.Background(), "readiness")
	if err != nil {
		t.Fatalf("GetQuizFull: %v", err)
	}
	if full.Questions[0].Answers[0].Points["ostrich"] != 2 {
		t.Fatalf("GetQuizFull lost answer points")
	}
}

func TestMemoryStoreRejectsUnknownEdition(t *testing.T) {
	st := quiz.NewInMemoryStore()
	q := sampleQuiz("bad", "Bad Edition", 0)
	q.Edition = "nope.v9"
	if err := st.PutQuiz(q); !errors.Is(err, quiz.ErrUnknownEdition) {
		t.Fatalf("expected ErrUnknownEdition, got %v", err)
	}
}

func TestMemoryStoreGetQuizNotFound(t *testing.T) {
	st := quiz.NewInMemoryStore()
	if _, err := st.GetQuiz("ghost"); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestMemoryStoreDeleteCascadesAttempts(t *testing.T) {
	st := seedStore(t)
	a, err := st.NewAttempt("readiness", "u1")
	if err != nil {
		t.Fatalf("NewAttempt: %v", err)
	}

	if err := st.DeleteQuiz(context.Background(), "readiness"); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	if _, err := st.GetQuiz("readiness"); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("quiz should be gone, got %v", err)
	}
	if _, err := st.GetAttempt(a.ID); !errors.Is(err, quiz.ErrAttemptNotFound) {
		t.Fatalf("attempt should be gone, got %v", err)
	}
}

func TestMemoryStoreListQuizzes(t *testing.T) {
	st := quiz.NewInMemoryStore()
	for _, q := range []quiz.Quiz{
		sampleQuiz("alpha", "Apocalypse Readiness", 100),
		sampleQuiz("beta", "Office Survival", 300),
		sampleQuiz("gamma", "Readiness Redux", 200),
	} {
		if err := st.PutQuiz(q); err != nil {
			t.Fatalf("PutQuiz %s: %v", q.ID, err)
		}
	}

	all, err := st.ListQuizzes(context.Background(), quiz.ListOpts{})
	if err != nil {
		t.Fatalf("ListQuizzes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 quizzes, got %d", len(all))
	}
	// newest first
	if all[0].ID != "beta" || all[1].ID != "gamma" || all[2].ID != "alpha" {
		t.Fatalf("unexpected order: %s %s %s", all[0].ID, all[1].ID, all[2].ID)
	}
	if all[0].QuestionCount != 2 {
		t.Fatalf("expected question_count 2, got %d", all[0].QuestionCount)
	}

	readiness, err := st.ListQuizzes(context.Background(), quiz.ListOpts{Q: "readiness"})
	if err != nil {
		t.Fatalf("ListQuizzes filtered: %v", err)
	}
	if len(readiness) != 2 {
		t.Fatalf("expected 2 matches for readiness, got %d", len(readiness))
	}

	paged, err := st.ListQuizzes(context.Background(), quiz.ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListQuizzes paged: %v", err)
	}
	if len(paged) != 1 || paged[0].ID != "gamma" {
		t.Fatalf("expected page [gamma], got %+v", paged)
	}
}

/* ---------------- Attempt lifecycle ---------------- */

func TestMemoryStoreAttemptFlow(t *testing.T) {
	st := seedStore(t)

	a, err := st.NewAttempt("readiness", "u1")
	if err != nil {
		t.Fatalf("NewAttempt: %v", err)
	}
	if a.Status != quiz.StatusInProgress {
		t.Fatalf("new attempt status = %s", a.Status)
	}
	if a.ID == "" || a.StartedAt == 0 {
		t.Fatalf("attempt missing id or started_at: %+v", a)
	}

	// first save, then re-pick q1: the replacement wins
	if _, err := st.SaveResponses(a.ID, []scoring.Response{{QuestionID: "q1", AnswerID: "a"}}); err != nil {
		t.Fatalf("SaveResponses: %v", err)
	}
	a, err = st.SaveResponses(a.ID, []scoring.Response{
		{QuestionID: "q1", AnswerID: "b"},
		{QuestionID: "q2", AnswerID: "b"},
	})
	if err != nil {
		t.Fatalf("SaveResponses: %v", err)
	}
	if len(a.Responses) != 2 {
		t.Fatalf("expected 2 responses after merge, got %d", len(a.Responses))
	}
	if a.Responses[0].AnswerID != "b" {
		t.Fatalf("q1 response not replaced: %+v", a.Responses[0])
	}

	a, err = st.Submit(a.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a.Status != quiz.StatusSubmitted || a.SubmittedAt == 0 {
		t.Fatalf("submit did not finalize: %+v", a)
	}
	if a.Result == nil {
		t.Fatalf("submit left no result")
	}
	if a.Result.Primary != "prepper" {
		t.Fatalf("primary = %s, want prepper", a.Result.Primary)
	}
	if a.Result.PrimaryScore != 4 {
		t.Fatalf("primary score = %v, want 4", a.Result.PrimaryScore)
	}
	if !a.Result.IsComplete || a.Result.QuestionsAnswered != 2 {
		t.Fatalf("coverage wrong: %+v", a.Result)
	}

	// resubmit is a no-op
	again, err := st.Submit(a.ID)
	if err != nil {
		t.Fatalf("re-Submit: %v", err)
	}
	if again.SubmittedAt != a.SubmittedAt || again.Result.Primary != a.Result.Primary {
		t.Fatalf("resubmit changed the attempt")
	}

	// saving after submit is rejected
	if _, err := st.SaveResponses(a.ID, []scoring.Response{{QuestionID: "q2", AnswerID: "a"}}); !errors.Is(err, quiz.ErrAttemptSubmitted) {
		t.Fatalf("expected ErrAttemptSubmitted, got %v", err)
	}
}

func TestMemoryStoreSubmitWithoutResponses(t *testing.T) {
	st := seedStore(t)
	a, err := st.NewAttempt("readiness", "u1")
	if err != nil {
		t.Fatalf("NewAttempt: %v", err)
	}

	if _, err := st.Submit(a.ID); !errors.Is(err, scoring.ErrNoValidScores) {
		t.Fatalf("expected ErrNoValidScores, got %v", err)
	}

	// the attempt survives for another try
	a, err = st.GetAttempt(a.ID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if a.Status != quiz.StatusInProgress || a.Result != nil {
		t.Fatalf("failed submit should leave attempt in progress: %+v", a)
	}
}

func TestMemoryStoreNewAttemptUnknownQuiz(t *testing.T) {
	st := quiz.NewInMemoryStore()
	if _, err := st.NewAttempt("ghost", "u1"); !errors.Is(err, quiz.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestMemoryStoreListAttempts(t *testing.T) {
	st := seedStore(t)
	if err := st.PutQuiz(sampleQuiz("second", "Second Quiz", 200)); err != nil {
		t.Fatalf("PutQuiz: %v", err)
	}

	a1, _ := st.NewAttempt("readiness", "u1")
	a2, _ := st.NewAttempt("readiness", "u2")
	if _, err := st.NewAttempt("second", "u1"); err != nil {
		t.Fatalf("NewAttempt: %v", err)
	}
	if _, err := st.SaveResponses(a2.ID, []scoring.Response{{QuestionID: "q1", AnswerID: "b"}}); err != nil {
		t.Fatalf("SaveResponses: %v", err)
	}
	if _, err := st.Submit(a2.ID); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	mine, err := st.ListAttempts(context.Background(), quiz.AttemptListOpts{UserID: "u1"})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 attempts for u1, got %d", len(mine))
	}

	forQuiz, err := st.ListAttempts(context.Background(), quiz.AttemptListOpts{QuizID: "readiness"})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(forQuiz) != 2 {
		t.Fatalf("expected 2 attempts for readiness, got %d", len(forQuiz))
	}
	seen := map[string]bool{}
	for _, a := range forQuiz {
		seen[a.ID] = true
	}
	if !seen[a1.ID] || !seen[a2.ID] {
		t.Fatalf("readiness attempts missing a1/a2: %v", seen)
	}

	submitted, err := st.ListAttempts(context.Background(), quiz.AttemptListOpts{Status: quiz.StatusSubmitted})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(submitted) != 1 || submitted[0].ID != a2.ID {
		t.Fatalf("expected only a2 submitted, got %+v", submitted)
	}

	none, err := st.ListAttempts(context.Background(), quiz.AttemptListOpts{UserID: "u1", Status: quiz.StatusSubmitted})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no submitted attempts for u1, got %d", len(none))
	}
}
