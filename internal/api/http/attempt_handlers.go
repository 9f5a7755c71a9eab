package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/persona-lab/archetype-engine/internal/quiz"
	"github.com/persona-lab/archetype-engine/internal/rbac"
	"github.com/persona-lab/archetype-engine/internal/scoring"
)

// policy is the default role->permission table; handlers consult it for
// checks finer than the route-level rbac middleware.
var policy = rbac.NewChecker(nil)

func canViewAll(role string) bool {
	return policy.Has(role, "attempt:view-all")
}

// POST /attempts { "quiz_id": "...", "user_id": "..." }
// user_id defaults to the caller; only authors/admins may start an
// attempt on someone else's behalf.
func CreateAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id"`
			UserID string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.QuizID == "" {
			http.Error(w, "quiz_id required", 400)
			return
		}

		sub := rbac.SubjectFromContext(r.Context())
		userID := req.UserID
		if userID == "" || !canViewAll(rbac.RoleFromContext(r.Context())) {
			userID = sub
		}
		if userID == "" {
			http.Error(w, "user_id required", 400)
			return
		}

		a, err := store.NewAttempt(req.QuizID, userID)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// attemptForCaller loads the attempt and enforces ownership for roles
// without attempt:view-all.
func attemptForCaller(r *http.Request, store quiz.Store, id string) (quiz.Attempt, int, error) {
	a, err := store.GetAttempt(id)
	if err != nil {
		if errors.Is(err, quiz.ErrAttemptNotFound) {
			return quiz.Attempt{}, 404, err
		}
		return quiz.Attempt{}, 500, err
	}
	role := rbac.RoleFromContext(r.Context())
	if !canViewAll(role) && a.UserID != rbac.SubjectFromContext(r.Context()) {
		return quiz.Attempt{}, 403, errors.New("forbidden")
	}
	return a, 0, nil
}

// POST /attempts/{attemptID}/responses  [ {"question_id": "...", "answer_id": "..."}, ... ]
func SaveResponsesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		if _, code, err := attemptForCaller(r, store, id); err != nil {
			http.Error(w, err.Error(), code)
			return
		}

		var responses []scoring.Response
		if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		a, err := store.SaveResponses(id, responses)
		if err != nil {
			if errors.Is(err, quiz.ErrAttemptSubmitted) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// POST /attempts/{attemptID}/submit
func SubmitAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		if _, code, err := attemptForCaller(r, store, id); err != nil {
			http.Error(w, err.Error(), code)
			return
		}

		a, err := store.Submit(id)
		if err != nil {
			if errors.Is(err, scoring.ErrNoValidScores) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// GET /attempts/{attemptID}
func GetAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, code, err := attemptForCaller(r, store, id)
		if err != nil {
			http.Error(w, err.Error(), code)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// GET /attempts?quiz_id=...&user_id=...&status=...&limit=50&offset=0
// RBAC:
// - role with attempt:view-all can list any filters
// - role with attempt:view-own only sees their own (user_id is forced to subject)
func ListAttemptsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		sub := rbac.SubjectFromContext(r.Context())

		quizID := strings.TrimSpace(r.URL.Query().Get("quiz_id"))
		userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		status := strings.TrimSpace(r.URL.Query().Get("status"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		if role == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if !canViewAll(role) {
			userID = sub
		}

		list, err := store.ListAttempts(r.Context(), quiz.AttemptListOpts{
			QuizID: quizID,
			UserID: userID,
			Status: status,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
