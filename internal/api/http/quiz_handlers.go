package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/persona-lab/archetype-engine/internal/quiz"
	"github.com/persona-lab/archetype-engine/internal/rbac"
	"github.com/persona-lab/archetype-engine/internal/scoring"
)

// POST /quizzes
func UploadQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if q.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}

		if v := scoring.ValidateQuiz(q.Quiz); !v.Valid {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(v)
			return
		}

		if err := store.PutQuiz(q); err != nil {
			if errors.Is(err, quiz.ErrUnknownEdition) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": q.ID})
	}
}

// GET /quizzes/{quizID}
// Answer point maps are stripped unless the viewer holds quiz:view-full
// and asks for ?full=1.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")

		full := r.URL.Query().Get("full") == "1"
		if full && !policy.Has(rbac.RoleFromContext(r.Context()), "quiz:view-full") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var q quiz.Quiz
		var err error
		if full {
			q, err = store.GetQuizFull(r.Context(), id)
		} else {
			q, err = store.GetQuiz(id)
		}
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(q)
	}
}

// DELETE /quizzes/{quizID}
func DeleteQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		if err := store.DeleteQuiz(r.Context(), id); err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /quizzes?q=...&limit=50&offset=0
func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

		list, err := store.ListQuizzes(r.Context(), quiz.ListOpts{
			Q:      q,
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

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
