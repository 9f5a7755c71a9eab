package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/persona-lab/archetype-engine/internal/archetype"
	"github.com/persona-lab/archetype-engine/internal/quiz"
	"github.com/persona-lab/archetype-engine/internal/scoring"
)

// scoreOptions overlays request fields onto the scoring defaults, so
// callers only send what they want to change.
type scoreOptions struct {
	TieTolerance          *float64 `json:"tie_tolerance"`
	BreakTiesWithTraits   *bool    `json:"break_ties_with_traits"`
	IncludeVisualizations *bool    `json:"include_visualizations"`
}

func (o *scoreOptions) apply() scoring.Options {
	opts := scoring.DefaultOptions()
	if o == nil {
		return opts
	}
	if o.TieTolerance != nil {
		opts.TieTolerance = *o.TieTolerance
	}
	if o.BreakTiesWithTraits != nil {
		opts.BreakTiesWithTraits = *o.BreakTiesWithTraits
	}
	if o.IncludeVisualizations != nil {
		opts.IncludeVisualizations = *o.IncludeVisualizations
	}
	return opts
}

func editionCatalogue(edition string) (*archetype.Catalogue, bool) {
	if edition == "" {
		return archetype.Default(), true
	}
	return archetype.Lookup(edition)
}

func writeResult(w http.ResponseWriter, res *scoring.Result, err error) {
	if err != nil {
		if errors.Is(err, scoring.ErrNoValidScores) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), 400)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// POST /quizzes/{quizID}/score { "responses": [...], "options": {...} }
// Scores responses against a stored quiz without touching attempts.
// Duplicate responses accumulate; use attempts for one-pick-per-question
// semantics.
func ScoreQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		var req struct {
			Responses []scoring.Response `json:"responses"`
			Options   *scoreOptions      `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}

		q, err := store.GetQuizFull(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}

		cat, ok := editionCatalogue(q.Edition)
		if !ok {
			http.Error(w, "unknown catalogue edition: "+q.Edition, 400)
			return
		}
		eng := scoring.NewEngine(cat)
		res, err := eng.Score(q.Quiz, req.Responses, req.Options.apply())
		writeResult(w, res, err)
	}
}

// POST /score { "quiz": {...}, "edition": "...", "responses": [...], "options": {...} }
// Fully inline scoring: nothing is read from or written to the store.
func ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Quiz      scoring.Quiz       `json:"quiz"`
			Edition   string             `json:"edition"`
			Responses []scoring.Response `json:"responses"`
			Options   *scoreOptions      `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if v := scoring.ValidateQuiz(req.Quiz); !v.Valid {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(v)
			return
		}

		cat, ok := editionCatalogue(req.Edition)
		if !ok {
			http.Error(w, "unknown catalogue edition: "+req.Edition, 400)
			return
		}
		eng := scoring.NewEngine(cat)
		res, err := eng.Score(req.Quiz, req.Responses, req.Options.apply())
		writeResult(w, res, err)
	}
}

// POST /quizzes/validate { "quiz": {...}, "edition": "..." }
// Always 200; the validation report is the payload.
func ValidateQuizHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Quiz    scoring.Quiz `json:"quiz"`
			Edition string       `json:"edition"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		v := scoring.ValidateQuiz(req.Quiz)
		if req.Edition != "" {
			if _, ok := archetype.Lookup(req.Edition); !ok {
				v.Valid = false
				v.Violations = append(v.Violations, "unknown catalogue edition: "+req.Edition)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

// POST /quizzes/{quizID}/validate-responses  [ {"question_id": ..., "answer_id": ...}, ... ]
func ValidateResponsesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		var responses []scoring.Response
		if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		q, err := store.GetQuizFull(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		v := scoring.ValidateResponses(q.Quiz, responses)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}
