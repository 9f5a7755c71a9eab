package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/persona-lab/archetype-engine/internal/archetype"
)

// GET /catalogue
func ListEditionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"editions": archetype.Editions(),
			"default":  archetype.DefaultEdition,
		})
	}
}

// GET /catalogue/{edition}
func GetEditionHandler() http.HandlerFunc {
	type out struct {
		Edition    string                `json:"edition"`
		Dimensions []string              `json:"dimensions"`
		Archetypes []archetype.Archetype `json:"archetypes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		edition := chi.URLParam(r, "edition")
		cat, ok := archetype.Lookup(edition)
		if !ok {
			http.Error(w, "unknown catalogue edition: "+edition, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out{
			Edition:    cat.Edition(),
			Dimensions: archetype.Dimensions,
			Archetypes: cat.Archetypes(),
		})
	}
}
