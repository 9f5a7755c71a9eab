package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/persona-lab/archetype-engine/internal/scoring"
)

// LoadFile reads a quiz definition from a JSON or YAML file (chosen by
// extension) and validates it.
func LoadFile(path string) (Quiz, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, err
	}
	var q Quiz
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &q); err != nil {
			return Quiz{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &q); err != nil {
			return Quiz{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return Quiz{}, fmt.Errorf("unsupported quiz format: %s", path)
	}
	if v := scoring.ValidateQuiz(q.Quiz); !v.Valid {
		return Quiz{}, fmt.Errorf("invalid quiz %s: %s", path, strings.Join(v.Violations, "; "))
	}
	return q, nil
}

// LoadDir loads every .json/.yaml/.yml quiz in dir, in filename order.
// One bad file fails the whole load so a seed pack is all or nothing.
func LoadDir(dir string) ([]Quiz, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Quiz, 0, len(names))
	for _, name := range names {
		q, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
