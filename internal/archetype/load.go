package archetype

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogueFile is the on-disk shape for custom editions.
type catalogueFile struct {
	Edition    string      `json:"edition" yaml:"edition"`
	Archetypes []Archetype `json:"archetypes" yaml:"archetypes"`
}

// LoadFile reads a catalogue edition from a JSON or YAML file (chosen by
// extension) and validates it. The caller decides whether to Register it.
func LoadFile(path string) (*Catalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f catalogueFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalogue format: %s", path)
	}
	return New(f.Edition, f.Archetypes)
}
