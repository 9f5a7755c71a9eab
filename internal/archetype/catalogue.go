package archetype

import (
	"errors"
	"fmt"
	"sort"
)

// Archetype is one entry of a catalogue edition.
type Archetype struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Summary string       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Traits  TraitProfile `json:"traits" yaml:"traits"`
}

// Catalogue is an immutable, validated set of archetypes for one edition
// key (e.g. "apocalypse.v1"). Scoring treats it as the closed universe of
// classification targets.
type Catalogue struct {
	edition string
	byID    map[string]Archetype
	ids     []string // sorted, for deterministic iteration
}

// New validates entries and builds a catalogue. IDs must be unique and
// non-empty; every trait profile must sit inside its dimension ranges.
func New(edition string, entries []Archetype) (*Catalogue, error) {
	if edition == "" {
		return nil, errors.New("catalogue edition is required")
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalogue %s has no archetypes", edition)
	}
	byID := make(map[string]Archetype, len(entries))
	ids := make([]string, 0, len(entries))
	for _, a := range entries {
		if a.ID == "" {
			return nil, fmt.Errorf("catalogue %s: archetype id is required", edition)
		}
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("catalogue %s: duplicate archetype id: %s", edition, a.ID)
		}
		if err := a.Traits.Validate(); err != nil {
			return nil, fmt.Errorf("catalogue %s: archetype %s: %w", edition, a.ID, err)
		}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}
	sort.Strings(ids)
	return &Catalogue{edition: edition, byID: byID, ids: ids}, nil
}

// Edition returns the catalogue's edition key.
func (c *Catalogue) Edition() string { return c.edition }

// Len returns the number of archetypes.
func (c *Catalogue) Len() int { return len(c.ids) }

// IDs returns archetype ids in ascending order. The slice is a copy.
func (c *Catalogue) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Get returns the archetype for an id.
func (c *Catalogue) Get(id string) (Archetype, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Profile returns the trait profile for an id.
func (c *Catalogue) Profile(id string) (TraitProfile, bool) {
	a, ok := c.byID[id]
	return a.Traits, ok
}

// Archetypes returns all entries in ascending id order.
func (c *Catalogue) Archetypes() []Archetype {
	out := make([]Archetype, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Registry of catalogues by edition key. Built-in editions register from
// init(); additional editions can be loaded at startup (see LoadFile).
var registry = map[string]*Catalogue{}

// Register binds a catalogue to its edition key.
func Register(c *Catalogue) { registry[c.Edition()] = c }

// Lookup returns a registered catalogue for an edition key.
func Lookup(edition string) (*Catalogue, bool) {
	c, ok := registry[edition]
	return c, ok
}

// Editions returns the registered edition keys in ascending order.
func Editions() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Default returns the built-in edition used when a quiz names none.
func Default() *Catalogue { return registry[DefaultEdition] }
