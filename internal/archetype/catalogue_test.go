package archetype_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/persona-lab/archetype-engine/internal/archetype"
)

func TestBuiltinCatalogue(t *testing.T) {
	c := archetype.Default()
	if c == nil {
		t.Fatalf("expected default catalogue to be registered")
	}
	if c.Edition() != archetype.DefaultEdition {
		t.Fatalf("expected edition %q, got %q", archetype.DefaultEdition, c.Edition())
	}
	if c.Len() != 19 {
		t.Fatalf("expected 19 archetypes, got %d", c.Len())
	}
	ids := c.IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not in ascending order: %q before %q", ids[i-1], ids[i])
		}
	}
	for _, a := range c.Archetypes() {
		if a.Name == "" {
			t.Fatalf("archetype %s has no name", a.ID)
		}
		if err := a.Traits.Validate(); err != nil {
			t.Fatalf("archetype %s: %v", a.ID, err)
		}
	}
	if _, ok := c.Profile("prepper"); !ok {
		t.Fatalf("expected builtin prepper profile")
	}
}

func TestNewRejectsBadEntries(t *testing.T) {
	ok := archetype.Archetype{ID: "a", Name: "A"}
	cases := []struct {
		name    string
		edition string
		entries []archetype.Archetype
		wantSub string
	}{
		{"empty edition", "", []archetype.Archetype{ok}, "edition is required"},
		{"no entries", "x.v1", nil, "no archetypes"},
		{"missing id", "x.v1", []archetype.Archetype{{Name: "A"}}, "id is required"},
		{"duplicate id", "x.v1", []archetype.Archetype{ok, ok}, "duplicate archetype id"},
		{"out of range", "x.v1", []archetype.Archetype{{ID: "b", Traits: archetype.TraitProfile{Agency: 1.5}}}, "out of range"},
		{"bipolar below range", "x.v1", []archetype.Archetype{{ID: "c", Traits: archetype.TraitProfile{Affect: -1.2}}}, "out of range"},
	}
	for _, tc := range cases {
		_, err := archetype.New(tc.edition, tc.entries)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantSub) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.wantSub)
		}
	}
}

func TestBipolarRangeAccepted(t *testing.T) {
	// Affect and time may be negative, the unipolar dimensions may not.
	p := archetype.TraitProfile{Affect: -1, Time: -1}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := archetype.TraitProfile{Awareness: -0.1}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected negative awareness to be rejected")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	p := archetype.TraitProfile{Awareness: 0.1, Affect: -0.2, Agency: 0.3, Time: 0.4, Relationality: 0.5, Posture: 0.6}
	v := p.Vector()
	if len(v) != len(archetype.Dimensions) {
		t.Fatalf("expected %d components, got %d", len(archetype.Dimensions), len(v))
	}
	back, err := archetype.ProfileFromVector(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != p {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, p)
	}
	if _, err := archetype.ProfileFromVector([]float64{1, 2}); err == nil {
		t.Fatalf("expected dimension count error")
	}
	for i, dim := range archetype.Dimensions {
		got, ok := p.Value(dim)
		if !ok || got != v[i] {
			t.Fatalf("Value(%s) = %v,%v; want %v", dim, got, ok, v[i])
		}
	}
	if _, ok := p.Value("charisma"); ok {
		t.Fatalf("expected unknown dimension to report false")
	}
}

func TestRegistryLookup(t *testing.T) {
	if _, ok := archetype.Lookup(archetype.DefaultEdition); !ok {
		t.Fatalf("expected default edition in registry")
	}
	if _, ok := archetype.Lookup("nope.v0"); ok {
		t.Fatalf("did not expect unknown edition in registry")
	}
	eds := archetype.Editions()
	if len(eds) == 0 {
		t.Fatalf("expected at least one registered edition")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "wasteland.yaml")
	yamlDoc := `edition: wasteland.v1
archetypes:
  - id: raider
    name: The Raider
    traits: {awareness: 0.5, affect: -0.5, agency: 0.9, time: -0.2, relationality: 0.1, posture: 1.0}
  - id: settler
    name: The Settler
    traits: {awareness: 0.6, affect: 0.2, agency: 0.7, time: 0.6, relationality: 0.8, posture: 0.6}
`
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := archetype.LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if c.Edition() != "wasteland.v1" || c.Len() != 2 {
		t.Fatalf("unexpected catalogue: %s with %d entries", c.Edition(), c.Len())
	}
	p, ok := c.Profile("raider")
	if !ok || p.Agency != 0.9 {
		t.Fatalf("unexpected raider profile: %+v (ok=%v)", p, ok)
	}

	jsonPath := filepath.Join(dir, "mini.json")
	jsonDoc := `{"edition":"mini.v1","archetypes":[{"id":"solo","name":"Solo","traits":{"awareness":1,"affect":0,"agency":1,"time":0,"relationality":0,"posture":1}}]}`
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := archetype.LoadFile(jsonPath); err != nil {
		t.Fatalf("load json: %v", err)
	}

	badPath := filepath.Join(dir, "cat.txt")
	if err := os.WriteFile(badPath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := archetype.LoadFile(badPath); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
