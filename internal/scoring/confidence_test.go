package scoring_test

import (
	"testing"

	"github.com/persona-lab/archetype-engine/internal/scoring"
)

func TestEstimateConfidenceLevels(t *testing.T) {
	cases := []struct {
		name   string
		scores map[string]float64
		score  float64
		level  string
		first  string
		second string
	}{
		{"no positives", map[string]float64{"a": 0, "b": -2}, 0, scoring.ConfidenceNone, "", ""},
		{"single positive", map[string]float64{"a": 2, "b": -1}, 1, scoring.ConfidencePerfect, "a", ""},
		{"strong gap", map[string]float64{"a": 4, "b": 1}, 0.75, scoring.ConfidenceStrong, "a", "b"},
		{"moderate gap", map[string]float64{"a": 5, "b": 3.5}, 0.3, scoring.ConfidenceModerate, "a", "b"},
		{"weak gap", map[string]float64{"a": 5, "b": 4.9}, 0.02, scoring.ConfidenceWeak, "a", "b"},
		{"boundary strong", map[string]float64{"a": 2, "b": 1}, 0.5, scoring.ConfidenceStrong, "a", "b"},
		{"boundary moderate", map[string]float64{"a": 5, "b": 4}, 0.2, scoring.ConfidenceModerate, "a", "b"},
	}
	for _, tc := range cases {
		c := scoring.EstimateConfidence(tc.scores)
		if c.Level != tc.level {
			t.Fatalf("%s: level %q, want %q", tc.name, c.Level, tc.level)
		}
		approx(t, c.Score, tc.score, 1e-9, tc.name)
		if c.FirstPlace != tc.first || c.SecondPlace != tc.second {
			t.Fatalf("%s: places %q/%q, want %q/%q", tc.name, c.FirstPlace, c.SecondPlace, tc.first, tc.second)
		}
	}
}

func TestEstimateConfidenceBounds(t *testing.T) {
	maps := []map[string]float64{
		{"a": 1, "b": 1, "c": 1},
		{"a": 100, "b": 0.001},
		{"a": 7},
		{},
	}
	for _, m := range maps {
		c := scoring.EstimateConfidence(m)
		if c.Score < 0 || c.Score > 1 {
			t.Fatalf("confidence out of [0,1]: %v for %v", c.Score, m)
		}
	}
}

func TestEstimateConfidenceEqualScores(t *testing.T) {
	// Equal positives order by id, gap 0, weak.
	c := scoring.EstimateConfidence(map[string]float64{"b": 5, "a": 5})
	if c.FirstPlace != "a" || c.SecondPlace != "b" {
		t.Fatalf("expected a/b ordering, got %q/%q", c.FirstPlace, c.SecondPlace)
	}
	if c.Score != 0 || c.Level != scoring.ConfidenceWeak {
		t.Fatalf("expected weak zero gap, got %v %q", c.Score, c.Level)
	}
}
