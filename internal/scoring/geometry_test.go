package scoring_test

import (
	"math"
	"testing"

	"github.com/persona-lab/archetype-engine/internal/archetype"
	"github.com/persona-lab/archetype-engine/internal/scoring"
)

func TestRadarUnitHexagonArea(t *testing.T) {
	full := archetype.TraitProfile{Awareness: 1, Affect: 1, Agency: 1, Time: 1, Relationality: 1, Posture: 1}
	chart := scoring.RadarFromProfile(full)
	if len(chart.Coordinates) != 6 {
		t.Fatalf("expected 6 spokes, got %d", len(chart.Coordinates))
	}
	// Regular hexagon with circumradius 1: area 3*sqrt(3)/2.
	approx(t, chart.Area, 3*math.Sqrt(3)/2, 1e-9, "unit hexagon area")
}

func TestRadarSpokeGeometry(t *testing.T) {
	p := archetype.TraitProfile{Awareness: 0.8, Affect: 0, Agency: 0.5, Time: -1, Relationality: 0.25, Posture: 1}
	chart := scoring.RadarFromProfile(p)
	pts := chart.Coordinates

	for i, pt := range pts {
		want := float64(i) / 6 * 2 * math.Pi
		approx(t, pt.Angle, want, 1e-12, "angle of spoke "+pt.Dimension)
	}
	if pts[0].Dimension != archetype.DimAwareness {
		t.Fatalf("first spoke should be awareness, got %s", pts[0].Dimension)
	}
	// Spoke 0 lies on the positive x axis.
	approx(t, pts[0].X, 0.8, 1e-12, "awareness x")
	approx(t, pts[0].Y, 0, 1e-12, "awareness y")

	// Bipolar dimensions are rescaled to [0,1] before projection.
	approx(t, pts[1].Radius, 0.5, 1e-12, "affect radius for value 0")
	approx(t, pts[3].Radius, 0, 1e-12, "time radius for value -1")
	// Spoke 3 sits at angle pi, so a zero radius collapses to origin.
	approx(t, pts[3].X, 0, 1e-12, "time x")
	approx(t, pts[3].Y, 0, 1e-12, "time y")
}

func TestPolygonAreaDegenerate(t *testing.T) {
	if got := scoring.PolygonArea(nil); got != 0 {
		t.Fatalf("area of nothing: got %v", got)
	}
	two := []scoring.RadarPoint{{X: 1, Y: 0}, {X: 0, Y: 1}}
	if got := scoring.PolygonArea(two); got != 0 {
		t.Fatalf("area of a segment: got %v", got)
	}
}

func TestScoreDistribution(t *testing.T) {
	entries := scoring.ScoreDistribution(map[string]float64{"a": 6, "b": 3, "c": 1})
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Archetype != "a" || entries[1].Archetype != "b" || entries[2].Archetype != "c" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	approx(t, entries[0].Percent, 60, 1e-9, "a percent")
	approx(t, entries[1].Percent, 30, 1e-9, "b percent")
	approx(t, entries[2].Percent, 10, 1e-9, "c percent")
}

func TestScoreDistributionZeroSum(t *testing.T) {
	for _, m := range []map[string]float64{
		{"a": 0, "b": 0},
		{"a": 5, "b": -5},
	} {
		for _, e := range scoring.ScoreDistribution(m) {
			if e.Percent != 0 {
				t.Fatalf("zero-sum map should yield 0%%, got %+v", e)
			}
		}
	}
}

func TestScoreDistributionTieOrder(t *testing.T) {
	entries := scoring.ScoreDistribution(map[string]float64{"b": 2, "a": 2, "c": 5})
	if entries[0].Archetype != "c" || entries[1].Archetype != "a" || entries[2].Archetype != "b" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}
