package scoring

import (
	"math"
	"sort"

	"github.com/persona-lab/archetype-engine/internal/archetype"
)

// RadarPoint is one spoke of a radar chart.
type RadarPoint struct {
	Dimension string  `json:"dimension"`
	Angle     float64 `json:"angle"`
	Radius    float64 `json:"radius"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// RadarChart is the polar/cartesian projection of a trait profile plus
// the area enclosed by the profile polygon.
type RadarChart struct {
	Coordinates []RadarPoint `json:"coordinates"`
	Area        float64      `json:"area"`
}

// RadarFromProfile spreads the trait dimensions over evenly spaced
// spokes: dimension i gets angle (i/N)·2π and radius equal to its
// value. Bipolar dimensions are rescaled to [0,1] via (v+1)/2 first so
// radii never go negative.
func RadarFromProfile(p archetype.TraitProfile) RadarChart {
	dims := archetype.Dimensions
	values := p.Vector()
	n := len(dims)
	pts := make([]RadarPoint, 0, n)
	for i, dim := range dims {
		r := values[i]
		if archetype.Bipolar(dim) {
			r = (r + 1) / 2
		}
		angle := float64(i) / float64(n) * 2 * math.Pi
		pts = append(pts, RadarPoint{
			Dimension: dim,
			Angle:     angle,
			Radius:    r,
			X:         r * math.Cos(angle),
			Y:         r * math.Sin(angle),
		})
	}
	return RadarChart{Coordinates: pts, Area: PolygonArea(pts)}
}

// PolygonArea applies the shoelace formula over points in angular
// order, treating the list as closed (the last point connects back to
// the first). Fewer than three points enclose nothing.
func PolygonArea(pts []RadarPoint) float64 {
	n := len(pts)
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

// DistributionEntry is one archetype's share of the total score.
type DistributionEntry struct {
	Archetype string  `json:"archetype"`
	Score     float64 `json:"score"`
	Percent   float64 `json:"percent"`
}

// ScoreDistribution expresses each score as a percentage of the sum of
// all scores (every entry 0 when the sum is zero), ordered by
// descending raw score with ascending-id tie breaks.
func ScoreDistribution(scores map[string]float64) []DistributionEntry {
	ids := sortedKeys(scores)
	var total float64
	for _, id := range ids {
		total += scores[id]
	}
	out := make([]DistributionEntry, 0, len(ids))
	for _, id := range ids {
		e := DistributionEntry{Archetype: id, Score: scores[id]}
		if total != 0 {
			e.Percent = 100 * e.Score / total
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if math.Abs(out[i].Score-out[j].Score) < ScoreEpsilon {
			return false
		}
		return out[i].Score > out[j].Score
	})
	return out
}
