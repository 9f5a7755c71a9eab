package scoring

import (
	"math"
	"sort"
)

// Named tolerance constants. These are fixed behaviour shared by every
// caller; the caller-facing tie tolerance travels in Options instead.
const (
	// DefaultTieTolerance is the relative band below the top score that
	// still counts as tied with it.
	DefaultTieTolerance = 0.05

	// MinScoreVariance is the max-min spread below which an all-zero
	// score map is reported as having no valid scores.
	MinScoreVariance = 0.1

	// ScoreEpsilon is the band within which two scores (or two
	// similarities) count as equal when ordering output. Ordering falls
	// back to ascending id inside the band, keeping output reproducible.
	ScoreEpsilon = 1e-4
)

// DominantEntry is one member of the dominant set.
type DominantEntry struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// DominantSet is the tie-tolerant maximum of a score map: every
// archetype whose score reaches the threshold band under the top score.
type DominantSet struct {
	Entries   []DominantEntry `json:"entries"`
	Threshold float64         `json:"threshold"`
	MaxScore  float64         `json:"max_score"`
	Variance  float64         `json:"variance"` // max-min spread, not statistical variance
}

// IDs returns the member ids in ranked order.
func (s DominantSet) IDs() []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.ID)
	}
	return out
}

// ResolveDominant ranks a score map and returns every entry within the
// tolerance band of the top score, ordered by descending score with
// ascending-id tie breaks. Non-positive tolerance selects
// DefaultTieTolerance.
//
// All-zero scores return ErrNoValidScores. Uniform nonzero scores do
// not: everyone scoring the same positive amount is a legitimate
// many-way tie, not an empty result.
func ResolveDominant(scores map[string]float64, tolerance float64) (DominantSet, error) {
	if tolerance <= 0 {
		tolerance = DefaultTieTolerance
	}
	if len(scores) == 0 {
		return DominantSet{}, ErrNoValidScores
	}
	ids := sortedKeys(scores)
	max, min := scores[ids[0]], scores[ids[0]]
	for _, id := range ids[1:] {
		s := scores[id]
		if s > max {
			max = s
		}
		if s < min {
			min = s
		}
	}
	variance := max - min
	if variance < MinScoreVariance && max == 0 {
		return DominantSet{}, ErrNoValidScores
	}

	set := DominantSet{
		Threshold: max * (1 - tolerance),
		MaxScore:  max,
		Variance:  variance,
	}
	for _, id := range ids {
		s := scores[id]
		// With a negative max the threshold sits above it; the top
		// scorer is a member regardless.
		if s >= set.Threshold || s >= max-ScoreEpsilon {
			set.Entries = append(set.Entries, DominantEntry{ID: id, Score: s})
		}
	}
	sortByScoreDesc(set.Entries)
	return set, nil
}

// sortByScoreDesc orders entries by descending score; scores within
// ScoreEpsilon count as equal and keep their ascending-id input order.
func sortByScoreDesc(entries []DominantEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if math.Abs(entries[i].Score-entries[j].Score) < ScoreEpsilon {
			return false
		}
		return entries[i].Score > entries[j].Score
	})
}
