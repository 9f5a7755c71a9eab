package scoring

import (
	"errors"
	"math"
	"sort"
)

// BreakTie resolves a multi-member dominant set to a single winner: the
// candidate whose catalogued trait profile points closest (by cosine
// similarity) to the respondent's inferred trait vector. Candidates
// without a catalogued profile get similarity 0 and a logged warning.
// Similarities within ScoreEpsilon count as equal and resolve by
// ascending id. The set itself is only read, never reordered.
func (e *Engine) BreakTie(set DominantSet, inferred []float64) (string, error) {
	if len(set.Entries) == 0 {
		return "", errors.New("empty dominant set")
	}
	type candidate struct {
		id  string
		sim float64
	}
	cands := make([]candidate, 0, len(set.Entries))
	ids := set.IDs()
	sort.Strings(ids)
	for _, id := range ids {
		p, ok := e.cat.Profile(id)
		if !ok {
			e.logf("scoring: no trait profile for tied candidate %q, similarity 0", id)
			cands = append(cands, candidate{id: id})
			continue
		}
		sim, err := Cosine(inferred, p.Vector())
		if err != nil {
			return "", err
		}
		cands = append(cands, candidate{id: id, sim: sim})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if math.Abs(cands[i].sim-cands[j].sim) < ScoreEpsilon {
			return false
		}
		return cands[i].sim > cands[j].sim
	})
	return cands[0].id, nil
}
