package scoring

import "sort"

// AggregateStats reports what an aggregation pass actually consumed.
type AggregateStats struct {
	Answered int      // distinct questions with a resolved response
	Skipped  int      // responses dropped for unknown question or answer ids
	AdHoc    []string // score-map ids with no catalogue entry, ascending
}

// Aggregate folds a response list into a per-archetype score map:
// Σ weight × points over every resolved response. The map starts at
// zero for every catalogued archetype, so archetypes nobody picked
// still appear. Point entries for ids outside the catalogue accumulate
// too but are reported in AggregateStats.AdHoc; they carry no trait
// profile. Unknown question or answer references are logged and
// skipped, never fatal.
func (e *Engine) Aggregate(q Quiz, responses []Response) (map[string]float64, AggregateStats) {
	scores := make(map[string]float64, e.cat.Len())
	for _, id := range e.cat.IDs() {
		scores[id] = 0
	}

	type item struct {
		weight  float64
		answers map[string]Answer
	}
	index := make(map[string]item, len(q.Questions))
	for _, qu := range q.Questions {
		answers := make(map[string]Answer, len(qu.Answers))
		for _, a := range qu.Answers {
			answers[a.ID] = a
		}
		index[qu.ID] = item{weight: qu.EffectiveWeight(), answers: answers}
	}

	var stats AggregateStats
	adhoc := map[string]bool{}
	answered := make(map[string]bool, len(responses))
	for _, r := range responses {
		it, ok := index[r.QuestionID]
		if !ok {
			e.logf("scoring: quiz %s: skipping response for unknown question %q", q.ID, r.QuestionID)
			stats.Skipped++
			continue
		}
		ans, ok := it.answers[r.AnswerID]
		if !ok {
			e.logf("scoring: quiz %s: skipping unknown answer %q for question %q", q.ID, r.AnswerID, r.QuestionID)
			stats.Skipped++
			continue
		}
		for _, id := range sortedKeys(ans.Points) {
			if _, known := scores[id]; !known {
				adhoc[id] = true
			}
			scores[id] += it.weight * ans.Points[id]
		}
		if !answered[r.QuestionID] {
			answered[r.QuestionID] = true
			stats.Answered++
		}
	}
	for id := range adhoc {
		stats.AdHoc = append(stats.AdHoc, id)
	}
	sort.Strings(stats.AdHoc)
	return scores, stats
}

// Normalize returns a new map with every score divided by the quiz's
// total question weight, making scores comparable across quizzes of
// different length. The input map is not mutated. A quiz with no
// questions has zero total weight and cannot be normalized.
func Normalize(scores map[string]float64, q Quiz) (map[string]float64, error) {
	total := TotalWeight(q)
	if total == 0 {
		return nil, ErrZeroTotalWeight
	}
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v / total
	}
	return out, nil
}
