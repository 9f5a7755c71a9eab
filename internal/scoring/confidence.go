package scoring

import (
	"math"
	"sort"
)

// Confidence levels, strongest separation first.
const (
	ConfidencePerfect  = "perfect"
	ConfidenceStrong   = "strong"
	ConfidenceModerate = "moderate"
	ConfidenceWeak     = "weak"
	ConfidenceNone     = "none"
)

// Level cut-offs on the relative first-to-second gap.
const (
	strongGap   = 0.5
	moderateGap = 0.2
)

// Confidence grades how separated the top score is from the runner-up.
// Score is (first-second)/first over strictly positive scores, so it
// lives in [0,1].
type Confidence struct {
	Score       float64 `json:"score"`
	Level       string  `json:"level"`
	FirstPlace  string  `json:"first_place,omitempty"`
	SecondPlace string  `json:"second_place,omitempty"`
}

// EstimateConfidence ranks the strictly positive scores and grades the
// gap between the best two. No positive scores grades none; exactly one
// grades perfect with no runner-up.
func EstimateConfidence(scores map[string]float64) Confidence {
	type ranked struct {
		id    string
		score float64
	}
	pos := make([]ranked, 0, len(scores))
	for _, id := range sortedKeys(scores) {
		if s := scores[id]; s > 0 {
			pos = append(pos, ranked{id: id, score: s})
		}
	}
	sort.SliceStable(pos, func(i, j int) bool {
		if math.Abs(pos[i].score-pos[j].score) < ScoreEpsilon {
			return false
		}
		return pos[i].score > pos[j].score
	})

	switch len(pos) {
	case 0:
		return Confidence{Level: ConfidenceNone}
	case 1:
		return Confidence{Score: 1, Level: ConfidencePerfect, FirstPlace: pos[0].id}
	}
	first, second := pos[0], pos[1]
	gap := (first.score - second.score) / first.score
	level := ConfidenceWeak
	switch {
	case gap >= strongGap:
		level = ConfidenceStrong
	case gap >= moderateGap:
		level = ConfidenceModerate
	}
	return Confidence{Score: gap, Level: level, FirstPlace: first.id, SecondPlace: second.id}
}
