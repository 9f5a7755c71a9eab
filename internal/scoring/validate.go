package scoring

import "fmt"

// Validation is the outcome of a structural check: a pass flag plus
// every violation found, in document order. Validators collect all
// problems instead of stopping at the first.
type Validation struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
}

func (v *Validation) addf(format string, args ...any) {
	v.Violations = append(v.Violations, fmt.Sprintf(format, args...))
}

// ValidateQuiz checks a quiz definition's structure: non-empty question
// list, ids and text everywhere, unique ids, non-negative weights, and
// a points map on every answer (empty is fine, absent is not).
func ValidateQuiz(q Quiz) Validation {
	var v Validation
	if len(q.Questions) == 0 {
		v.addf("quiz has no questions")
	}
	seenQ := map[string]bool{}
	for i, qu := range q.Questions {
		label := fmt.Sprintf("question %d", i+1)
		if qu.ID == "" {
			v.addf("%s: id is required", label)
		} else {
			label = fmt.Sprintf("question %d (%s)", i+1, qu.ID)
			if seenQ[qu.ID] {
				v.addf("%s: duplicate question id", label)
			}
			seenQ[qu.ID] = true
		}
		if qu.Text == "" {
			v.addf("%s: text is required", label)
		}
		if qu.Weight < 0 {
			v.addf("%s: negative weight %g", label, qu.Weight)
		}
		if len(qu.Answers) == 0 {
			v.addf("%s: no answers", label)
		}
		seenA := map[string]bool{}
		for j, a := range qu.Answers {
			alabel := fmt.Sprintf("%s, answer %d", label, j+1)
			if a.ID == "" {
				v.addf("%s: id is required", alabel)
			} else {
				alabel = fmt.Sprintf("%s, answer %d (%s)", label, j+1, a.ID)
				if seenA[a.ID] {
					v.addf("%s: duplicate answer id", alabel)
				}
				seenA[a.ID] = true
			}
			if a.Points == nil {
				v.addf("%s: missing points map", alabel)
			}
		}
	}
	v.Valid = len(v.Violations) == 0
	return v
}

// ValidateResponses checks that every response resolves against the
// quiz: the question id must exist, the answer id must belong to that
// question, and no question may be answered twice. Partial coverage is
// fine; an empty list is valid.
func ValidateResponses(q Quiz, responses []Response) Validation {
	answers := make(map[string]map[string]bool, len(q.Questions))
	for _, qu := range q.Questions {
		set := make(map[string]bool, len(qu.Answers))
		for _, a := range qu.Answers {
			set[a.ID] = true
		}
		answers[qu.ID] = set
	}

	var v Validation
	seen := make(map[string]bool, len(responses))
	for i, r := range responses {
		set, ok := answers[r.QuestionID]
		if !ok {
			v.addf("response %d: unknown question %q", i+1, r.QuestionID)
			continue
		}
		if !set[r.AnswerID] {
			v.addf("response %d: unknown answer %q for question %q", i+1, r.AnswerID, r.QuestionID)
		}
		if seen[r.QuestionID] {
			v.addf("response %d: duplicate response for question %q", i+1, r.QuestionID)
		}
		seen[r.QuestionID] = true
	}
	v.Valid = len(v.Violations) == 0
	return v
}
