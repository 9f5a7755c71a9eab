package scoring

// Quiz is the minimal definition the engine needs: an ordered list of
// multiple-choice questions. The storage layer wraps this with
// persistence metadata (edition, timestamps).
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one quiz item. Weight scales every point value of the
// chosen answer; missing or non-positive weights count as 1.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Weight  float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Answer maps archetype ids to the points awarded when it is chosen.
// A nil map is an authoring mistake (the validator flags it); an empty
// map is a legal neutral answer.
type Answer struct {
	ID     string             `json:"id" yaml:"id"`
	Text   string             `json:"text,omitempty" yaml:"text,omitempty"`
	Points map[string]float64 `json:"points" yaml:"points"`
}

// Response selects one answer for one question.
type Response struct {
	QuestionID string `json:"question_id" yaml:"question_id"`
	AnswerID   string `json:"answer_id" yaml:"answer_id"`
}

// EffectiveWeight returns the question weight, defaulting to 1.
func (q Question) EffectiveWeight() float64 {
	if q.Weight > 0 {
		return q.Weight
	}
	return 1
}

// TotalWeight sums effective question weights.
func TotalWeight(q Quiz) float64 {
	var sum float64
	for _, qu := range q.Questions {
		sum += qu.EffectiveWeight()
	}
	return sum
}
