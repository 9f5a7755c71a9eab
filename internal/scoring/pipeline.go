package scoring

import "github.com/persona-lab/archetype-engine/internal/archetype"

// Options are the per-call knobs of a scoring run. Start from
// DefaultOptions; the zero value disables tie breaking and
// visualizations, which is rarely what a caller wants.
type Options struct {
	// TieTolerance widens or narrows the dominant-set band under the
	// top score. Non-positive values select DefaultTieTolerance.
	TieTolerance float64 `json:"tie_tolerance,omitempty"`
	// BreakTiesWithTraits resolves a multi-way tie to a single primary
	// by trait similarity instead of reporting the first ranked member.
	BreakTiesWithTraits bool `json:"break_ties_with_traits,omitempty"`
	// IncludeVisualizations computes the radar and distribution
	// geometry; skip it for cheaper partial scoring.
	IncludeVisualizations bool `json:"include_visualizations,omitempty"`
}

// DefaultOptions returns the standard scoring configuration.
func DefaultOptions() Options {
	return Options{
		TieTolerance:          DefaultTieTolerance,
		BreakTiesWithTraits:   true,
		IncludeVisualizations: true,
	}
}

// Visualizations bundles the geometry derived from one scoring run.
type Visualizations struct {
	RadarChart            RadarChart          `json:"radar_chart"`
	ScoreDistribution     []DistributionEntry `json:"score_distribution"`
	PrimaryArchetypeRadar *RadarChart         `json:"primary_archetype_radar,omitempty"`
}

// Result is the complete outcome of one scoring run. It is built fresh
// per call and never shared or mutated afterwards.
type Result struct {
	Primary            string             `json:"primary"`
	PrimaryScore       float64            `json:"primary_score"`
	DominantArchetypes []string           `json:"dominant_archetypes"`
	DominantScores     map[string]float64 `json:"dominant_scores"`
	HasTie             bool               `json:"has_tie"`
	TieThreshold       float64            `json:"tie_threshold"`

	AllScores        map[string]float64 `json:"all_scores"`
	NormalizedScores map[string]float64 `json:"normalized_scores"`
	MaxScore         float64            `json:"max_score"`
	Variance         float64            `json:"variance"`

	Confidence Confidence `json:"confidence"`

	TraitProfile archetype.TraitProfile `json:"trait_profile"`
	TraitVector  []float64              `json:"trait_vector"`

	// AdHocArchetypes lists score-map ids with no catalogue entry. They
	// rank and score like any other id but are excluded from all
	// trait-space math.
	AdHocArchetypes []string `json:"ad_hoc_archetypes,omitempty"`

	Visualizations *Visualizations `json:"visualizations"`

	QuestionsAnswered int  `json:"questions_answered"`
	TotalQuestions    int  `json:"total_questions"`
	IsComplete        bool `json:"is_complete"`
}

// Score runs the full pipeline: aggregate, rank the dominant set,
// break a tie if asked, grade confidence, normalize, and project the
// visualization geometry. The inferred trait profile is always
// computed; visualizations only when opts ask for them. Callers are
// expected to run the validators first; Score itself skips (and logs)
// unresolved references rather than failing.
func (e *Engine) Score(q Quiz, responses []Response, opts Options) (*Result, error) {
	scores, stats := e.Aggregate(q, responses)

	set, err := ResolveDominant(scores, opts.TieTolerance)
	if err != nil {
		return nil, err
	}

	profile := e.InferTraits(scores)
	primary := set.Entries[0].ID
	hasTie := len(set.Entries) > 1
	if hasTie && opts.BreakTiesWithTraits {
		primary, err = e.BreakTie(set, profile.Vector())
		if err != nil {
			return nil, err
		}
	}

	conf := EstimateConfidence(scores)

	normalized, err := Normalize(scores, q)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Primary:            primary,
		PrimaryScore:       scores[primary],
		DominantArchetypes: set.IDs(),
		DominantScores:     make(map[string]float64, len(set.Entries)),
		HasTie:             hasTie,
		TieThreshold:       set.Threshold,
		AllScores:          scores,
		NormalizedScores:   normalized,
		MaxScore:           set.MaxScore,
		Variance:           set.Variance,
		Confidence:         conf,
		TraitProfile:       profile,
		TraitVector:        profile.Vector(),
		AdHocArchetypes:    stats.AdHoc,
		QuestionsAnswered:  stats.Answered,
		TotalQuestions:     len(q.Questions),
		IsComplete:         stats.Answered >= len(q.Questions),
	}
	for _, en := range set.Entries {
		res.DominantScores[en.ID] = en.Score
	}

	if opts.IncludeVisualizations {
		viz := &Visualizations{
			RadarChart:        RadarFromProfile(profile),
			ScoreDistribution: ScoreDistribution(scores),
		}
		if p, ok := e.cat.Profile(primary); ok {
			chart := RadarFromProfile(p)
			viz.PrimaryArchetypeRadar = &chart
		}
		res.Visualizations = viz
	}
	return res, nil
}
