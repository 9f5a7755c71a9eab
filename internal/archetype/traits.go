package archetype

import "fmt"

// Trait dimension keys, in canonical vector order.
const (
	DimAwareness     = "awareness"
	DimAffect        = "affect"
	DimAgency        = "agency"
	DimTime          = "time"
	DimRelationality = "relationality"
	DimPosture       = "posture"
)

// Dimensions is the canonical ordering used by every vector produced or
// consumed in this module. Index i of any trait vector is Dimensions[i].
var Dimensions = []string{
	DimAwareness,
	DimAffect,
	DimAgency,
	DimTime,
	DimRelationality,
	DimPosture,
}

// TraitProfile positions an archetype (or a respondent) in the
// six-dimensional trait space. Awareness, agency, relationality and
// posture are unipolar [0,1]; affect and time are bipolar [-1,1].
type TraitProfile struct {
	Awareness     float64 `json:"awareness" yaml:"awareness"`
	Affect        float64 `json:"affect" yaml:"affect"`
	Agency        float64 `json:"agency" yaml:"agency"`
	Time          float64 `json:"time" yaml:"time"`
	Relationality float64 `json:"relationality" yaml:"relationality"`
	Posture       float64 `json:"posture" yaml:"posture"`
}

// Vector returns the profile in canonical dimension order.
func (p TraitProfile) Vector() []float64 {
	return []float64{p.Awareness, p.Affect, p.Agency, p.Time, p.Relationality, p.Posture}
}

// Value returns the component for a dimension key.
func (p TraitProfile) Value(dim string) (float64, bool) {
	switch dim {
	case DimAwareness:
		return p.Awareness, true
	case DimAffect:
		return p.Affect, true
	case DimAgency:
		return p.Agency, true
	case DimTime:
		return p.Time, true
	case DimRelationality:
		return p.Relationality, true
	case DimPosture:
		return p.Posture, true
	}
	return 0, false
}

// Bipolar reports whether a dimension ranges over [-1,1] rather than [0,1].
func Bipolar(dim string) bool {
	return dim == DimAffect || dim == DimTime
}

// ProfileFromVector rebuilds a profile from a vector in canonical order.
func ProfileFromVector(v []float64) (TraitProfile, error) {
	if len(v) != len(Dimensions) {
		return TraitProfile{}, fmt.Errorf("trait vector must have %d components, got %d", len(Dimensions), len(v))
	}
	return TraitProfile{
		Awareness:     v[0],
		Affect:        v[1],
		Agency:        v[2],
		Time:          v[3],
		Relationality: v[4],
		Posture:       v[5],
	}, nil
}

// Validate checks every component against its dimension's range.
func (p TraitProfile) Validate() error {
	for i, dim := range Dimensions {
		v := p.Vector()[i]
		lo := 0.0
		if Bipolar(dim) {
			lo = -1.0
		}
		if v < lo || v > 1.0 {
			return fmt.Errorf("trait %s out of range [%g,1]: %g", dim, lo, v)
		}
	}
	return nil
}
