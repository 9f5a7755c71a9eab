package scoring

import "github.com/persona-lab/archetype-engine/internal/archetype"

// InferTraits places the respondent in trait space as the
// score-weighted centroid of the catalogued profiles. Only strictly
// positive scores with a catalogued profile contribute; ad hoc ids are
// logged and left out. With no contributions at all the inferred
// profile is the zero vector.
func (e *Engine) InferTraits(scores map[string]float64) archetype.TraitProfile {
	dims := len(archetype.Dimensions)
	acc := make([]float64, dims)
	var total float64
	for _, id := range sortedKeys(scores) {
		s := scores[id]
		if s <= 0 {
			continue
		}
		p, ok := e.cat.Profile(id)
		if !ok {
			e.logf("scoring: no trait profile for %q, excluded from trait inference", id)
			continue
		}
		v := p.Vector()
		for i := 0; i < dims; i++ {
			acc[i] += s * v[i]
		}
		total += s
	}
	if total == 0 {
		return archetype.TraitProfile{}
	}
	for i := range acc {
		acc[i] /= total
	}
	p, _ := archetype.ProfileFromVector(acc) // acc always has the canonical length
	return p
}
