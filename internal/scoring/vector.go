package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Norm returns the Euclidean norm of v. An empty vector has norm 0.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of u and v.
func Dot(u, v []float64) (float64, error) {
	if len(u) != len(v) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(u), len(v))
	}
	var sum float64
	for i := range u {
		sum += u[i] * v[i]
	}
	return sum, nil
}

// Cosine returns the cosine similarity of u and v in [-1,1]. If either
// vector has zero norm the similarity is 0 rather than NaN; callers use
// it to compare trait directions and a zero vector has no direction.
func Cosine(u, v []float64) (float64, error) {
	dot, err := Dot(u, v)
	if err != nil {
		return 0, err
	}
	nu, nv := Norm(u), Norm(v)
	if nu == 0 || nv == 0 {
		return 0, nil
	}
	return dot / (nu * nv), nil
}

// sortedKeys returns map keys in ascending order. Every fold over a
// score map iterates in this order so float accumulation is
// bit-identical across runs.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
