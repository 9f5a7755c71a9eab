package scoring

import "errors"

var (
	// ErrNoValidScores means every catalogued archetype ended at exactly
	// zero, so there is nothing to rank.
	ErrNoValidScores = errors.New("no archetype scored above zero")

	// ErrZeroTotalWeight means normalization was asked for a quiz whose
	// total question weight is zero.
	ErrZeroTotalWeight = errors.New("total question weight is zero")

	// ErrDimensionMismatch means two vectors of different lengths were
	// compared. With a fixed trait space this indicates a malformed
	// catalogue, not bad user input.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
