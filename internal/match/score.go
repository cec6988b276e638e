package match

import "github.com/nataliekozlowskii/lab-data-processing/internal/refdata"

// Deviation is the transient per-(candidate, sample) scoring record.
type Deviation struct {
	Z       float64
	InRange bool
}

// Score computes the deviation record for one measured value against one
// reference row. Pure function; callers skip (candidate, sample) pairs
// where either side is missing instead of calling with placeholders.
func Score(value float64, row refdata.Row, metric DeviationFunc) Deviation {
	return Deviation{
		Z:       metric(value, row),
		InRange: row.Low <= value && value <= row.High,
	}
}
