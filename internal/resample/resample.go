// Package resample maps sample sequences onto a new time axis.
package resample

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Align resamples values, taken at the given times, onto the target
// time axis using piecewise linear interpolation. The result has
// exactly one value per target timestamp. Target timestamps outside the
// source range take the nearest endpoint value.
func Align(times, values, target []float64) ([]float64, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("resample: %d timestamps for %d values", len(times), len(values))
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("resample: need at least two samples, got %d", len(times))
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(times, values); err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	out := make([]float64, len(target))
	for i, t := range target {
		out[i] = pl.Predict(t)
	}
	return out, nil
}
