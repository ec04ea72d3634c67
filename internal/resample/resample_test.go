package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignIdentity(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{10, 20, 30, 40}

	out, err := Align(times, values, times)
	require.NoError(t, err)
	assert.Equal(t, values, out)
}

func TestAlignInterpolates(t *testing.T) {
	times := []float64{0, 1}
	values := []float64{0, 10}

	out, err := Align(times, values, []float64{0, 0.5, 1})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 0, out[0], 1e-12)
	assert.InDelta(t, 5, out[1], 1e-12)
	assert.InDelta(t, 10, out[2], 1e-12)
}

func TestAlignClampsOutsideRange(t *testing.T) {
	times := []float64{1, 2}
	values := []float64{5, 7}

	out, err := Align(times, values, []float64{0, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7}, out)
}

func TestAlignLengthMismatch(t *testing.T) {
	_, err := Align([]float64{0, 1}, []float64{1}, []float64{0})
	require.Error(t, err)
}

func TestAlignTooFewSamples(t *testing.T) {
	_, err := Align([]float64{0}, []float64{1}, []float64{0})
	require.Error(t, err)
}
