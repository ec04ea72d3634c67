package processor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeader(t *testing.T) {
	s := makeContinuous("eeg", "EEG", 100, 2.0, 10, 2)

	h := BuildHeader(s)
	assert.Equal(t, 100.0, h.SampleRate)
	assert.Equal(t, 2, h.ChannelCount)
	assert.Equal(t, []string{"eeg_c1", "eeg_c2"}, h.Labels)
	assert.Equal(t, 10, h.SampleCount)
	assert.InDelta(t, 2.0, h.FirstTimestamp, 1e-9)
	assert.InDelta(t, 0.01, h.SampleSpacing, 1e-9)
	assert.Equal(t, "uV", h.Units[0])
	assert.Same(t, &s.Info, h.Info)

	// Label list length always matches the channel count.
	assert.Len(t, h.Labels, h.ChannelCount)
}

func TestBuildHeaderNamespacingIsInjective(t *testing.T) {
	a := makeContinuous("streamA", "EEG", 100, 0, 5, 1)
	b := makeContinuous("streamB", "EEG", 100, 0, 5, 1)

	ha := BuildHeader(a)
	hb := BuildHeader(b)
	assert.NotEqual(t, ha.Labels[0], hb.Labels[0])
}

func TestBuildHeaderSingleSample(t *testing.T) {
	s := makeContinuous("one", "EEG", 100, 0, 1, 1)

	h := BuildHeader(s)
	assert.True(t, math.IsNaN(h.SampleSpacing))
	assert.Equal(t, 1, h.SampleCount)
}

func TestBuildHeaderMissingChannelDescriptors(t *testing.T) {
	s := makeContinuous("bare", "EEG", 100, 0, 5, 2)
	s.Info.Channels = nil

	h := BuildHeader(s)
	assert.Equal(t, []string{"bare_ch1", "bare_ch2"}, h.Labels)
}

func TestBuildBlock(t *testing.T) {
	s := makeContinuous("eeg", "EEG", 100, 0, 4, 2)

	block, err := BuildBlock(s)
	require.NoError(t, err)
	require.Len(t, block.Data, 2)
	require.Len(t, block.Data[0], 4)
	// Ramp values survive the transpose to channel-major order.
	assert.Equal(t, []float64{0, 1, 2, 3}, block.Data[0])
	assert.Equal(t, []float64{0, 1, 2, 3}, block.Data[1])
	assert.Equal(t, s.TimeStamps, block.Times)
	assert.Equal(t, block.Header.Labels, block.Labels)
}

func TestBuildBlockRejectsLabelSeries(t *testing.T) {
	s := makeMarkers("stim", []float64{1}, []string{"a"})

	_, err := BuildBlock(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no numeric samples")
}
