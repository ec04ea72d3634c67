package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdfflow/internal/model"
)

func TestUnifySingleBlockUntouched(t *testing.T) {
	s := makeContinuous("solo", "EEG", 100, 0, 10, 2)
	block, err := BuildBlock(s)
	require.NoError(t, err)

	rec, err := Unify([]*model.ChannelBlock{block})
	require.NoError(t, err)
	assert.Equal(t, 100.0, rec.SampleRate)

	// The degenerate path shares the block's slices instead of copying.
	block.Times[0] = 42
	assert.Equal(t, 42.0, rec.Times[0])
	block.Data[0][0] = 7
	assert.Equal(t, 7.0, rec.Data[0][0])
}

func TestUnifyTwoRates(t *testing.T) {
	slow := makeContinuous("slow", "EEG", 128, 0, 500, 2)
	fast := makeContinuous("fast", "EEG", 1000, 0, 5000, 3)

	slowBlock, err := BuildBlock(slow)
	require.NoError(t, err)
	fastBlock, err := BuildBlock(fast)
	require.NoError(t, err)

	rec, err := Unify([]*model.ChannelBlock{slowBlock, fastBlock})
	require.NoError(t, err)

	// The 1000 Hz stream is the reference axis.
	assert.Equal(t, 1000.0, rec.SampleRate)
	assert.Len(t, rec.Times, 5000)
	assert.Len(t, rec.Data, 5)
	for _, ch := range rec.Data {
		assert.Len(t, ch, 5000)
	}

	// Block order is kept: slow channels first, then fast channels.
	assert.Equal(t, []string{"slow_c1", "slow_c2", "fast_c1", "fast_c2", "fast_c3"}, rec.Labels)

	// The reference block is passed through unresampled.
	assert.Equal(t, fastBlock.Data[0], rec.Data[2])

	// Slow channels carry a ramp of value k at time k/128, so the
	// interpolated value at t=1s is 128.
	assert.InDelta(t, 128.0, rec.Data[0][1000], 1e-6)
	assert.InDelta(t, 64.0, rec.Data[1][500], 1e-6)
}

func TestUnifyTieBreakFirstMatch(t *testing.T) {
	first := makeContinuous("first", "EEG", 100, 0.0, 50, 1)
	second := makeContinuous("second", "EEG", 100, 0.5, 50, 1)

	b1, err := BuildBlock(first)
	require.NoError(t, err)
	b2, err := BuildBlock(second)
	require.NoError(t, err)

	rec, err := Unify([]*model.ChannelBlock{b1, b2})
	require.NoError(t, err)

	// Equal rates: the first block's axis wins.
	assert.InDelta(t, 0.0, rec.Times[0], 1e-9)
	assert.Len(t, rec.Times, 50)
}

func TestUnifyNoBlocks(t *testing.T) {
	_, err := Unify(nil)
	require.Error(t, err)
}
