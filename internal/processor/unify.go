package processor

import (
	"fmt"

	"xdfflow/internal/model"
	"xdfflow/internal/resample"
	"xdfflow/logger"
)

// Unify brings all selected blocks onto one time axis and concatenates
// their channels. The block with the highest sample rate becomes the
// reference; on a tie the first one wins. Every other block is
// resampled onto the reference's exact timestamp sequence. A single
// block is returned untouched, without resampling or copying.
func Unify(blocks []*model.ChannelBlock) (*model.UnifiedRecording, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no blocks to unify")
	}
	log := logger.GetLogger().WithComponent("unifier")

	if len(blocks) == 1 {
		b := blocks[0]
		return &model.UnifiedRecording{
			SampleRate: b.Header.SampleRate,
			Labels:     b.Labels,
			Times:      b.Times,
			Data:       b.Data,
		}, nil
	}

	ref := 0
	for i, b := range blocks {
		if b.Header.SampleRate > blocks[ref].Header.SampleRate {
			ref = i
		}
	}
	target := blocks[ref].Times

	log.WithFields(logger.Fields{
		"reference":   blocks[ref].Header.Info.Name,
		"sample_rate": blocks[ref].Header.SampleRate,
		"samples":     len(target),
		"blocks":      len(blocks),
	}).Info("unifying streams onto reference time axis")

	out := &model.UnifiedRecording{
		SampleRate: blocks[ref].Header.SampleRate,
		Times:      target,
	}

	for i, b := range blocks {
		channels := b.Data
		if i != ref {
			channels = make([][]float64, len(b.Data))
			for c, values := range b.Data {
				aligned, err := resample.Align(b.Times, values, target)
				if err != nil {
					return nil, fmt.Errorf("resampling stream %q: %w", b.Header.Info.Name, err)
				}
				channels[c] = aligned
			}
		}
		out.Labels = append(out.Labels, b.Labels...)
		out.Data = append(out.Data, channels...)
	}

	return out, nil
}
