package processor

import (
	"fmt"
	"math"

	"xdfflow/internal/model"
	"xdfflow/internal/xdf"
)

// BuildHeader derives the conversion header for one continuous stream.
// Channel labels are prefixed with the stream name so labels stay
// unique after cross-stream concatenation. The average inter-sample
// spacing of a single-sample stream is reported as NaN.
func BuildHeader(s *xdf.Stream) *model.Header {
	n := len(s.TimeStamps)

	h := &model.Header{
		SampleRate:   s.Info.EffectiveRate,
		ChannelCount: s.Info.ChannelCount,
		Labels:       make([]string, s.Info.ChannelCount),
		Types:        make([]string, s.Info.ChannelCount),
		Units:        make([]string, s.Info.ChannelCount),
		SampleCount:  n,
		Info:         &s.Info,
	}

	for c := 0; c < s.Info.ChannelCount; c++ {
		label := fmt.Sprintf("ch%d", c+1)
		if c < len(s.Info.Channels) {
			if l := s.Info.Channels[c].Label; l != "" {
				label = l
			}
			h.Types[c] = s.Info.Channels[c].Type
			h.Units[c] = s.Info.Channels[c].Unit
		}
		h.Labels[c] = s.Info.Name + "_" + label
	}

	if n > 0 {
		h.FirstTimestamp = s.TimeStamps[0]
	}
	if n > 1 {
		h.SampleSpacing = (s.TimeStamps[n-1] - s.TimeStamps[0]) / float64(n-1)
	} else {
		h.SampleSpacing = math.NaN()
	}

	return h
}

// BuildBlock pairs a stream's header with its time axis and its sample
// matrix transposed to channel-major order.
func BuildBlock(s *xdf.Stream) (*model.ChannelBlock, error) {
	series, ok := s.Series.(xdf.NumericSeries)
	if !ok {
		return nil, fmt.Errorf("stream %q has no numeric samples", s.Info.Name)
	}
	if len(series) != len(s.TimeStamps) {
		return nil, fmt.Errorf("stream %q has %d samples for %d timestamps",
			s.Info.Name, len(series), len(s.TimeStamps))
	}

	h := BuildHeader(s)

	data := make([][]float64, h.ChannelCount)
	for c := range data {
		data[c] = make([]float64, len(series))
	}
	for k, row := range series {
		if len(row) != h.ChannelCount {
			return nil, fmt.Errorf("stream %q sample %d has %d values for %d channels",
				s.Info.Name, k, len(row), h.ChannelCount)
		}
		for c, v := range row {
			data[c][k] = v
		}
	}

	return &model.ChannelBlock{
		Header: h,
		Labels: h.Labels,
		Times:  s.TimeStamps,
		Data:   data,
	}, nil
}
