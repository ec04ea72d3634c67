package processor

import (
	"strconv"

	"xdfflow/internal/xdf"
	"xdfflow/logger"
)

// Classify partitions streams into continuous and discrete. A stream is
// continuous when it carries a measured effective sampling rate;
// absence of the rate is a valid outcome, not an error.
func Classify(streams []*xdf.Stream) []bool {
	log := logger.GetLogger().WithComponent("classifier")

	continuous := make([]bool, len(streams))
	for i, s := range streams {
		continuous[i] = s.Continuous()
		log.WithFields(logger.Fields{
			"stream":     s.Info.Name,
			"type":       s.Info.Type,
			"continuous": continuous[i],
		}).Info("stream classified")
	}
	return continuous
}

// Select intersects the continuous classification with an optional
// 1-based index filter. An empty filter selects every continuous
// stream. Returns an EmptySelectionError when nothing survives.
func Select(continuous []bool, indices []int) ([]bool, error) {
	requested := make(map[int]bool, len(indices))
	for _, idx := range indices {
		requested[idx] = true
	}

	mask := make([]bool, len(continuous))
	selected := 0
	total := 0
	for i, cont := range continuous {
		if cont {
			total++
		}
		mask[i] = cont && (len(indices) == 0 || requested[i+1])
		if mask[i] {
			selected++
		}
	}

	if selected == 0 {
		return nil, &EmptySelectionError{Continuous: total, Requested: indices}
	}
	return mask, nil
}

// EarliestStart resolves the minimum first timestamp across all streams
// of the given type. Event sample indices are anchored to this instant;
// without it the conversion cannot proceed.
func EarliestStart(streams []*xdf.Stream, streamType string) (float64, error) {
	log := logger.GetLogger().WithComponent("classifier")

	found := false
	min := 0.0
	for _, s := range streams {
		if s.Info.Type != streamType {
			continue
		}
		start, err := strconv.ParseFloat(s.Info.FirstTimestamp, 64)
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"stream": s.Info.Name,
			}).Warn("stream has unparsable first timestamp")
			continue
		}
		if !found || start < min {
			min = start
			found = true
		}
	}
	if !found {
		return 0, &MissingStreamError{StreamType: streamType}
	}
	return min, nil
}
