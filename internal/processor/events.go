package processor

import (
	"fmt"
	"math"
	"strconv"

	"xdfflow/internal/model"
	"xdfflow/internal/xdf"
	"xdfflow/logger"
)

const eventType = "Marker"

// ExtractEvents converts every marker-typed stream into events on the
// unified sample axis. A stream that fails to convert contributes no
// events; the failure is logged and the remaining streams are still
// processed. Events keep stream encounter order and are not sorted by
// sample or timestamp.
func ExtractEvents(streams []*xdf.Stream, markerType string, anchorStart, sampleRate float64) []model.Event {
	log := logger.GetLogger().WithComponent("events")

	var events []model.Event
	for _, s := range streams {
		if s.Info.Type != markerType {
			continue
		}
		evs, err := streamEvents(s, anchorStart, sampleRate)
		if err != nil {
			serr := &MarkerStreamError{Stream: s.Info.Name, Err: err}
			log.WithError(serr).WithFields(logger.Fields{
				"stream": s.Info.Name,
			}).Warn("marker stream dropped")
			continue
		}
		log.WithFields(logger.Fields{
			"stream": s.Info.Name,
			"events": len(evs),
		}).Info("marker stream converted")
		events = append(events, evs...)
	}
	return events
}

// streamEvents converts a single marker stream. The series was typed at
// load time, so the value representation is decided once per stream.
func streamEvents(s *xdf.Stream, anchorStart, sampleRate float64) ([]model.Event, error) {
	if s.Series == nil {
		return nil, fmt.Errorf("stream has no samples")
	}
	if s.Series.Len() != len(s.TimeStamps) {
		return nil, fmt.Errorf("%d samples for %d timestamps", s.Series.Len(), len(s.TimeStamps))
	}

	value, err := valueFunc(s)
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(s.TimeStamps))
	for k, ts := range s.TimeStamps {
		v, err := value(k)
		if err != nil {
			return nil, err
		}
		events = append(events, model.Event{
			// Negative when the marker predates the anchor stream.
			Sample:    int(math.Round((ts - anchorStart) * sampleRate)),
			Duration:  1,
			Type:      eventType,
			Value:     v,
			Timestamp: ts,
		})
	}
	return events, nil
}

func valueFunc(s *xdf.Stream) (func(k int) (string, error), error) {
	switch series := s.Series.(type) {
	case xdf.LabelSeries:
		return func(k int) (string, error) {
			if len(series[k]) == 0 {
				return "", fmt.Errorf("marker %d has no value", k)
			}
			return series[k][0], nil
		}, nil
	case xdf.NumericSeries:
		return func(k int) (string, error) {
			if len(series[k]) == 0 {
				return "", fmt.Errorf("marker %d has no value", k)
			}
			return strconv.FormatFloat(series[k][0], 'g', -1, 64), nil
		}, nil
	default:
		return nil, fmt.Errorf("unsupported series type %T", s.Series)
	}
}
