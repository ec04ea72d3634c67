// Package converter turns a multi-stream XDF recording into one
// unified multichannel time series plus a flat event list.
package converter

import (
	"time"

	"github.com/google/uuid"

	"xdfflow/config"
	"xdfflow/internal/model"
	"xdfflow/internal/processor"
	"xdfflow/internal/xdf"
	"xdfflow/logger"
)

// Result is the complete output of one conversion.
type Result struct {
	Recording *model.UnifiedRecording
	Events    []model.Event
}

type Converter struct {
	cfg *config.Config
	log *logger.Log
}

func New(cfg *config.Config) *Converter {
	return &Converter{
		cfg: cfg,
		log: logger.GetLogger(),
	}
}

// ConvertFile loads the recording at path and converts it. The file is
// released as soon as parsing finishes.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	log := c.log.WithComponent("converter").WithFields(logger.Fields{"path": path})

	start := time.Now()
	streams, err := xdf.ReadFile(path, xdf.Options{SyncClocks: c.cfg.Converter.SyncClocks})
	if err != nil {
		log.WithError(err).Error("failed to load recording")
		return nil, err
	}
	logger.LogPerformanceEntry(log, "converter", "load_recording", time.Since(start), logger.Fields{
		"streams": len(streams),
	})

	return c.Convert(streams)
}

// Convert runs the pipeline over already loaded streams: classify,
// resolve the anchor start time, select, build blocks, unify, extract
// events. Fatal errors abort before any output is produced; marker
// stream failures never do.
func (c *Converter) Convert(streams []*xdf.Stream) (*Result, error) {
	log := c.log.WithComponent("converter")
	start := time.Now()

	continuous := processor.Classify(streams)

	anchorStart, err := processor.EarliestStart(streams, c.cfg.Converter.AnchorType)
	if err != nil {
		log.WithError(err).Error("cannot anchor event sample indices")
		return nil, err
	}

	mask, err := processor.Select(continuous, c.cfg.Converter.StreamIndices)
	if err != nil {
		log.WithError(err).Error("stream selection failed")
		return nil, err
	}

	var blocks []*model.ChannelBlock
	for i, s := range streams {
		if !mask[i] {
			continue
		}
		block, err := processor.BuildBlock(s)
		if err != nil {
			log.WithError(err).Error("failed to build channel block")
			return nil, err
		}
		blocks = append(blocks, block)
	}

	recording, err := processor.Unify(blocks)
	if err != nil {
		log.WithError(err).Error("failed to unify streams")
		return nil, err
	}
	recording.ID = uuid.New().String()

	events := processor.ExtractEvents(streams, c.cfg.Converter.MarkerType, anchorStart, recording.SampleRate)

	log.WithFields(logger.Fields{
		"conversion_id": recording.ID,
		"channels":      len(recording.Labels),
		"samples":       len(recording.Times),
		"sample_rate":   recording.SampleRate,
		"events":        len(events),
		"duration_ms":   float64(time.Since(start).Nanoseconds()) / 1e6,
	}).Info("conversion completed")

	return &Result{Recording: recording, Events: events}, nil
}
