package model

import "xdfflow/internal/xdf"

// Header describes one continuous stream selected for conversion. It is
// built once from the stream's metadata and not mutated afterwards.
type Header struct {
	SampleRate   float64
	ChannelCount int
	// Labels are namespaced as "<stream>_<channel>" so channels from
	// different streams stay distinct after concatenation.
	Labels []string
	Types  []string
	Units  []string

	SampleCount    int
	FirstTimestamp float64
	// SampleSpacing is the average interval between samples. NaN for a
	// stream with a single sample.
	SampleSpacing float64

	// Info points back to the stream metadata the header was built from.
	Info *xdf.StreamInfo
}

// ChannelBlock pairs a header with the stream's time axis and its
// channel-major sample matrix.
type ChannelBlock struct {
	Header *Header
	Labels []string
	// Times holds one timestamp per sample.
	Times []float64
	// Data is indexed [channel][sample].
	Data [][]float64
}

// UnifiedRecording is the single output block of a conversion: all
// selected streams resampled onto one time axis and concatenated along
// the channel dimension.
type UnifiedRecording struct {
	ID         string
	SampleRate float64
	Labels     []string
	Times      []float64
	// Data is indexed [channel][sample]; every channel has exactly
	// len(Times) samples.
	Data [][]float64
}

// Event is one discrete marker occurrence mapped onto the unified
// sample axis.
type Event struct {
	// Sample is the index into the unified time axis. Negative when the
	// marker precedes the anchor stream's start.
	Sample    int
	Offset    string
	Duration  int
	Type      string
	Value     string
	Timestamp float64
}
