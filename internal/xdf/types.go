package xdf

// Chunk tags defined by the XDF container format.
type Tag uint16

const (
	TagFileHeader   Tag = 1
	TagStreamHeader Tag = 2
	TagSamples      Tag = 3
	TagClockOffset  Tag = 4
	TagBoundary     Tag = 5
	TagStreamFooter Tag = 6
)

// Format identifies the on-disk encoding of a stream's sample values.
type Format string

const (
	FormatFloat32  Format = "float32"
	FormatDouble64 Format = "double64"
	FormatInt8     Format = "int8"
	FormatInt16    Format = "int16"
	FormatInt32    Format = "int32"
	FormatInt64    Format = "int64"
	FormatString   Format = "string"
)

// size returns the number of bytes per value, or 0 for variable-length
// string values.
func (f Format) size() int {
	switch f {
	case FormatInt8:
		return 1
	case FormatInt16:
		return 2
	case FormatFloat32, FormatInt32:
		return 4
	case FormatDouble64, FormatInt64:
		return 8
	default:
		return 0
	}
}

// ChannelInfo describes a single channel of a stream.
type ChannelInfo struct {
	Label string
	Type  string
	Unit  string
}

// StreamInfo holds the metadata of one stream, merged from the stream's
// header and footer chunks.
type StreamInfo struct {
	ID           uint32
	Name         string
	Type         string
	ChannelCount int
	NominalRate  float64
	Format       Format
	Channels     []ChannelInfo

	// Footer fields. FirstTimestamp and LastTimestamp are kept as the
	// raw strings found in the container.
	FirstTimestamp string
	LastTimestamp  string
	SampleCount    int

	// EffectiveRate is the sampling rate measured from the stream's own
	// timestamps. Zero for irregularly sampled streams.
	EffectiveRate float64
}

// ClockOffset is a single clock synchronization measurement.
type ClockOffset struct {
	Time   float64
	Offset float64
}

// Series holds a stream's sample values. The concrete type is decided
// once while loading: NumericSeries for the numeric channel formats,
// LabelSeries for string-formatted streams.
type Series interface {
	Len() int
}

// NumericSeries holds one row of channel values per sample.
type NumericSeries [][]float64

func (s NumericSeries) Len() int { return len(s) }

// LabelSeries holds one row of string values per sample.
type LabelSeries [][]string

func (s LabelSeries) Len() int { return len(s) }

// Stream is one fully loaded stream of an XDF recording.
type Stream struct {
	Info       StreamInfo
	TimeStamps []float64
	Series     Series
	Offsets    []ClockOffset
}

// Continuous reports whether the stream carries a measured effective
// sampling rate.
func (s *Stream) Continuous() bool {
	return s.Info.EffectiveRate > 0
}
