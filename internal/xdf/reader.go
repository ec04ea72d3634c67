package xdf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

const magic = "XDF:"

// maxChunkBytes guards against corrupt length fields.
const maxChunkBytes = 1 << 31

// Options control how a recording is loaded.
type Options struct {
	// SyncClocks applies the mean of each stream's recorded clock
	// offsets to its timestamps.
	SyncClocks bool
}

// ReadFile parses the XDF recording at path. The file is read eagerly
// and closed before returning.
func ReadFile(path string, opts Options) ([]*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening recording: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read parses an XDF recording from r. Streams are returned in the
// order their header chunks appear in the container.
func Read(r io.Reader, opts Options) ([]*Stream, error) {
	br := bufio.NewReader(r)

	hdr := make([]byte, 4)
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, fmt.Errorf("error reading magic: %w", err)
	}
	if string(hdr) != magic {
		return nil, fmt.Errorf("not an XDF file: bad magic %q", hdr)
	}

	p := &parser{streams: make(map[uint32]*Stream)}

	for {
		length, err := readVarLenInt(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading chunk length: %w", err)
		}
		if length < 2 || length > maxChunkBytes {
			return nil, fmt.Errorf("invalid chunk length %d", length)
		}

		chunk := make([]byte, length)
		if _, err := io.ReadFull(br, chunk); err != nil {
			return nil, fmt.Errorf("error reading chunk: %w", err)
		}
		tag := Tag(binary.LittleEndian.Uint16(chunk[:2]))
		content := chunk[2:]

		switch tag {
		case TagStreamHeader:
			err = p.parseStreamHeader(content)
		case TagSamples:
			err = p.parseSamples(content)
		case TagClockOffset:
			err = p.parseClockOffset(content)
		case TagStreamFooter:
			err = p.parseStreamFooter(content)
		case TagFileHeader, TagBoundary:
			// Carry no per-stream payload.
		default:
			// Unknown chunk types are skipped.
		}
		if err != nil {
			return nil, err
		}
	}

	return p.finalize(opts), nil
}

type parser struct {
	streams map[uint32]*Stream
	order   []uint32
}

// stream returns the record for id, creating it when the id has not
// been seen before.
func (p *parser) stream(id uint32) *Stream {
	st, ok := p.streams[id]
	if !ok {
		st = &Stream{Info: StreamInfo{ID: id}}
		p.streams[id] = st
		p.order = append(p.order, id)
	}
	return st
}

type xmlChannel struct {
	Label string `xml:"label"`
	Type  string `xml:"type"`
	Unit  string `xml:"unit"`
}

type xmlStreamHeader struct {
	XMLName      xml.Name `xml:"info"`
	Name         string   `xml:"name"`
	Type         string   `xml:"type"`
	ChannelCount int      `xml:"channel_count"`
	NominalRate  string   `xml:"nominal_srate"`
	Format       string   `xml:"channel_format"`
	Desc         struct {
		Channels struct {
			Channel []xmlChannel `xml:"channel"`
		} `xml:"channels"`
	} `xml:"desc"`
}

type xmlStreamFooter struct {
	XMLName        xml.Name `xml:"info"`
	FirstTimestamp string   `xml:"first_timestamp"`
	LastTimestamp  string   `xml:"last_timestamp"`
	SampleCount    int      `xml:"sample_count"`
}

func (p *parser) parseStreamHeader(content []byte) error {
	if len(content) < 4 {
		return fmt.Errorf("stream header chunk too short")
	}
	id := binary.LittleEndian.Uint32(content[:4])

	var h xmlStreamHeader
	if err := xml.Unmarshal(content[4:], &h); err != nil {
		return fmt.Errorf("error parsing stream %d header: %w", id, err)
	}

	st := p.stream(id)
	st.Info.Name = h.Name
	st.Info.Type = h.Type
	st.Info.ChannelCount = h.ChannelCount
	st.Info.Format = Format(h.Format)
	if h.NominalRate != "" {
		rate, err := strconv.ParseFloat(h.NominalRate, 64)
		if err != nil {
			return fmt.Errorf("error parsing stream %d nominal rate: %w", id, err)
		}
		st.Info.NominalRate = rate
	}
	for _, ch := range h.Desc.Channels.Channel {
		st.Info.Channels = append(st.Info.Channels, ChannelInfo{
			Label: ch.Label,
			Type:  ch.Type,
			Unit:  ch.Unit,
		})
	}

	if st.Info.Format == FormatString {
		st.Series = LabelSeries{}
	} else {
		st.Series = NumericSeries{}
	}
	return nil
}

func (p *parser) parseSamples(content []byte) error {
	cr := bytes.NewReader(content)

	var id uint32
	if err := binary.Read(cr, binary.LittleEndian, &id); err != nil {
		return fmt.Errorf("error reading samples stream id: %w", err)
	}
	st, ok := p.streams[id]
	if !ok || st.Series == nil {
		return fmt.Errorf("samples chunk for unknown stream %d", id)
	}

	count, err := readVarLenInt(cr)
	if err != nil {
		return fmt.Errorf("error reading sample count for stream %d: %w", id, err)
	}

	// Streams with a known rate deduce omitted timestamps from the
	// previous sample.
	tdiff := 0.0
	if st.Info.NominalRate > 0 {
		tdiff = 1 / st.Info.NominalRate
	}
	last := 0.0
	if n := len(st.TimeStamps); n > 0 {
		last = st.TimeStamps[n-1]
	}

	for i := 0; i < count; i++ {
		tsb, err := cr.ReadByte()
		if err != nil {
			return fmt.Errorf("error reading sample %d of stream %d: %w", i, id, err)
		}
		var ts float64
		switch tsb {
		case 8:
			if err := binary.Read(cr, binary.LittleEndian, &ts); err != nil {
				return fmt.Errorf("error reading timestamp of stream %d: %w", id, err)
			}
		case 0:
			ts = last + tdiff
		default:
			return fmt.Errorf("invalid timestamp width %d in stream %d", tsb, id)
		}
		st.TimeStamps = append(st.TimeStamps, ts)
		last = ts

		if err := readSampleValues(cr, st); err != nil {
			return fmt.Errorf("error reading values of stream %d: %w", id, err)
		}
	}
	return nil
}

func readSampleValues(cr *bytes.Reader, st *Stream) error {
	chans := st.Info.ChannelCount

	if series, ok := st.Series.(LabelSeries); ok {
		row := make([]string, chans)
		for c := 0; c < chans; c++ {
			n, err := readVarLenInt(cr)
			if err != nil {
				return err
			}
			buf := make([]byte, n)
			if _, err := io.ReadFull(cr, buf); err != nil {
				return err
			}
			row[c] = string(buf)
		}
		st.Series = append(series, row)
		return nil
	}

	size := st.Info.Format.size()
	if size == 0 {
		return fmt.Errorf("unsupported channel format %q", st.Info.Format)
	}
	buf := make([]byte, chans*size)
	if _, err := io.ReadFull(cr, buf); err != nil {
		return err
	}
	row := make([]float64, chans)
	for c := 0; c < chans; c++ {
		row[c] = decodeValue(st.Info.Format, buf[c*size:(c+1)*size])
	}
	st.Series = append(st.Series.(NumericSeries), row)
	return nil
}

func (p *parser) parseClockOffset(content []byte) error {
	if len(content) != 20 {
		return fmt.Errorf("invalid clock offset chunk size %d", len(content))
	}
	id := binary.LittleEndian.Uint32(content[:4])
	st := p.stream(id)
	st.Offsets = append(st.Offsets, ClockOffset{
		Time:   math.Float64frombits(binary.LittleEndian.Uint64(content[4:12])),
		Offset: math.Float64frombits(binary.LittleEndian.Uint64(content[12:20])),
	})
	return nil
}

func (p *parser) parseStreamFooter(content []byte) error {
	if len(content) < 4 {
		return fmt.Errorf("stream footer chunk too short")
	}
	id := binary.LittleEndian.Uint32(content[:4])

	var f xmlStreamFooter
	if err := xml.Unmarshal(content[4:], &f); err != nil {
		return fmt.Errorf("error parsing stream %d footer: %w", id, err)
	}

	st := p.stream(id)
	st.Info.FirstTimestamp = f.FirstTimestamp
	st.Info.LastTimestamp = f.LastTimestamp
	st.Info.SampleCount = f.SampleCount
	return nil
}

// finalize applies clock corrections and derives the measured fields
// after all chunks have been consumed.
func (p *parser) finalize(opts Options) []*Stream {
	out := make([]*Stream, 0, len(p.order))
	for _, id := range p.order {
		st := p.streams[id]

		if opts.SyncClocks && len(st.Offsets) > 0 {
			mean := 0.0
			for _, o := range st.Offsets {
				mean += o.Offset
			}
			mean /= float64(len(st.Offsets))
			for i := range st.TimeStamps {
				st.TimeStamps[i] += mean
			}
		}

		if n := len(st.TimeStamps); n > 0 {
			// Keep the authoritative start time consistent with the
			// possibly clock-corrected timestamps.
			st.Info.FirstTimestamp = strconv.FormatFloat(st.TimeStamps[0], 'f', -1, 64)
			if st.Info.SampleCount == 0 {
				st.Info.SampleCount = n
			}
			if st.Info.NominalRate > 0 && n > 1 {
				span := st.TimeStamps[n-1] - st.TimeStamps[0]
				if span > 0 {
					st.Info.EffectiveRate = float64(n-1) / span
				}
			}
		}

		out = append(out, st)
	}
	return out
}

// readVarLenInt reads an XDF variable-length integer: a one-byte field
// width (1, 4 or 8) followed by that many little-endian bytes.
func readVarLenInt(r io.ByteReader) (int, error) {
	nb, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch nb {
	case 1, 4, 8:
	default:
		return 0, fmt.Errorf("invalid length field width %d", nb)
	}
	var v uint64
	for i := 0; i < int(nb); i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v |= uint64(b) << (8 * i)
	}
	if v > maxChunkBytes {
		return 0, fmt.Errorf("length %d out of range", v)
	}
	return int(v), nil
}

func decodeValue(f Format, b []byte) float64 {
	switch f {
	case FormatFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case FormatDouble64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	case FormatInt8:
		return float64(int8(b[0]))
	case FormatInt16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case FormatInt32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case FormatInt64:
		return float64(int64(binary.LittleEndian.Uint64(b)))
	}
	return 0
}
