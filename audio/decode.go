package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE
)

// extensibleFmt is the fmt chunk layout of WAVE_FORMAT_EXTENSIBLE files.
type extensibleFmt struct {
	Base        [16]byte
	ExtSize     uint16
	ValidBits   uint16
	ChannelMask uint32
	SubFormat   [16]byte
}

type decoded struct {
	samples    []float64
	sampleRate int
	channels   int
}

// decodeWAV reads r fully and downmixes it to mono by averaging channels.
func decodeWAV(r io.ReadSeeker) (*decoded, error) {
	dec := wav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav file", ErrDecode)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	format := int(dec.WavAudioFormat)

	if format == formatExtensible {
		// The decoder skips the fmt extension, so the sub-format GUID is
		// read separately and decoding restarts from the top.
		sub, err := extensibleSubFormat(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		dec = wav.NewDecoder(r)
		dec.ReadInfo()
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		format = sub
	}

	var toFloat func(int) float64
	switch {
	case format == formatFloat && bitDepth == 32:
		toFloat = func(v int) float64 { return float64(math.Float32frombits(uint32(int32(v)))) }
	case format == formatPCM && bitDepth == 8:
		toFloat = func(v int) float64 { return float64(v-128) / 128 }
	case format == formatPCM && (bitDepth == 16 || bitDepth == 24 || bitDepth == 32):
		scale := float64(int64(1) << (bitDepth - 1))
		toFloat = func(v int) float64 { return float64(v) / scale }
	default:
		return nil, fmt.Errorf("%w: unsupported format %d with %d bits", ErrDecode, format, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: invalid channel count %d", ErrDecode, channels)
	}

	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	inv := 1 / float64(channels)
	for i := range out {
		var sum float64
		for c := range channels {
			sum += toFloat(buf.Data[i*channels+c])
		}
		out[i] = sum * inv
	}

	return &decoded{samples: out, sampleRate: int(dec.SampleRate), channels: channels}, nil
}

// extensibleSubFormat returns the format code carried in the first two bytes
// of the sub-format GUID of an extensible fmt chunk.
func extensibleSubFormat(r io.ReadSeeker) (int, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("fmt chunk not found: %w", err)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}
		if ch.Size < binary.Size(extensibleFmt{}) {
			return 0, fmt.Errorf("extensible fmt chunk too short: %d bytes", ch.Size)
		}

		var ext extensibleFmt
		if err := ch.ReadLE(&ext); err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint16(ext.SubFormat[:2])), nil
	}
}
