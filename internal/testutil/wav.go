package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes samples in [-1, 1] as an integer PCM WAV file. For
// channels > 1 the same signal is written to every channel.
func WriteWAV(t *testing.T, path string, samples []float64, sampleRate, bitDepth, channels int) {
	t.Helper()
	if err := EncodeWAV(path, samples, sampleRate, bitDepth, channels); err != nil {
		t.Fatalf("write wav %s: %v", path, err)
	}
}

// EncodeWAV is the error-returning form of WriteWAV.
func EncodeWAV(path string, samples []float64, sampleRate, bitDepth, channels int) error {
	if channels <= 0 {
		channels = 1
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	full := float64(int64(1)<<(bitDepth-1) - 1)
	data := make([]int, 0, len(samples)*channels)
	for _, s := range samples {
		v := int(math.Round(math.Max(-1, math.Min(1, s)) * full))
		if bitDepth == 8 {
			// 8-bit WAV is unsigned.
			v += 128
		}
		for range channels {
			data = append(data, v)
		}
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize: %w", err)
	}
	return f.Close()
}

// WriteDataset creates perLabel sine files for each label in dir, named
// "<index>-<variant>-<label>.wav", and returns their paths by label.
func WriteDataset(t *testing.T, dir string, labels []string, perLabel, sampleRate int, seconds float64) map[string][]string {
	t.Helper()

	n := int(float64(sampleRate) * seconds)
	out := make(map[string][]string, len(labels))
	for li, label := range labels {
		for v := range perLabel {
			freq := 110 * float64(li+1+v)
			path := filepath.Join(dir, fmt.Sprintf("%d-%d-%s.wav", li, v, label))
			WriteWAV(t, path, DeterministicSine(freq, float64(sampleRate), 0.5, n), sampleRate, 16, 1)
			out[label] = append(out[label], path)
		}
	}
	return out
}

// WAV format tags used by RawWAV.
const (
	FormatPCM        = 1
	FormatFloat      = 3
	FormatExtensible = 0xFFFE
)

// extensibleGUIDTail follows the two-byte format code in a
// KSDATAFORMAT_SUBTYPE GUID.
var extensibleGUIDTail = [14]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// RawWAV is a hand-assembled RIFF/WAVE file. It covers headers the go-audio
// encoder does not write: IEEE float data and WAVE_FORMAT_EXTENSIBLE.
type RawWAV struct {
	Format uint16
	// SubFormat is the GUID format code when Format is FormatExtensible.
	SubFormat  uint16
	Channels   int
	SampleRate int
	BitDepth   int
	Data       []byte
}

// Bytes encodes the file.
func (w RawWAV) Bytes() []byte {
	fmtSize := 16
	if w.Format == FormatExtensible {
		fmtSize = 40
	}
	pad := len(w.Data) % 2
	blockAlign := w.Channels * w.BitDepth / 8

	var b bytes.Buffer
	le := func(v any) { _ = binary.Write(&b, binary.LittleEndian, v) }

	b.WriteString("RIFF")
	le(uint32(4 + 8 + fmtSize + 8 + len(w.Data) + pad))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	le(uint32(fmtSize))
	le(w.Format)
	le(uint16(w.Channels))
	le(uint32(w.SampleRate))
	le(uint32(w.SampleRate * blockAlign))
	le(uint16(blockAlign))
	le(uint16(w.BitDepth))
	if w.Format == FormatExtensible {
		le(uint16(22))
		le(uint16(w.BitDepth))
		le(uint32(0))
		le(w.SubFormat)
		b.Write(extensibleGUIDTail[:])
	}

	b.WriteString("data")
	le(uint32(len(w.Data)))
	b.Write(w.Data)
	if pad == 1 {
		b.WriteByte(0)
	}
	return b.Bytes()
}

// WriteRawWAV writes w to path.
func WriteRawWAV(t *testing.T, path string, w RawWAV) {
	t.Helper()
	if err := os.WriteFile(path, w.Bytes(), 0o644); err != nil {
		t.Fatalf("write raw wav %s: %v", path, err)
	}
}

// Float32Data packs samples as little-endian IEEE float32.
func Float32Data(samples []float64) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(s)))
	}
	return out
}

// PCMData packs integer samples little-endian at bitDepth bits. 8-bit values
// are written as given, so callers pass the unsigned form.
func PCMData(values []int, bitDepth int) []byte {
	width := bitDepth / 8
	out := make([]byte, 0, width*len(values))
	for _, v := range values {
		u := uint32(int32(v))
		for i := range width {
			out = append(out, byte(u>>(8*i)))
		}
	}
	return out
}
