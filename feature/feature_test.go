package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-featureviz/audio"
	"github.com/cwbudde/algo-featureviz/dsp/core"
	"github.com/cwbudde/algo-featureviz/internal/testutil"
)

func newExtractor(t *testing.T, opts ...core.AnalysisOption) *Extractor {
	t.Helper()
	e, err := NewExtractor(opts...)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	return e
}

func sineBuffer(freq float64, n int) *audio.Buffer {
	return &audio.Buffer{Samples: testutil.DeterministicSine(freq, 22050, 0.5, n), SampleRate: 22050}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{in: "0", want: ModeNone},
		{in: "1", want: ModeWave},
		{in: "2", want: ModeLinearSpectrogram},
		{in: "3", want: ModeLogSpectrogram},
		{in: "4", want: ModeMelSpectrogram},
		{in: "5", want: ModeMFCC},
		{in: "6", want: ModeCombined},
		{in: "MFCC", want: ModeMFCC},
		{in: " mel ", want: ModeMelSpectrogram},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}

	for _, bad := range []string{"7", "-1", "", "spectrogram"} {
		if _, err := ParseMode(bad); !errors.Is(err, ErrUnknownMode) {
			t.Fatalf("ParseMode(%q) error = %v, want ErrUnknownMode", bad, err)
		}
	}
}

func TestModeMetadata(t *testing.T) {
	if ModeWave.Title() != "Wave plot" || ModeMFCC.Title() != "MFCCs" {
		t.Fatalf("titles = %q, %q", ModeWave.Title(), ModeMFCC.Title())
	}
	if len(PlotModes()) != 5 || PlotModes()[0] != ModeWave || PlotModes()[4] != ModeMFCC {
		t.Fatalf("PlotModes() = %v", PlotModes())
	}
	if ModeCombined.Plottable() || ModeNone.Plottable() || !ModeLogSpectrogram.Plottable() {
		t.Fatal("Plottable() mismatch")
	}
	if Mode(9).Valid() || Mode(9).String() != "Mode(9)" {
		t.Fatalf("invalid mode string = %q", Mode(9).String())
	}
}

func TestWavePassesSamplesThrough(t *testing.T) {
	buf := sineBuffer(440, 1000)
	arr, err := newExtractor(t).Extract(buf, ModeWave)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(arr.Wave) != 1000 || &arr.Wave[0] != &buf.Samples[0] || arr.Data != nil {
		t.Fatal("wave array should reference the buffer samples")
	}
}

func TestLinearEqualsLog(t *testing.T) {
	e := newExtractor(t)
	buf := &audio.Buffer{Samples: testutil.Chirp(100, 8000, 22050, 0.5, 22050), SampleRate: 22050}

	lin, err := e.Extract(buf, ModeLinearSpectrogram)
	if err != nil {
		t.Fatalf("Extract(linear) error = %v", err)
	}
	lg, err := e.Extract(buf, ModeLogSpectrogram)
	if err != nil {
		t.Fatalf("Extract(log) error = %v", err)
	}
	testutil.RequireMatrixNearlyEqual(t, lin.Data, lg.Data, 0)
}

func TestSpectrogramShapeAndPeak(t *testing.T) {
	arr, err := newExtractor(t).Extract(sineBuffer(1000, 22050), ModeLinearSpectrogram)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if arr.Rows() != 1025 || arr.Frames() != 1+22050/512 {
		t.Fatalf("shape = %dx%d", arr.Rows(), arr.Frames())
	}

	lo, hi := arr.Range()
	if hi != 0 {
		t.Fatalf("peak = %v dB, want 0", hi)
	}
	if lo < -80-1e-9 {
		t.Fatalf("floor = %v dB, want >= -80", lo)
	}

	// The strongest bin in a middle frame sits at 1 kHz.
	frame := arr.Frames() / 2
	best := 0
	for k := range arr.Data {
		if arr.Data[k][frame] > arr.Data[best][frame] {
			best = k
		}
	}
	if hz := float64(best) * 22050 / 2048; math.Abs(hz-1000) > 22050.0/2048 {
		t.Fatalf("peak bin %d = %.1f Hz, want ~1000", best, hz)
	}
}

func TestMelPeakIsZeroDB(t *testing.T) {
	arr, err := newExtractor(t).Extract(sineBuffer(2000, 11025), ModeMelSpectrogram)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if arr.Rows() != 128 {
		t.Fatalf("bands = %d, want 128", arr.Rows())
	}
	if _, hi := arr.Range(); hi != 0 {
		t.Fatalf("peak = %v dB, want 0", hi)
	}
	if arr.FMax != 11025 {
		t.Fatalf("fmax = %v, want 11025", arr.FMax)
	}
}

func TestMFCCRowCountIndependentOfLength(t *testing.T) {
	e := newExtractor(t)
	for _, n := range []int{100, 2048, 22050, 50000} {
		arr, err := e.Extract(&audio.Buffer{Samples: testutil.DeterministicNoise(int64(n), 0.3, n), SampleRate: 22050}, ModeMFCC)
		if err != nil {
			t.Fatalf("n=%d: Extract() error = %v", n, err)
		}
		if arr.Rows() != 80 {
			t.Fatalf("n=%d: rows = %d, want 80", n, arr.Rows())
		}
		if arr.Frames() != 1+n/512 {
			t.Fatalf("n=%d: frames = %d, want %d", n, arr.Frames(), 1+n/512)
		}
		for _, row := range arr.Data {
			testutil.RequireFinite(t, row)
		}
	}

	small := newExtractor(t, core.WithMFCC(13))
	arr, err := small.Extract(sineBuffer(440, 4096), ModeMFCC)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if arr.Rows() != 13 {
		t.Fatalf("rows = %d, want 13", arr.Rows())
	}
}

func TestSilenceIsZeroDB(t *testing.T) {
	buf := &audio.Buffer{Samples: make([]float64, 4096), SampleRate: 22050}
	e := newExtractor(t)
	for _, mode := range []Mode{ModeLinearSpectrogram, ModeMelSpectrogram} {
		arr, err := e.Extract(buf, mode)
		if err != nil {
			t.Fatalf("%s: Extract() error = %v", mode, err)
		}
		lo, hi := arr.Range()
		if lo != 0 || hi != 0 {
			t.Fatalf("%s: range = [%v, %v], want all 0 dB", mode, lo, hi)
		}
	}
}

func TestExtractErrors(t *testing.T) {
	e := newExtractor(t)
	if _, err := e.Extract(nil, ModeWave); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("nil buffer error = %v", err)
	}
	if _, err := e.Extract(&audio.Buffer{SampleRate: 22050}, ModeMFCC); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("empty buffer error = %v", err)
	}
	for _, m := range []Mode{ModeCombined, ModeNone} {
		if _, err := e.Extract(sineBuffer(440, 100), m); !errors.Is(err, ErrNotExtractable) {
			t.Fatalf("%s error = %v, want ErrNotExtractable", m, err)
		}
	}
	if _, err := e.Extract(sineBuffer(440, 100), Mode(42)); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("Mode(42) error = %v, want ErrUnknownMode", err)
	}
}

func TestNewExtractorRejectsInvalidConfig(t *testing.T) {
	if _, err := NewExtractor(core.WithMels(20), core.WithMFCC(40)); err == nil {
		t.Fatal("expected error when mfcc count exceeds mel bands")
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := newExtractor(t)
	buf := &audio.Buffer{Samples: testutil.DeterministicNoise(5, 0.5, 8000), SampleRate: 22050}
	a, _ := e.Extract(buf, ModeMFCC)
	b, _ := e.Extract(buf, ModeMFCC)
	testutil.RequireMatrixNearlyEqual(t, a.Data, b.Data, 0)
}
