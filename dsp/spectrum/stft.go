package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-featureviz/dsp/window"
)

// ErrEmptySignal is returned when a transform receives no samples.
var ErrEmptySignal = errors.New("spectrum: empty signal")

// Option configures an STFT.
type Option func(*stftConfig)

type stftConfig struct {
	window window.Type
	center bool
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *stftConfig) {
		c.window = t
	}
}

// WithCenter toggles centered, reflect-padded framing. Enabled by default.
func WithCenter(center bool) Option {
	return func(c *stftConfig) {
		c.center = center
	}
}

// STFT computes short-time Fourier transforms with a fixed frame layout.
//
// An STFT holds FFT work buffers and is not safe for concurrent use.
type STFT struct {
	fftSize int
	hop     int
	center  bool
	win     []float64
	plan    *algofft.Plan[complex128]
	frame   []float64
	in      []complex128
	out     []complex128
}

// NewSTFT creates a transform with frame length fftSize and hop length hop.
func NewSTFT(fftSize, hop int, opts ...Option) (*STFT, error) {
	if fftSize < 2 {
		return nil, fmt.Errorf("stft fft size must be >= 2: %d", fftSize)
	}
	if hop <= 0 {
		return nil, fmt.Errorf("stft hop length must be > 0: %d", hop)
	}

	cfg := stftConfig{window: window.TypeHann, center: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("stft init fft plan: %w", err)
	}

	return &STFT{
		fftSize: fftSize,
		hop:     hop,
		center:  cfg.center,
		win:     window.Generate(cfg.window, fftSize, window.WithPeriodic()),
		plan:    plan,
		frame:   make([]float64, fftSize),
		in:      make([]complex128, fftSize),
		out:     make([]complex128, fftSize),
	}, nil
}

// Bins returns the number of one-sided frequency bins per frame.
func (s *STFT) Bins() int { return s.fftSize/2 + 1 }

// FFTSize returns the frame length.
func (s *STFT) FFTSize() int { return s.fftSize }

// HopLength returns the frame advance in samples.
func (s *STFT) HopLength() int { return s.hop }

// Frames returns how many frames a signal of n samples produces, or 0 when
// the signal is too short for a single uncentered frame.
func (s *STFT) Frames(n int) int {
	if n <= 0 {
		return 0
	}
	if s.center {
		n += 2 * (s.fftSize / 2)
	}
	if n < s.fftSize {
		return 0
	}
	return 1 + (n-s.fftSize)/s.hop
}

// BinFrequency returns the center frequency of bin k in Hz.
func (s *STFT) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(s.fftSize)
}

// Magnitude returns |STFT| as a [bin][frame] matrix.
func (s *STFT) Magnitude(signal []float64) ([][]float64, error) {
	return s.transform(signal, MagnitudeInto)
}

// Power returns |STFT|^2 as a [bin][frame] matrix.
func (s *STFT) Power(signal []float64) ([][]float64, error) {
	return s.transform(signal, PowerInto)
}

func (s *STFT) transform(signal []float64, reduce func(dst []float64, in []complex128)) ([][]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	frames := s.Frames(len(signal))
	if frames == 0 {
		return nil, fmt.Errorf("stft signal of %d samples is shorter than fft size %d", len(signal), s.fftSize)
	}

	offset := 0
	if s.center {
		offset = s.fftSize / 2
	}

	out := make([][]float64, s.Bins())
	for k := range out {
		out[k] = make([]float64, frames)
	}

	col := make([]float64, s.Bins())
	for t := range frames {
		start := t*s.hop - offset
		for i := range s.frame {
			s.frame[i] = signal[reflectIndex(start+i, len(signal))]
		}
		if err := window.ApplyCoefficients(s.frame, s.frame, s.win); err != nil {
			return nil, err
		}

		for i, v := range s.frame {
			s.in[i] = complex(v, 0)
		}
		if err := s.plan.Forward(s.out, s.in); err != nil {
			return nil, fmt.Errorf("stft frame %d: %w", t, err)
		}
		reduce(col, s.out[:len(col)])
		for k, v := range col {
			out[k][t] = v
		}
	}

	return out, nil
}

// reflectIndex maps i onto [0, n) by mirroring about the end samples
// without repeating them, extending periodically for long pads.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	if i >= 0 && i < n {
		return i
	}

	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
