package resample

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// ParseQuality resolves "fast", "balanced" or "best".
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fast":
		return QualityFast, nil
	case "", "balanced":
		return QualityBalanced, nil
	case "best":
		return QualityBest, nil
	default:
		return QualityBalanced, fmt.Errorf("resample: unknown quality %q", s)
	}
}

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

// Option configures the resampler.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

func defaultConfig() config {
	return config{quality: QualityBalanced}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	c.tapsPerPhase = p.TapsPerPhase
	c.cutoffScale = p.CutoffScale
	c.kaiserBeta = p.KaiserBeta
	return c
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.finalized()
}

// Resampler performs rational sample-rate conversion using a polyphase FIR.
// A Resampler holds no per-call state and may be shared.
type Resampler struct {
	up   int
	down int

	quality Quality

	taps   []float64
	phases [][]float64
	delay  int
}

// NewRational creates a resampler for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := applyOptions(opts)

	r := &Resampler{up: up, down: down, quality: cfg.quality}
	if up == down {
		return r, nil
	}

	taps, phases, err := designPolyphaseFIR(up, down, cfg)
	if err != nil {
		return nil, err
	}

	r.taps = taps
	r.phases = phases
	r.delay = (len(taps) - 1) / 2

	return r, nil
}

// Resample converts input recorded at inRate to outRate. Integer rates give
// an exact ratio.
func Resample(input []float64, inRate, outRate int, opts ...Option) ([]float64, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}

	r, err := NewRational(outRate, inRate, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input), nil
}

// OutputLen returns ceil(n*up/down), the length Process produces.
func (r *Resampler) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}
	return int((int64(n)*int64(r.up) + int64(r.down) - 1) / int64(r.down))
}

// Process converts a whole signal. Output sample m is aligned with input
// time m*down/up; samples outside the input are treated as zero.
func (r *Resampler) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	if r.up == r.down {
		return append([]float64(nil), input...)
	}

	out := make([]float64, r.OutputLen(len(input)))
	for m := range out {
		j := m*r.down + r.delay
		taps := r.phases[j%r.up]
		base := j / r.up

		var y float64
		for l, c := range taps {
			idx := base - l
			if idx < 0 {
				break
			}
			if idx >= len(input) {
				continue
			}
			y += c * input[idx]
		}
		out[m] = y
	}

	return out
}

// Ratio returns reduced up/down conversion factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the configured quality mode.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// Prototype returns a copy of the underlying prototype FIR taps.
func (r *Resampler) Prototype() []float64 {
	out := make([]float64, len(r.taps))
	copy(out, r.taps)

	return out
}
