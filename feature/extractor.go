package feature

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-featureviz/audio"
	"github.com/cwbudde/algo-featureviz/dsp/core"
	"github.com/cwbudde/algo-featureviz/dsp/mel"
	"github.com/cwbudde/algo-featureviz/dsp/spectrum"
)

var (
	// ErrEmptySignal is returned for nil or zero-length buffers.
	ErrEmptySignal = errors.New("feature: empty signal")
	// ErrNotExtractable is returned for modes that describe a page layout
	// rather than a single feature.
	ErrNotExtractable = errors.New("feature: mode has no feature array")
)

type melPlan struct {
	bank *mel.Filterbank
	dct  *mel.DCT
}

// Extractor computes feature arrays. It is safe for concurrent use.
type Extractor struct {
	cfg core.AnalysisConfig

	mu    sync.Mutex
	plans map[int]*melPlan
}

// NewExtractor validates the analysis settings and returns an Extractor.
func NewExtractor(opts ...core.AnalysisOption) (*Extractor, error) {
	cfg := core.ApplyAnalysisOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}
	return &Extractor{cfg: cfg, plans: make(map[int]*melPlan)}, nil
}

// Config returns the analysis settings.
func (e *Extractor) Config() core.AnalysisConfig { return e.cfg }

// Extract computes the feature for mode. Spectrogram and mel values are dB
// relative to the array maximum, so their peak is 0 dB.
func (e *Extractor) Extract(buf *audio.Buffer, mode Mode) (*Array, error) {
	if buf == nil || len(buf.Samples) == 0 {
		return nil, ErrEmptySignal
	}

	sr := buf.SampleRate
	if sr <= 0 {
		sr = e.cfg.SampleRate
	}
	arr := &Array{
		Mode:       mode,
		SampleRate: sr,
		HopLength:  e.cfg.HopLength,
		FFTSize:    e.cfg.FFTSize,
	}

	switch mode {
	case ModeWave:
		arr.Wave = buf.Samples
		return arr, nil

	case ModeLinearSpectrogram, ModeLogSpectrogram:
		mag, err := e.stft(buf.Samples, false)
		if err != nil {
			return nil, err
		}
		arr.Data = core.AmplitudeToDB(mag, core.RefMax, core.AmplitudeFloor, e.cfg.TopDB)
		return arr, nil

	case ModeMelSpectrogram, ModeMFCC:
		plan, err := e.plan(sr)
		if err != nil {
			return nil, err
		}
		power, err := e.stft(buf.Samples, true)
		if err != nil {
			return nil, err
		}
		melPower, err := plan.bank.Apply(power)
		if err != nil {
			return nil, fmt.Errorf("feature: mel projection: %w", err)
		}
		arr.FMin, arr.FMax = e.cfg.FMin, e.fmax(sr)

		if mode == ModeMelSpectrogram {
			arr.Data = core.PowerToDB(melPower, core.RefMax, core.PowerFloor, e.cfg.TopDB)
			return arr, nil
		}
		db := core.PowerToDB(melPower, core.RefValue(1), core.PowerFloor, e.cfg.TopDB)
		arr.Data, err = plan.dct.Apply(db)
		if err != nil {
			return nil, fmt.Errorf("feature: dct: %w", err)
		}
		return arr, nil

	case ModeNone, ModeCombined:
		return nil, fmt.Errorf("%w: %s", ErrNotExtractable, mode)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

func (e *Extractor) stft(samples []float64, power bool) ([][]float64, error) {
	s, err := spectrum.NewSTFT(e.cfg.FFTSize, e.cfg.HopLength, spectrum.WithCenter(e.cfg.Center))
	if err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}

	var out [][]float64
	if power {
		out, err = s.Power(samples)
	} else {
		out, err = s.Magnitude(samples)
	}
	if errors.Is(err, spectrum.ErrEmptySignal) {
		return nil, ErrEmptySignal
	}
	if err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}
	return out, nil
}

func (e *Extractor) fmax(sr int) float64 {
	if e.cfg.FMax > 0 && e.cfg.FMax <= float64(sr)/2 {
		return e.cfg.FMax
	}
	return float64(sr) / 2
}

// plan returns the filterbank and DCT for sample rate sr, building them on
// first use.
func (e *Extractor) plan(sr int) (*melPlan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.plans[sr]; ok {
		return p, nil
	}

	bank, err := mel.NewFilterbank(sr, e.cfg.FFTSize, e.cfg.NumMels, e.cfg.FMin, e.fmax(sr))
	if err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}
	dct, err := mel.NewDCT(e.cfg.NumMels, e.cfg.NumMFCC)
	if err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}

	p := &melPlan{bank: bank, dct: dct}
	e.plans[sr] = p
	return p, nil
}
