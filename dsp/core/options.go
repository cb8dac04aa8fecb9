package core

import "fmt"

// AnalysisConfig defines the frame and filterbank settings shared by the
// spectral feature extractors.
type AnalysisConfig struct {
	SampleRate int
	FFTSize    int
	HopLength  int
	NumMels    int
	NumMFCC    int
	FMin       float64
	// FMax of 0 selects the Nyquist frequency.
	FMax  float64
	TopDB float64
	// Center pads the signal by FFTSize/2 on both sides (reflect mode) so
	// that frame t is centered on sample t*HopLength.
	Center bool
}

// AnalysisOption mutates an AnalysisConfig.
type AnalysisOption func(*AnalysisConfig)

// DefaultAnalysisConfig returns the settings the dashboard renders with.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleRate: 22050,
		FFTSize:    2048,
		HopLength:  512,
		NumMels:    128,
		NumMFCC:    80,
		TopDB:      80,
		Center:     true,
	}
}

// WithSampleRate sets the analysis sample rate in Hz.
func WithSampleRate(sampleRate int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFFTSize sets the STFT frame length.
func WithFFTSize(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.FFTSize = n
		}
	}
}

// WithHopLength sets the distance between successive frames in samples.
func WithHopLength(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.HopLength = n
		}
	}
}

// WithMels sets the number of mel bands.
func WithMels(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.NumMels = n
		}
	}
}

// WithMFCC sets the number of cepstral coefficients kept.
func WithMFCC(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.NumMFCC = n
		}
	}
}

// WithFrequencyRange limits the mel filterbank to [fmin, fmax].
// A zero fmax keeps the Nyquist default.
func WithFrequencyRange(fmin, fmax float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if fmin >= 0 && (fmax == 0 || fmax > fmin) {
			cfg.FMin = fmin
			cfg.FMax = fmax
		}
	}
}

// WithTopDB sets the dynamic range floor below the peak. Zero disables it.
func WithTopDB(db float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if db >= 0 {
			cfg.TopDB = db
		}
	}
}

// WithCenter toggles centered framing.
func WithCenter(center bool) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		cfg.Center = center
	}
}

// ApplyAnalysisOptions applies zero or more options to the default config.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// MaxFrequency returns FMax, or the Nyquist frequency when FMax is unset.
func (c AnalysisConfig) MaxFrequency() float64 {
	if c.FMax > 0 {
		return c.FMax
	}
	return float64(c.SampleRate) / 2
}

// Validate reports settings that cannot produce a feature matrix.
func (c AnalysisConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("analysis sample rate must be > 0: %d", c.SampleRate)
	}
	if c.FFTSize < 2 {
		return fmt.Errorf("analysis fft size must be >= 2: %d", c.FFTSize)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("analysis hop length must be > 0: %d", c.HopLength)
	}
	if c.NumMels <= 0 {
		return fmt.Errorf("analysis mel count must be > 0: %d", c.NumMels)
	}
	if c.NumMFCC <= 0 || c.NumMFCC > c.NumMels {
		return fmt.Errorf("analysis mfcc count must be in [1,%d]: %d", c.NumMels, c.NumMFCC)
	}
	if c.MaxFrequency() > float64(c.SampleRate)/2 {
		return fmt.Errorf("analysis fmax %.1f exceeds nyquist %.1f", c.MaxFrequency(), float64(c.SampleRate)/2)
	}
	if c.FMin >= c.MaxFrequency() {
		return fmt.Errorf("analysis fmin %.1f must be below fmax %.1f", c.FMin, c.MaxFrequency())
	}
	return nil
}
