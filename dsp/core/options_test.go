package core

import "testing"

func TestApplyAnalysisOptions(t *testing.T) {
	cfg := ApplyAnalysisOptions(WithSampleRate(16000), WithFFTSize(1024), WithHopLength(256), WithMFCC(20))
	if cfg.SampleRate != 16000 {
		t.Fatalf("sample rate = %d, want 16000", cfg.SampleRate)
	}
	if cfg.FFTSize != 1024 || cfg.HopLength != 256 {
		t.Fatalf("frame = %d/%d, want 1024/256", cfg.FFTSize, cfg.HopLength)
	}
	if cfg.NumMFCC != 20 {
		t.Fatalf("mfcc = %d, want 20", cfg.NumMFCC)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyAnalysisOptions(WithSampleRate(0), WithFFTSize(-1), WithMels(0), WithTopDB(-3), nil)
	def := DefaultAnalysisConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestMaxFrequency(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	if got := cfg.MaxFrequency(); got != 11025 {
		t.Fatalf("MaxFrequency() = %v, want 11025", got)
	}
	cfg = ApplyAnalysisOptions(WithFrequencyRange(20, 8000))
	if got := cfg.MaxFrequency(); got != 8000 {
		t.Fatalf("MaxFrequency() = %v, want 8000", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  AnalysisConfig
	}{
		{name: "mfcc above mels", cfg: ApplyAnalysisOptions(WithMels(40), WithMFCC(80))},
		{name: "fmax above nyquist", cfg: ApplyAnalysisOptions(WithFrequencyRange(0, 20000))},
		{name: "tiny fft", cfg: AnalysisConfig{SampleRate: 8000, FFTSize: 1, HopLength: 1, NumMels: 4, NumMFCC: 2}},
		{name: "zero hop", cfg: AnalysisConfig{SampleRate: 8000, FFTSize: 64, NumMels: 4, NumMFCC: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
