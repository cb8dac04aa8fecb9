package audio

import "time"

// Buffer is decoded mono audio.
type Buffer struct {
	Path       string
	Samples    []float64
	SampleRate int
	// SourceRate and Channels describe the file before downmix and
	// resampling.
	SourceRate int
	Channels   int
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Samples)
}

// Duration returns the playback length at SampleRate.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}
