package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned for files that are not valid PCM or float WAV.
	ErrDecode = errors.New("audio: decode failed")
	// ErrEmptyAudio is returned when a file decodes to zero samples.
	ErrEmptyAudio = errors.New("audio: no samples")
)

// LoadError records the file a load failed for.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("audio: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
