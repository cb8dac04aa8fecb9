package feature

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognized selectors.
var ErrUnknownMode = errors.New("feature: unknown visualization mode")

// Mode selects what the dashboard shows for each sample.
type Mode int

const (
	ModeNone Mode = iota
	ModeWave
	ModeLinearSpectrogram
	ModeLogSpectrogram
	ModeMelSpectrogram
	ModeMFCC
	ModeCombined
)

var modeNames = [...]string{
	ModeNone:              "none",
	ModeWave:              "wave",
	ModeLinearSpectrogram: "linear",
	ModeLogSpectrogram:    "log",
	ModeMelSpectrogram:    "mel",
	ModeMFCC:              "mfcc",
	ModeCombined:          "combined",
}

var modeTitles = [...]string{
	ModeNone:              "Audio feature visualization",
	ModeWave:              "Wave plot",
	ModeLinearSpectrogram: "Linear-scaled Spectrogram",
	ModeLogSpectrogram:    "Log-scaled Spectrogram",
	ModeMelSpectrogram:    "Mel-scaled Spectrogram",
	ModeMFCC:              "MFCCs",
	ModeCombined:          "Combined",
}

var modeMenu = [...]string{
	ModeNone:              "Overview",
	ModeWave:              "Waveplots",
	ModeLinearSpectrogram: "Linear-scaled spectrograms",
	ModeLogSpectrogram:    "Log-scaled spectrograms",
	ModeMelSpectrogram:    "Mel-scaled spectrograms",
	ModeMFCC:              "MFCCs",
	ModeCombined:          "Combined",
}

// Modes returns every mode in selector order.
func Modes() []Mode {
	return []Mode{ModeNone, ModeWave, ModeLinearSpectrogram, ModeLogSpectrogram, ModeMelSpectrogram, ModeMFCC, ModeCombined}
}

// PlotModes returns the modes that produce a single figure, in the column
// order of the combined view.
func PlotModes() []Mode {
	return []Mode{ModeWave, ModeLinearSpectrogram, ModeLogSpectrogram, ModeMelSpectrogram, ModeMFCC}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool { return m >= ModeNone && m <= ModeCombined }

// Plottable reports whether m maps to a single figure.
func (m Mode) Plottable() bool { return m >= ModeWave && m <= ModeMFCC }

// Key returns the numeric selector key ("0".."6").
func (m Mode) Key() string { return fmt.Sprintf("%d", int(m)) }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Title returns the figure title for m.
func (m Mode) Title() string {
	if !m.Valid() {
		return m.String()
	}
	return modeTitles[m]
}

// MenuLabel returns the selector caption for m.
func (m Mode) MenuLabel() string {
	if !m.Valid() {
		return m.String()
	}
	return modeMenu[m]
}

// ParseMode accepts a selector key "0".."6" or a mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes() {
		if s == m.Key() || s == m.String() {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
