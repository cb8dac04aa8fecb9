package render

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-featureviz/dsp/mel"
	"github.com/cwbudde/algo-featureviz/feature"
)

// tick is an axis mark at a normalized position in [0, 1].
type tick struct {
	pos   float64
	label string
}

// yAxis maps heatmap rows onto the vertical plot extent. edges holds
// rows+1 boundaries, 0 at the bottom and 1 at the top.
type yAxis struct {
	label string
	edges []float64
	ticks []tick
}

func frequencyAxis(arr *feature.Array) yAxis {
	rows := arr.Rows()
	switch arr.Mode {
	case feature.ModeLinearSpectrogram:
		return linearAxis(rows, arr.SampleRate, arr.FFTSize)
	case feature.ModeLogSpectrogram:
		return logAxis(rows, arr.SampleRate, arr.FFTSize)
	case feature.ModeMelSpectrogram:
		return melAxis(rows, arr.FMin, arr.FMax)
	default:
		return indexAxis(rows)
	}
}

func binEdgesHz(rows, sampleRate, fftSize int) []float64 {
	nyquist := float64(sampleRate) / 2
	binHz := float64(sampleRate) / float64(fftSize)
	edges := make([]float64, rows+1)
	for k := range edges {
		edges[k] = math.Max(0, math.Min(nyquist, (float64(k)-0.5)*binHz))
	}
	return edges
}

func linearAxis(rows, sampleRate, fftSize int) yAxis {
	nyquist := float64(sampleRate) / 2
	edges := binEdgesHz(rows, sampleRate, fftSize)
	for i := range edges {
		edges[i] /= nyquist
	}

	var ticks []tick
	step := niceStep(nyquist, 5)
	for f := 0.0; f <= nyquist; f += step {
		ticks = append(ticks, tick{pos: f / nyquist, label: formatHz(f)})
	}
	return yAxis{label: "Hz", edges: edges, ticks: ticks}
}

func logAxis(rows, sampleRate, fftSize int) yAxis {
	nyquist := float64(sampleRate) / 2
	lo := float64(sampleRate) / float64(fftSize)
	span := math.Log(nyquist / lo)
	pos := func(f float64) float64 {
		if f <= lo {
			return 0
		}
		return math.Log(f/lo) / span
	}

	edges := binEdgesHz(rows, sampleRate, fftSize)
	for i, f := range edges {
		edges[i] = pos(f)
	}

	var ticks []tick
	for f := 64.0; f <= nyquist; f *= 2 {
		if f > lo {
			ticks = append(ticks, tick{pos: pos(f), label: formatHz(f)})
		}
	}
	return yAxis{label: "Hz", edges: edges, ticks: ticks}
}

func melAxis(rows int, fmin, fmax float64) yAxis {
	lo, hi := mel.HzToMel(fmin), mel.HzToMel(fmax)

	var ticks []tick
	if hi > lo {
		for _, f := range []float64{0, 512, 1024, 2048, 4096, 8192, 16384} {
			if f < fmin || f > fmax {
				continue
			}
			ticks = append(ticks, tick{pos: (mel.HzToMel(f) - lo) / (hi - lo), label: formatHz(f)})
		}
	}
	return yAxis{label: "Hz", edges: uniformEdges(rows), ticks: ticks}
}

func indexAxis(rows int) yAxis {
	var ticks []tick
	if rows > 0 {
		step := int(math.Max(1, niceStep(float64(rows), 4)))
		for i := 0; i < rows; i += step {
			ticks = append(ticks, tick{pos: (float64(i) + 0.5) / float64(rows), label: fmt.Sprintf("%d", i)})
		}
	}
	return yAxis{label: "coefficient", edges: uniformEdges(rows), ticks: ticks}
}

func uniformEdges(rows int) []float64 {
	edges := make([]float64, rows+1)
	for i := range edges {
		edges[i] = float64(i) / float64(max(rows, 1))
	}
	return edges
}

// rowAt returns the row whose edges contain normalized position p, or -1.
func (a yAxis) rowAt(p float64) int {
	n := len(a.edges) - 1
	if n <= 0 || p < a.edges[0] || p > a.edges[n] {
		return -1
	}
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if a.edges[mid] <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func timeTicks(duration float64) []tick {
	if duration <= 0 {
		return []tick{{pos: 0, label: "0"}}
	}
	step := niceStep(duration, 5)
	var ticks []tick
	for s := 0.0; s <= duration+1e-9; s += step {
		ticks = append(ticks, tick{pos: s / duration, label: formatSeconds(s, step)})
	}
	return ticks
}

// niceStep returns a 1, 2 or 5 times power-of-ten step that splits span
// into roughly target intervals.
func niceStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch r := raw / mag; {
	case r < 1.5:
		return mag
	case r < 3.5:
		return 2 * mag
	case r < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatHz(f float64) string {
	if f >= 1000 && math.Mod(f, 1000) == 0 {
		return fmt.Sprintf("%.0fk", f/1000)
	}
	return fmt.Sprintf("%.0f", f)
}

func formatSeconds(s, step float64) string {
	if step >= 1 {
		return fmt.Sprintf("%.0f", s)
	}
	decimals := int(math.Ceil(-math.Log10(step)))
	return fmt.Sprintf("%.*f", decimals, s)
}
