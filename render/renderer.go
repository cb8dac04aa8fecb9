package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/cwbudde/algo-featureviz/feature"
	timestats "github.com/cwbudde/algo-featureviz/stats/time"
)

// ErrEmptyArray is returned for arrays with nothing to draw.
var ErrEmptyArray = errors.New("render: empty feature array")

var (
	background = color.RGBA{255, 255, 255, 255}
	foreground = color.RGBA{34, 34, 34, 255}
	waveColor  = color.RGBA{31, 119, 180, 255}
	gridColor  = color.RGBA{204, 204, 204, 255}
)

const (
	marginLeft   = 56
	marginTop    = 28
	marginBottom = 36
	marginRight  = 16
	colorbarGap  = 12
	colorbarW    = 14
	colorbarText = 52
)

// Smallest figure that still fits the axes, title and colorbar.
const (
	MinWidth  = 160
	MinHeight = 120
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the figure size in pixels. Sizes below MinWidth x MinHeight
// are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width >= MinWidth && height >= MinHeight {
			r.width, r.height = width, height
		}
	}
}

// WithColormaps replaces the sequential and diverging colormaps.
func WithColormaps(sequential, diverging Colormap) Option {
	return func(r *Renderer) {
		r.sequential, r.diverging = sequential, diverging
	}
}

// Renderer draws feature arrays. It holds no mutable state.
type Renderer struct {
	width, height int
	sequential    Colormap
	diverging     Colormap
}

// NewRenderer returns a Renderer producing 480x320 figures by default.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: 480, height: 320, sequential: Magma, diverging: Coolwarm}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Size returns the figure size in pixels.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Render draws arr into a new Figure titled with the mode's title.
func (r *Renderer) Render(arr *feature.Array) (*Figure, error) {
	if arr == nil {
		return nil, ErrEmptyArray
	}

	switch arr.Mode {
	case feature.ModeWave:
		if len(arr.Wave) == 0 {
			return nil, ErrEmptyArray
		}
		return r.renderWave(arr), nil
	case feature.ModeLinearSpectrogram, feature.ModeLogSpectrogram, feature.ModeMelSpectrogram, feature.ModeMFCC:
		if arr.Rows() == 0 || arr.Frames() == 0 {
			return nil, ErrEmptyArray
		}
		return r.renderHeatmap(arr), nil
	default:
		return nil, fmt.Errorf("render: mode %s has no figure", arr.Mode)
	}
}

type plotArea struct {
	x, y, w, h float64
}

func (r *Renderer) newCanvas(title string) *gg.Context {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(background)
	dc.Clear()
	dc.SetColor(foreground)
	dc.DrawStringAnchored(title, float64(r.width)/2, float64(marginTop)/2, 0.5, 0.5)
	return dc
}

func (r *Renderer) renderWave(arr *feature.Array) *Figure {
	title := arr.Mode.Title()
	dc := r.newCanvas(title)
	area := plotArea{
		x: marginLeft,
		y: marginTop,
		w: float64(r.width - marginLeft - marginRight),
		h: float64(r.height - marginTop - marginBottom),
	}

	sum := timestats.Summarize(arr.Wave, arr.SampleRate)
	limit := sum.Peak
	if limit == 0 {
		limit = 1
	}
	yOf := func(v float64) float64 {
		return area.y + area.h/2 - v/limit*area.h/2
	}

	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.DrawLine(area.x, yOf(0), area.x+area.w, yOf(0))
	dc.Stroke()

	dc.SetColor(waveColor)
	env := timestats.Envelope(arr.Wave, int(area.w))
	colW := area.w / float64(max(len(env), 1))
	for i, s := range env {
		x := area.x + (float64(i)+0.5)*colW
		y0, y1 := yOf(s.Max), yOf(s.Min)
		if y1-y0 < 1 {
			y1 = y0 + 1
		}
		dc.DrawLine(x, y0, x, y1)
	}
	dc.Stroke()

	r.drawFrame(dc, area)
	r.drawXAxis(dc, area, timeTicks(sum.Duration.Seconds()))
	r.drawYTicks(dc, area, []tick{
		{pos: 0, label: fmt.Sprintf("%+.2f", -limit)},
		{pos: 0.5, label: "0"},
		{pos: 1, label: fmt.Sprintf("%+.2f", limit)},
	}, "")
	if !math.IsInf(sum.Peak_dB, -1) {
		dc.SetColor(foreground)
		dc.DrawStringAnchored(fmt.Sprintf("peak %.1f dB", sum.Peak_dB), area.x+area.w-4, area.y+4, 1, 1)
	}

	return &Figure{Title: title, Mode: arr.Mode, Image: toRGBA(dc.Image()), Min: sum.Min, Max: sum.Max}
}

func (r *Renderer) renderHeatmap(arr *feature.Array) *Figure {
	title := arr.Mode.Title()
	dc := r.newCanvas(title)
	area := plotArea{
		x: marginLeft,
		y: marginTop,
		w: float64(r.width - marginLeft - colorbarGap - colorbarW - colorbarText),
		h: float64(r.height - marginTop - marginBottom),
	}

	lo, hi := arr.Range()
	cmap := chooseColormap(lo, hi, r.sequential, r.diverging)
	norm := func(v float64) float64 {
		if hi == lo {
			return 1
		}
		return (v - lo) / (hi - lo)
	}

	axis := frequencyAxis(arr)
	pw, ph := int(area.w), int(area.h)
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	rowOf := make([]int, ph)
	for y := range rowOf {
		rowOf[y] = axis.rowAt(1 - (float64(y)+0.5)/float64(ph))
	}
	frames := arr.Frames()
	for x := range pw {
		t := min(x*frames/pw, frames-1)
		for y, row := range rowOf {
			if row < 0 {
				img.SetRGBA(x, y, background)
				continue
			}
			img.SetRGBA(x, y, cmap.At(norm(arr.Data[row][t])))
		}
	}
	dc.DrawImage(img, int(area.x), int(area.y))

	r.drawFrame(dc, area)
	r.drawXAxis(dc, area, timeTicks(arr.Duration().Seconds()))
	r.drawYTicks(dc, area, axis.ticks, axis.label)

	format := "%+2.0f dB"
	if arr.Mode == feature.ModeMFCC {
		format = "%+.0f"
	}
	r.drawColorbar(dc, area, cmap, lo, hi, format)

	return &Figure{Title: title, Mode: arr.Mode, Image: toRGBA(dc.Image()), Colormap: cmap.Name, Min: lo, Max: hi}
}

func (r *Renderer) drawFrame(dc *gg.Context, area plotArea) {
	dc.SetColor(foreground)
	dc.SetLineWidth(1)
	dc.DrawRectangle(area.x, area.y, area.w, area.h)
	dc.Stroke()
}

func (r *Renderer) drawXAxis(dc *gg.Context, area plotArea, ticks []tick) {
	dc.SetColor(foreground)
	base := area.y + area.h
	for _, t := range ticks {
		x := area.x + t.pos*area.w
		dc.DrawLine(x, base, x, base+4)
		dc.Stroke()
		dc.DrawStringAnchored(t.label, x, base+6, 0.5, 1)
	}
	dc.DrawStringAnchored("Time (s)", area.x+area.w/2, float64(r.height)-4, 0.5, 0)
}

func (r *Renderer) drawYTicks(dc *gg.Context, area plotArea, ticks []tick, label string) {
	dc.SetColor(foreground)
	for _, t := range ticks {
		y := area.y + (1-t.pos)*area.h
		dc.DrawLine(area.x-4, y, area.x, y)
		dc.Stroke()
		dc.DrawStringAnchored(t.label, area.x-6, y, 1, 0.5)
	}
	if label != "" {
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), 10, area.y+area.h/2)
		dc.DrawStringAnchored(label, 10, area.y+area.h/2, 0.5, 0.5)
		dc.Pop()
	}
}

func (r *Renderer) drawColorbar(dc *gg.Context, area plotArea, cmap Colormap, lo, hi float64, format string) {
	x := area.x + area.w + colorbarGap
	h := int(area.h)
	for y := range h {
		t := 1 - (float64(y)+0.5)/float64(h)
		dc.SetColor(cmap.At(t))
		dc.DrawRectangle(x, area.y+float64(y), colorbarW, 1)
		dc.Fill()
	}
	dc.SetColor(foreground)
	dc.DrawRectangle(x, area.y, colorbarW, area.h)
	dc.Stroke()

	const steps = 4
	for i := 0; i <= steps; i++ {
		frac := float64(i) / steps
		v := lo + frac*(hi-lo)
		y := area.y + (1-frac)*area.h
		dc.DrawLine(x+colorbarW, y, x+colorbarW+3, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf(format, v), x+colorbarW+5, y, 0, 0.5)
	}
}

func toRGBA(im image.Image) *image.RGBA {
	if rgba, ok := im.(*image.RGBA); ok {
		return rgba
	}
	b := im.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, im, b.Min, draw.Src)
	return out
}
