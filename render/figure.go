package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/cwbudde/algo-featureviz/feature"
)

// Figure is a rendered plot. It owns its pixels.
type Figure struct {
	Title string
	Mode  feature.Mode
	Image *image.RGBA
	// Colormap names the ramp used by heatmaps; empty for waveforms.
	Colormap string
	// Min and Max are the value range mapped onto the colormap, or the
	// amplitude range of a waveform.
	Min, Max float64
}

// Bounds returns the image size.
func (f *Figure) Bounds() image.Rectangle { return f.Image.Bounds() }

// WritePNG encodes the figure as PNG into w.
func (f *Figure) WritePNG(w io.Writer) error {
	if f == nil || f.Image == nil {
		return fmt.Errorf("render: empty figure")
	}
	return png.Encode(w, f.Image)
}

// PNG returns the PNG encoding of the figure.
func (f *Figure) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.WritePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
