package render

import (
	"image/color"
	"math"
)

// Colormap maps [0, 1] onto a piecewise-linear color ramp.
type Colormap struct {
	Name  string
	stops []color.RGBA
}

// NewColormap builds a colormap through evenly spaced stops.
func NewColormap(name string, stops ...color.RGBA) Colormap {
	return Colormap{Name: name, stops: stops}
}

// Magma approximates matplotlib's magma, used for single-signed data.
var Magma = NewColormap("magma",
	color.RGBA{0, 0, 4, 255},
	color.RGBA{28, 16, 68, 255},
	color.RGBA{79, 18, 123, 255},
	color.RGBA{129, 37, 129, 255},
	color.RGBA{181, 54, 122, 255},
	color.RGBA{229, 80, 100, 255},
	color.RGBA{251, 135, 97, 255},
	color.RGBA{254, 194, 135, 255},
	color.RGBA{252, 253, 191, 255},
)

// Coolwarm approximates matplotlib's coolwarm, used for data spanning both
// signs.
var Coolwarm = NewColormap("coolwarm",
	color.RGBA{59, 76, 192, 255},
	color.RGBA{124, 159, 249, 255},
	color.RGBA{221, 221, 221, 255},
	color.RGBA{244, 154, 123, 255},
	color.RGBA{180, 4, 38, 255},
)

// At returns the color at position t, clamped to [0, 1].
func (c Colormap) At(t float64) color.RGBA {
	switch len(c.stops) {
	case 0:
		return color.RGBA{A: 255}
	case 1:
		return c.stops[0]
	}
	if math.IsNaN(t) || t <= 0 {
		return c.stops[0]
	}
	if t >= 1 {
		return c.stops[len(c.stops)-1]
	}

	pos := t * float64(len(c.stops)-1)
	i := int(pos)
	return interpolateColor(c.stops[i], c.stops[i+1], pos-float64(i))
}

func interpolateColor(c1, c2 color.RGBA, fraction float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + fraction*(float64(b)-float64(a))))
	}
	return color.RGBA{lerp(c1.R, c2.R), lerp(c1.G, c2.G), lerp(c1.B, c2.B), 255}
}

// chooseColormap returns sequential for data that stays on one side of
// zero and diverging for data spanning both signs.
func chooseColormap(lo, hi float64, sequential, diverging Colormap) Colormap {
	if lo < 0 && hi > 0 {
		return diverging
	}
	return sequential
}
