package gradient

import (
	"github.com/mazznoer/colorgrad"

	"falsecolor/palette"
)

// colorgradPresets are the continuous maps supplied by colorgrad, keyed by the
// matplotlib-style lower case names users already know.
var colorgradPresets = map[string]func() colorgrad.Gradient{
	"cividis":   colorgrad.Cividis,
	"turbo":     colorgrad.Turbo,
	"rainbow":   colorgrad.Rainbow,
	"sinebow":   colorgrad.Sinebow,
	"cubehelix": colorgrad.CubehelixDefault,
	"warm":      colorgrad.Warm,
	"cool":      colorgrad.Cool,
	"spectral":  colorgrad.Spectral,
	"rdylgn":    colorgrad.RdYlGn,
	"rdylbu":    colorgrad.RdYlBu,
	"rdbu":      colorgrad.RdBu,
	"brbg":      colorgrad.BrBG,
	"piyg":      colorgrad.PiYG,
	"prgn":      colorgrad.PRGn,
	"puor":      colorgrad.PuOr,
	"rdgy":      colorgrad.RdGy,
	"blues":     colorgrad.Blues,
	"greens":    colorgrad.Greens,
	"greys":     colorgrad.Greys,
	"oranges":   colorgrad.Oranges,
	"purples":   colorgrad.Purples,
	"reds":      colorgrad.Reds,
	"ylorrd":    colorgrad.YlOrRd,
	"ylgnbu":    colorgrad.YlGnBu,
}

func registerColorgrad(r *Registry) {
	for name, preset := range colorgradPresets {
		preset := preset
		r.Register(name, func() Gradient { return fromColorgrad(preset()) })
	}
}

// fromColorgrad adapts a colorgrad gradient; t is mapped onto its domain and
// channels are clamped to [0,1]. colorgrad colors carry no alpha.
func fromColorgrad(g colorgrad.Gradient) Func {
	lo, hi := g.Domain()
	return func(t float64) palette.Sample {
		c := g.At(lo + t*(hi-lo))
		return palette.Sample{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: 1}
	}
}
