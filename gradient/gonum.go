package gradient

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"

	pal "falsecolor/palette"
)

const brewerPrefix = "brewer:"

// maxBrewerColors is the largest scheme size ColorBrewer publishes.
const maxBrewerColors = 12

var errTransparent = errors.New("fully transparent color")

var morelandMaps = map[string]func() palette.ColorMap{
	"coolwarm":           func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"kindlmann":          moreland.Kindlmann,
	"extended_kindlmann": moreland.ExtendedKindlmann,
	"blackbody":          moreland.BlackBody,
	"extended_blackbody": moreland.ExtendedBlackBody,
}

func registerMoreland(r *Registry) {
	for name, mk := range morelandMaps {
		mk := mk
		r.Register(name, func() Gradient { return fromColorMap(mk()) })
	}
}

// fromColorMap adapts a gonum color map over [0,1]. Positions the map rejects
// come back black; the unit range never does for the moreland maps.
func fromColorMap(cm palette.ColorMap) Func {
	cm.SetMax(1)
	cm.SetMin(0)
	return func(t float64) pal.Sample {
		c, err := cm.At(math.Min(math.Max(t, 0), 1))
		if err != nil {
			return pal.Sample{A: 1}
		}
		s, err := sampleFromColor(c)
		if err != nil {
			return pal.Sample{A: 1}
		}
		return s
	}
}

func sampleFromColor(c color.Color) (pal.Sample, error) {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return pal.Sample{}, errTransparent
	}
	_, _, _, a := c.RGBA()
	cf = cf.Clamped()
	return pal.Sample{R: cf.R, G: cf.G, B: cf.B, A: float64(a) / 0xffff}, nil
}

// resolveBrewer looks up a ColorBrewer scheme at its largest published size.
// Qualitative schemes stay stepped; the others are blended linearly in RGB.
func resolveBrewer(name string) (Gradient, bool, error) {
	var colors []color.Color
	for n := maxBrewerColors; n >= 3; n-- {
		p, err := brewer.GetPalette(brewer.TypeAny, name, n)
		if err == nil {
			colors = p.Colors()
			break
		}
	}
	if len(colors) == 0 {
		return nil, false, nil
	}

	stops := make([]colorful.Color, 0, len(colors))
	listed := make(Listed, 0, len(colors))
	for i, c := range colors {
		s, err := sampleFromColor(c)
		if err != nil {
			return nil, false, fmt.Errorf("brewer %s color %d: %w", name, i, err)
		}
		listed = append(listed, s)
		stops = append(stops, colorful.Color{R: s.R, G: s.G, B: s.B})
	}

	if _, err := brewer.GetPalette(brewer.TypeQualitative, name, len(colors)); err == nil {
		return listed, true, nil
	}
	return blendStops(stops), true, nil
}

// blendStops interpolates evenly spaced stops in RGB.
func blendStops(stops []colorful.Color) Func {
	return func(t float64) pal.Sample {
		if len(stops) == 1 {
			c := stops[0]
			return pal.Sample{R: c.R, G: c.G, B: c.B, A: 1}
		}
		pos := math.Min(math.Max(t, 0), 1) * float64(len(stops)-1)
		k := int(pos)
		if k >= len(stops)-1 {
			k = len(stops) - 2
		}
		c := stops[k].BlendRgb(stops[k+1], pos-float64(k)).Clamped()
		return pal.Sample{R: c.R, G: c.G, B: c.B, A: 1}
	}
}
