package gradient

import "falsecolor/palette"

// anchor is one breakpoint of a piecewise linear channel. Below X the channel
// approaches Below, above X it leaves from Above; the two differ only at
// discontinuities.
type anchor struct {
	X, Below, Above float64
}

// segmented holds per-channel breakpoints in the layout matplotlib uses for
// LinearSegmentedColormap data. X runs from 0 to 1 in increasing order.
type segmented struct {
	red, green, blue []anchor
}

// Sample evaluates the breakpoints on a grid of total points, scaling the
// anchors to the grid the way matplotlib builds its lookup tables so that the
// truncated 8-bit channels come out identical.
func (s segmented) Sample(i, total int) palette.Sample {
	return palette.Sample{
		R: evalChannel(s.red, i, total),
		G: evalChannel(s.green, i, total),
		B: evalChannel(s.blue, i, total),
		A: 1,
	}
}

func evalChannel(anchors []anchor, i, total int) float64 {
	n := len(anchors)
	switch {
	case n == 0:
		return 0
	case i <= 0 || total <= 1:
		return clamp01(anchors[0].Above)
	case i >= total-1:
		return clamp01(anchors[n-1].Below)
	}

	last := float64(total - 1)
	x := float64(i) * (1 / last) * last
	for k := 1; k < n; k++ {
		hi := anchors[k].X * last
		if hi < x {
			continue
		}
		a, b := anchors[k-1], anchors[k]
		lo := a.X * last
		if hi <= lo {
			return clamp01(b.Below)
		}
		d := (x - lo) / (hi - lo)
		// No FMA: the rounding must match a separate multiply and add.
		return clamp01(float64(d*(b.Below-a.Above)) + a.Above)
	}
	return clamp01(anchors[n-1].Below)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// flat builds anchors without discontinuities from (x, y) pairs.
func flat(xy ...float64) []anchor {
	out := make([]anchor, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, anchor{X: xy[i], Below: xy[i+1], Above: xy[i+1]})
	}
	return out
}

var segmentedMaps = map[string]segmented{
	"gray": {
		red:   flat(0, 0, 1, 1),
		green: flat(0, 0, 1, 1),
		blue:  flat(0, 0, 1, 1),
	},
	"hot": {
		red:   flat(0, 0.0416, 0.365079, 1, 1, 1),
		green: flat(0, 0, 0.365079, 0, 0.746032, 1, 1, 1),
		blue:  flat(0, 0, 0.746032, 0, 1, 1),
	},
	"jet": {
		red:   flat(0, 0, 0.35, 0, 0.66, 1, 0.89, 1, 1, 0.5),
		green: flat(0, 0, 0.125, 0, 0.375, 1, 0.64, 1, 0.91, 0, 1, 0),
		blue:  flat(0, 0.5, 0.11, 1, 0.34, 1, 0.65, 0, 1, 0),
	},
	"copper": {
		red:   flat(0, 0, 0.809524, 1, 1, 1),
		green: flat(0, 0, 1, 0.7812),
		blue:  flat(0, 0, 1, 0.4975),
	},
	"bone": {
		red:   flat(0, 0, 0.746032, 0.652778, 1, 1),
		green: flat(0, 0, 0.365079, 0.319444, 0.746032, 0.777778, 1, 1),
		blue:  flat(0, 0, 0.365079, 0.444444, 1, 1),
	},
	"nipy_spectral": {
		red: flat(
			0, 0, 0.05, 0.4667, 0.10, 0.5333, 0.15, 0, 0.20, 0,
			0.25, 0, 0.30, 0, 0.35, 0, 0.40, 0, 0.45, 0,
			0.50, 0, 0.55, 0, 0.60, 0, 0.65, 0.7333, 0.70, 0.9333,
			0.75, 1, 0.80, 1, 0.85, 1, 0.90, 0.8667, 0.95, 0.80,
			1, 0.80,
		),
		green: flat(
			0, 0, 0.05, 0, 0.10, 0, 0.15, 0, 0.20, 0,
			0.25, 0.4667, 0.30, 0.6, 0.35, 0.6667, 0.40, 0.6667, 0.45, 0.6,
			0.50, 0.7333, 0.55, 0.8667, 0.60, 1, 0.65, 1, 0.70, 0.9333,
			0.75, 0.8, 0.80, 0.6, 0.85, 0, 0.90, 0, 0.95, 0,
			1, 0.80,
		),
		blue: flat(
			0, 0, 0.05, 0.5333, 0.10, 0.6, 0.15, 0.6667, 0.20, 0.8667,
			0.25, 0.8667, 0.30, 0.8667, 0.35, 0.6667, 0.40, 0.5333, 0.45, 0,
			0.50, 0, 0.55, 0, 0.60, 0, 0.65, 0, 0.70, 0,
			0.75, 0, 0.80, 0, 0.85, 0, 0.90, 0, 0.95, 0,
			1, 0.80,
		),
	},
}

func registerSegmented(r *Registry) {
	for name, s := range segmentedMaps {
		s := s
		r.Register(name, func() Gradient { return s })
	}
}
