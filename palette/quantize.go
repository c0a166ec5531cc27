// Package palette turns gradient samples into RGB565 lookup tables and
// renders them as source literals.
package palette

import (
	"errors"
	"fmt"
)

// Size is the number of entries in a Table.
const Size = 256

// ErrSampleCount is returned when Quantize gets anything other than Size samples.
var ErrSampleCount = errors.New("palette: wrong sample count")

// Sample is a normalized color; every channel is in [0,1]. A is carried along
// but never packed.
type Sample struct {
	R, G, B, A float64
}

// Gray returns an opaque sample with all color channels set to v.
func Gray(v float64) Sample {
	return Sample{R: v, G: v, B: v, A: 1}
}

// Scale converts the color channels to 8 bits. Values are clamped to [0,1] and
// truncated toward zero after multiplying by 255.
func (s Sample) Scale() (r, g, b uint8) {
	return scaleChannel(s.R), scaleChannel(s.G), scaleChannel(s.B)
}

func scaleChannel(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Table is a full RGB565 lookup table; entry i comes from sample i.
type Table [Size]uint16

// Options controls packing.
type Options struct {
	// SwapBytes stores every entry with its bytes exchanged, for targets that
	// read the table as big-endian pixels.
	SwapBytes bool
	BlueMask  BlueMask
}

// Quantize packs exactly Size samples into a Table.
func Quantize(samples []Sample, opts Options) (Table, error) {
	var t Table
	if len(samples) != Size {
		return t, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(samples), Size)
	}
	for i, s := range samples {
		r, g, b := s.Scale()
		p := PackRGB565Mask(r, g, b, opts.BlueMask)
		if opts.SwapBytes {
			p = ByteSwap16(p)
		}
		t[i] = p
	}
	return t, nil
}
