package hal

import "falsecolor/palette"

// encode returns the 16-bit word that, stored low byte first in memory, makes
// the panel show p.
func (f PixelFormat) encode(p uint16) uint16 {
	if f == PixelFormatRGB565BE {
		return palette.ByteSwap16(p)
	}
	return p
}

// decode is the inverse of encode: the pixel the panel sees for the bytes lo, hi.
func (f PixelFormat) decode(lo, hi byte) uint16 {
	if f == PixelFormatRGB565BE {
		return uint16(lo)<<8 | uint16(hi)
	}
	return uint16(lo) | uint16(hi)<<8
}

func rgb565(r, g, b uint8) uint16 {
	return palette.PackRGB565(r, g, b)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	return palette.UnpackRGB565(p)
}
