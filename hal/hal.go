// Package hal holds the host-side stand-ins for the display hardware a
// lookup table is generated for: an RGB565 framebuffer with the panel's byte
// order, a line logger and a preview window.
package hal

import "image"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// PixelFormat defines how the panel reads framebuffer bytes.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp rrrrrggggggbbbbb, low byte first.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGB565BE is 16bpp rrrrrggggggbbbbb, high byte first, as an
	// SPI panel such as the ST7789 receives it.
	PixelFormatRGB565BE
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565le"
	case PixelFormatRGB565BE:
		return "rgb565be"
	default:
		return "unknown"
	}
}

// Framebuffer is an RGB565 pixel buffer plus a "present" hook. SetWord stores
// a packed value as is; SetRGB packs first. Both ignore pixels out of bounds.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	SetWord(x, y int, w uint16)
	SetRGB(x, y int, r, g, b uint8)
	// RGBA decodes the buffer the way the panel would show it.
	RGBA() *image.RGBA
	Present() error
}
