package hal

import (
	"image"
	"sync"
)

// MemFramebuffer is an in-memory framebuffer. Words are stored low byte first,
// the way a little-endian MCU writes a uint16 pen; Format decides how the panel
// reads them back.
type MemFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	format PixelFormat
	buf    []byte
}

var _ Framebuffer = (*MemFramebuffer)(nil)

// NewFramebuffer allocates a width x height framebuffer.
func NewFramebuffer(width, height int, format PixelFormat) *MemFramebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if format != PixelFormatRGB565BE {
		format = PixelFormatRGB565
	}
	stride := width * 2
	return &MemFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		buf:    make([]byte, stride*height),
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return f.format }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }
func (f *MemFramebuffer) Present() error      { return nil }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	word := f.format.encode(rgb565(r, g, b))
	lo := byte(word)
	hi := byte(word >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *MemFramebuffer) offset(x, y int) (int, bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, false
	}
	return y*f.stride + x*2, true
}

// SetWord stores w at (x, y) exactly as firmware copying a table entry would.
// Whether it shows the intended color depends on the table's byte order
// matching the panel.
func (f *MemFramebuffer) SetWord(x, y int, w uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	off, ok := f.offset(x, y)
	if !ok {
		return
	}
	f.buf[off] = byte(w)
	f.buf[off+1] = byte(w >> 8)
}

// SetRGB stores the pixel so the panel shows (r, g, b).
func (f *MemFramebuffer) SetRGB(x, y int, r, g, b uint8) {
	f.SetWord(x, y, f.format.encode(rgb565(r, g, b)))
}

// Pixel565 returns the RGB565 value the panel shows at (x, y).
func (f *MemFramebuffer) Pixel565(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	off, ok := f.offset(x, y)
	if !ok {
		return 0
	}
	return f.format.decode(f.buf[off], f.buf[off+1])
}

func (f *MemFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// RGBA decodes the framebuffer as the panel would show it.
func (f *MemFramebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	scratch := make([]byte, len(f.buf))
	f.snapshot(scratch)
	decodeInto(img.Pix, scratch, f.format)
	return img
}

func decodeInto(dst, src []byte, format PixelFormat) {
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(format.decode(src[i], src[i+1]))
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}
