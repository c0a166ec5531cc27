// Package preview draws a lookup table the way a panel would show it, for a
// quick visual check before the table is pasted into firmware.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"falsecolor/hal"
	"falsecolor/palette"

	xdraw "golang.org/x/image/draw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	margin   = 16
	Width    = palette.Size + 2*margin
	Height   = 112
	swatchY0 = 22
	swatchY1 = 78
	rulerY   = 80
	footerY  = 104
)

var (
	colorBG    = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	colorFG    = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorDim   = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	colorFrame = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

var font = &proggy.TinySZ8pt7b

// ErrFramebufferSize is returned when the framebuffer cannot hold the preview.
var ErrFramebufferSize = errors.New("preview: framebuffer too small")

// Options describe the caption.
type Options struct {
	Name      string
	SwapBytes bool
}

// NewFramebuffer allocates a framebuffer sized for Render.
func NewFramebuffer(format hal.PixelFormat) *hal.MemFramebuffer {
	return hal.NewFramebuffer(Width, Height, format)
}

// Render draws t as 256 one-pixel stripes with an index ruler and caption.
// Entries are copied into the framebuffer untouched, so a table whose byte
// order does not match the panel shows up with scrambled colors.
func Render(fb hal.Framebuffer, t palette.Table, opts Options) error {
	if fb.Width() < Width || fb.Height() < Height {
		return fmt.Errorf("%w: %dx%d, need %dx%d", ErrFramebufferSize, fb.Width(), fb.Height(), Width, Height)
	}
	d := newFBDisplay(fb)
	fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)

	order := "native"
	if opts.SwapBytes {
		order = "swapped"
	}
	tinyfont.WriteLine(d, font, margin, 14, opts.Name, colorFG)
	info := fmt.Sprintf("%s  %s", order, fb.Format())
	w, _ := tinyfont.LineWidth(font, info)
	tinyfont.WriteLine(d, font, int16(Width-margin-int(w)), 14, info, colorDim)

	_ = d.FillRectangle(margin-1, swatchY0-1, palette.Size+2, swatchY1-swatchY0+2, colorFrame)
	for i, v := range t {
		for y := swatchY0; y < swatchY1; y++ {
			fb.SetWord(margin+i, y, v)
		}
	}

	for i := 0; i <= palette.Size; i += palette.RowLen {
		h := int16(3)
		if i%64 == 0 {
			h = 6
		}
		_ = d.FillRectangle(int16(margin+i), rulerY, 1, h, colorDim)
	}
	for i := 0; i < palette.Size; i += 64 {
		tinyfont.WriteLine(d, font, int16(margin+i), rulerY+16, fmt.Sprintf("%d", i), colorDim)
	}

	footer := fmt.Sprintf("0x%04x .. 0x%04x", t[0], t[palette.Size-1])
	w, _ = tinyfont.LineWidth(font, footer)
	tinyfont.WriteLine(d, font, int16(Width-margin-int(w)), footerY, footer, colorFG)
	return d.Display()
}

// WritePNG encodes fb as the panel shows it, enlarged by scale.
func WritePNG(w io.Writer, fb hal.Framebuffer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := fb.RGBA()
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx()*scale, src.Bounds().Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if err := png.Encode(w, dst); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}
