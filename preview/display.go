package preview

import (
	"image/color"

	"falsecolor/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay lets tinyfont draw onto a framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	d.fb.SetRGB(int(x), int(y), c.R, c.G, c.B)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil {
		return nil
	}
	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.fb.SetRGB(px, py, c.R, c.G, c.B)
		}
	}
	return nil
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
