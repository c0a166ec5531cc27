package preview

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"falsecolor/hal"
	"falsecolor/palette"
)

func gradientTable(swap bool) palette.Table {
	samples := make([]palette.Sample, palette.Size)
	for i := range samples {
		f := float64(i) / float64(palette.Size-1)
		samples[i] = palette.Sample{R: f, G: 0.5, B: 1 - f, A: 1}
	}
	t, err := palette.Quantize(samples, palette.Options{SwapBytes: swap})
	if err != nil {
		panic(err)
	}
	return t
}

func TestRenderSwatchMatchesPanelOrder(t *testing.T) {
	plain := gradientTable(false)
	tests := []struct {
		name   string
		format hal.PixelFormat
		swap   bool
		ok     bool
	}{
		{"le panel native table", hal.PixelFormatRGB565, false, true},
		{"be panel swapped table", hal.PixelFormatRGB565BE, true, true},
		{"be panel native table", hal.PixelFormatRGB565BE, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(tt.format)
			if err := Render(fb, gradientTable(tt.swap), Options{Name: "test", SwapBytes: tt.swap}); err != nil {
				t.Fatalf("Render: %v", err)
			}
			mismatches := 0
			for i := 0; i < palette.Size; i++ {
				if fb.Pixel565(margin+i, (swatchY0+swatchY1)/2) != plain[i] {
					mismatches++
				}
			}
			if tt.ok && mismatches != 0 {
				t.Fatalf("%d stripes show the wrong color", mismatches)
			}
			if !tt.ok && mismatches == 0 {
				t.Fatal("byte order mismatch went unnoticed")
			}
		})
	}
}

func TestRenderDrawsCaption(t *testing.T) {
	fb := NewFramebuffer(hal.PixelFormatRGB565)
	if err := Render(fb, gradientTable(false), Options{Name: "plasma"}); err != nil {
		t.Fatal(err)
	}
	bg := palette.PackRGB565(colorBG.R, colorBG.G, colorBG.B)
	lit := 0
	for y := 0; y < swatchY0-2; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel565(x, y) != bg {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("caption area is empty")
	}
}

func TestRenderRejectsSmallFramebuffer(t *testing.T) {
	fb := hal.NewFramebuffer(100, 100, hal.PixelFormatRGB565)
	err := Render(fb, palette.Table{}, Options{})
	if !errors.Is(err, ErrFramebufferSize) {
		t.Fatalf("err = %v, want ErrFramebufferSize", err)
	}
}

// panel counts presents and can fail them, like a display that went away.
type panel struct {
	*hal.MemFramebuffer
	presents int
	err      error
}

func (p *panel) Present() error {
	p.presents++
	return p.err
}

func TestRenderPresentsOnce(t *testing.T) {
	p := &panel{MemFramebuffer: NewFramebuffer(hal.PixelFormatRGB565)}
	tab := gradientTable(false)
	if err := Render(p, tab, Options{Name: "ramp"}); err != nil {
		t.Fatal(err)
	}
	if p.presents != 1 {
		t.Fatalf("presented %d times, want 1", p.presents)
	}
	if got := p.Pixel565(margin+7, swatchY0); got != tab[7] {
		t.Fatalf("stripe 7 = %#04x, want %#04x", got, tab[7])
	}

	p.err = errors.New("spi: write timeout")
	if err := Render(p, tab, Options{Name: "ramp"}); !errors.Is(err, p.err) {
		t.Fatalf("err = %v, want the present error", err)
	}
}

func TestWritePNG(t *testing.T) {
	fb := NewFramebuffer(hal.PixelFormatRGB565BE)
	if err := Render(fb, gradientTable(true), Options{Name: "x", SwapBytes: true}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, fb, 3); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width*3 || b.Dy() != Height*3 {
		t.Fatalf("png is %dx%d", b.Dx(), b.Dy())
	}
	// The last stripe is full red with no blue.
	r, _, b, _ := img.At((margin+palette.Size-1)*3+1, ((swatchY0+swatchY1)/2)*3).RGBA()
	if r>>8 < 0xf0 || b>>8 > 0x10 {
		t.Fatalf("last stripe decoded as r=%#x b=%#x", r>>8, b>>8)
	}
}
