//go:build cgo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window showing fb as the panel would and blocks
// until the window is closed or Escape is pressed.
func RunWindow(title string, fb *MemFramebuffer, scale int) error {
	if scale <= 0 {
		scale = 2
	}
	g := &previewGame{fb: fb}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.width*scale, fb.height*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type previewGame struct {
	fb      *MemFramebuffer
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *previewGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshot(g.scratch)
	decodeInto(g.img.Pix, g.scratch, fb.format)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.width, g.fb.height
}
