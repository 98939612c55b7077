package texture

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenTexture uploads pixel buffers into an ebiten.Image. Calls must come
// from the thread that owns the graphics context (ebiten's game loop); the
// texture does not enforce that itself.
type EbitenTexture struct {
	img *ebiten.Image
}

func NewEbitenTexture() *EbitenTexture {
	return &EbitenTexture{}
}

func (t *EbitenTexture) Upload(pix *image.RGBA, init bool, x, y, w, h int) {
	if pix == nil || w <= 0 || h <= 0 {
		return
	}
	if init || t.img == nil ||
		t.img.Bounds().Dx() < x+w || t.img.Bounds().Dy() < y+h {
		if t.img != nil {
			t.img.Deallocate()
		}
		t.img = ebiten.NewImage(x+w, y+h)
	}
	region := t.img.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
	region.WritePixels(pix.Pix)
}

// Image returns the backing texture, nil before the first upload.
func (t *EbitenTexture) Image() *ebiten.Image {
	return t.img
}
