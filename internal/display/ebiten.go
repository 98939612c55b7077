package display

import (
	"errors"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/junsooki/AirView/internal/resource"
	"github.com/junsooki/AirView/internal/texture"
)

// EbitenViewer renders one image resource using Ebitengine. Uploads happen
// inside Draw, on the thread that owns the graphics context.
type EbitenViewer struct {
	res *resource.Resource
	tex *texture.EbitenTexture

	title   string
	windowW int
	windowH int

	uploaded   bool
	lastUpload time.Time
}

// NewEbitenViewer creates an Ebitengine-based viewer for res, uploading
// frames into tex.
func NewEbitenViewer(res *resource.Resource, tex *texture.EbitenTexture, title string, w, h int) *EbitenViewer {
	return &EbitenViewer{
		res:     res,
		tex:     tex,
		title:   title,
		windowW: w,
		windowH: h,
	}
}

// Run starts the game loop and recycles the resource when the window
// closes. Must be called from the main goroutine.
func (v *EbitenViewer) Run() error {
	ebiten.SetWindowSize(v.windowW, v.windowH)
	ebiten.SetWindowTitle(v.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	v.res.Start()
	err := ebiten.RunGame(v)
	v.res.Recycle()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// --- ebiten.Game interface ---

func (v *EbitenViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (v *EbitenViewer) Draw(screen *ebiten.Image) {
	v.refreshTexture()
	img := v.tex.Image()
	if img == nil {
		return
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), iw, ih)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(img, op)
}

func (v *EbitenViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// refreshTexture uploads the first frame once, then re-uploads at the
// resource's suggested redraw interval. Static images upload exactly once.
func (v *EbitenViewer) refreshTexture() {
	if !v.uploaded {
		v.res.UploadFrame(true, 0, 0, v.res.Width(), v.res.Height())
		v.uploaded = true
		v.lastUpload = time.Now()
		return
	}
	interval := v.res.FrameInterval()
	if interval == 0 || time.Since(v.lastUpload) < interval {
		return
	}
	v.res.UploadFrame(false, 0, 0, v.res.Width(), v.res.Height())
	v.lastUpload = time.Now()
}

// aspectFitTransform returns scale and offsets to fit the image into the
// view with letterboxing.
func aspectFitTransform(viewW, viewH, imgW, imgH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/imgW, viewH/imgH)
	offsetX = (viewW - imgW*scale) / 2
	offsetY = (viewH - imgH*scale) / 2
	return
}
