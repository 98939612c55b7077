// Package codec decodes raw image bytes into an owned representation:
// either a static RGBA surface or a self-advancing animation.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrDecode reports malformed or unsupported image data.
var ErrDecode = errors.New("codec: cannot decode image data")

// SizeFunc maps a source's natural dimensions to the integer subsample
// factor applied during decode. Results below 1 are treated as 1.
type SizeFunc func(naturalW, naturalH int) int

// Representation is the decoded form of an image. Exactly one concrete kind
// backs it, chosen at decode time and never switched: a static surface or an
// animation that advances its own frame state once started.
type Representation interface {
	// Bounds returns the decoded width and height.
	Bounds() (w, h int)
	// Pixels returns the single pixel surface of a static representation,
	// or nil when frames must be composited through DrawInto.
	Pixels() *image.RGBA
	// DrawInto draws the current frame into dst.
	DrawInto(dst *image.RGBA)
	// Start begins autonomous frame advancement. No-op for static images.
	Start()
	// Stop halts frame advancement. Idempotent.
	Stop()
	// Release drops the pixel data. The representation stays callable but
	// draws nothing afterwards.
	Release()
	// Animated reports whether the representation advances frames.
	Animated() bool
}

// Decode turns raw bytes into a Representation. The sizing callback receives
// the source's natural dimensions before any pixels are decoded and returns
// the subsample factor to decode at.
func Decode(data []byte, factor SizeFunc) (Representation, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	sample := 1
	if factor != nil {
		if s := factor(cfg.Width, cfg.Height); s > 1 {
			sample = s
		}
	}
	switch format {
	case "gif":
		return decodeGIF(data, sample)
	case "png", "apng":
		return decodeAPNG(data, sample, cfg.Width, cfg.Height)
	default:
		return decodeStatic(data, sample)
	}
}

// NewStatic wraps an already-decoded surface as a static representation.
func NewStatic(pix *image.RGBA) Representation {
	return &static{pix: pix}
}

func decodeStatic(data []byte, sample int) (Representation, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &static{pix: toRGBA(img, sample)}, nil
}

// static owns one decoded pixel surface.
type static struct {
	pix *image.RGBA
}

func (s *static) Bounds() (int, int) {
	if s.pix == nil {
		return 0, 0
	}
	b := s.pix.Bounds()
	return b.Dx(), b.Dy()
}

func (s *static) Pixels() *image.RGBA { return s.pix }

func (s *static) DrawInto(dst *image.RGBA) {
	if s.pix == nil {
		return
	}
	draw.Draw(dst, dst.Bounds(), s.pix, image.Point{}, draw.Src)
}

func (s *static) Start() {}
func (s *static) Stop()  {}

func (s *static) Release() { s.pix = nil }

func (s *static) Animated() bool { return false }

// toRGBA converts img to an RGBA surface anchored at the origin, downscaled
// by sample when it is above 1.
func toRGBA(img image.Image, sample int) *image.RGBA {
	b := img.Bounds()
	if sample <= 1 {
		if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
			return rgba
		}
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	w, h := b.Dx()/sample, b.Dy()/sample
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	cp := image.NewRGBA(img.Bounds())
	copy(cp.Pix, img.Pix)
	return cp
}
