package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"sync"
	"time"

	"github.com/kettek/apng"
)

// fallbackDelay stands in for unusable frame delays, matching what decoders
// substitute for unspecified timing.
const fallbackDelay = 100 * time.Millisecond

// animation owns composited animation frames and advances through them on
// its own goroutine once started.
type animation struct {
	mu      sync.Mutex
	frames  []*image.RGBA
	delays  []time.Duration
	index   int
	w, h    int
	running bool
	stop    chan struct{}
}

func newAnimation(frames []*image.RGBA, delays []time.Duration) *animation {
	b := frames[0].Bounds()
	return &animation{frames: frames, delays: delays, w: b.Dx(), h: b.Dy()}
}

func (a *animation) Bounds() (int, int) { return a.w, a.h }

// Pixels returns nil: animated frames must be flattened through DrawInto.
func (a *animation) Pixels() *image.RGBA { return nil }

func (a *animation) DrawInto(dst *image.RGBA) {
	a.mu.Lock()
	var frame *image.RGBA
	if a.frames != nil {
		frame = a.frames[a.index]
	}
	a.mu.Unlock()
	if frame == nil {
		return
	}
	draw.Draw(dst, dst.Bounds(), frame, image.Point{}, draw.Over)
}

func (a *animation) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running || len(a.frames) < 2 {
		return
	}
	a.running = true
	a.stop = make(chan struct{})
	go a.loop(a.stop)
}

func (a *animation) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	close(a.stop)
}

func (a *animation) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frames = nil
	a.index = 0
}

func (a *animation) Animated() bool { return true }

func (a *animation) loop(stop <-chan struct{}) {
	timer := time.NewTimer(a.currentDelay())
	defer timer.Stop()
	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			a.advance()
			timer.Reset(a.currentDelay())
		}
	}
}

func (a *animation) advance() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frames == nil {
		return
	}
	a.index = (a.index + 1) % len(a.frames)
}

func (a *animation) currentDelay() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.index >= len(a.delays) {
		return fallbackDelay
	}
	return a.delays[a.index]
}

func decodeGIF(data []byte, sample int) (Representation, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: gif has no frames", ErrDecode)
	}
	if len(g.Image) == 1 {
		return &static{pix: toRGBA(g.Image[0], sample)}, nil
	}

	frames := compositeGIF(g)
	delays := make([]time.Duration, len(frames))
	for i := range delays {
		if i < len(g.Delay) {
			delays[i] = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		if delays[i] <= 0 {
			delays[i] = fallbackDelay
		}
	}
	return newAnimation(scaleFrames(frames, sample), delays), nil
}

// compositeGIF flattens every GIF frame onto a shared canvas, honoring the
// frame disposal modes, so each element is a full renderable image.
func compositeGIF(g *gif.GIF) []*image.RGBA {
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Dx(), b.Dy()
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	frames := make([]*image.RGBA, len(g.Image))
	for i, frame := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var prev *image.RGBA
		if disposal == gif.DisposalPrevious {
			prev = cloneRGBA(canvas)
		}
		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames[i] = cloneRGBA(canvas)
		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = prev
		}
	}
	return frames
}

func decodeAPNG(data []byte, sample, w, h int) (Representation, error) {
	a, err := apng.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	var anim []apng.Frame
	for _, f := range a.Frames {
		// A default image marked hidden is not part of the animation.
		if f.IsDefault {
			continue
		}
		anim = append(anim, f)
	}
	if len(anim) < 2 {
		return decodeStatic(data, sample)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	frames := make([]*image.RGBA, len(anim))
	delays := make([]time.Duration, len(anim))
	for i, f := range anim {
		var prev *image.RGBA
		if f.DisposeOp == apng.DISPOSE_OP_PREVIOUS {
			prev = cloneRGBA(canvas)
		}
		fb := f.Image.Bounds()
		rect := image.Rect(f.XOffset, f.YOffset, f.XOffset+fb.Dx(), f.YOffset+fb.Dy())
		op := draw.Op(draw.Over)
		if f.BlendOp == apng.BLEND_OP_SOURCE {
			op = draw.Src
		}
		draw.Draw(canvas, rect, f.Image, fb.Min, op)
		frames[i] = cloneRGBA(canvas)
		switch f.DisposeOp {
		case apng.DISPOSE_OP_BACKGROUND:
			draw.Draw(canvas, rect, image.Transparent, image.Point{}, draw.Src)
		case apng.DISPOSE_OP_PREVIOUS:
			canvas = prev
		}

		num, den := int(f.DelayNumerator), int(f.DelayDenominator)
		if den == 0 {
			den = 100
		}
		delays[i] = time.Duration(num) * time.Second / time.Duration(den)
		if delays[i] <= 0 {
			delays[i] = fallbackDelay
		}
	}
	return newAnimation(scaleFrames(frames, sample), delays), nil
}

func scaleFrames(frames []*image.RGBA, sample int) []*image.RGBA {
	if sample <= 1 {
		return frames
	}
	out := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		out[i] = toRGBA(f, sample)
	}
	return out
}
