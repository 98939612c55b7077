// Package resource owns the decoded representation of one displayable image
// and bridges it into texture uploads. A Resource is created by one of the
// construction entry points in frontend.go, optionally started, drawn any
// number of times, and finally recycled. Recycle is explicit: dropping the
// last reference does not release the pixel data.
package resource

import (
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/junsooki/AirView/internal/codec"
	"github.com/junsooki/AirView/internal/texture"
)

// disposeTiming says when the caller-supplied release callback fires.
type disposeTiming int

const (
	// disposeImmediate fires the callback during construction: a software
	// decode has materialized the pixels, the input bytes are done with.
	disposeImmediate disposeTiming = iota
	// disposeAtRecycle defers the callback to Recycle: the representation
	// may keep reading from the input bytes while animating.
	disposeAtRecycle
)

// frameInterval is the redraw hint for animated resources, one 60 Hz tick.
const frameInterval = 16 * time.Millisecond

// Resource holds exactly one decoded representation, static or animated,
// fixed at construction. All methods are safe for concurrent use; Recycle
// acts as a barrier, so no caller observes pixel data after it returns.
type Resource struct {
	mu       sync.Mutex
	rep      codec.Representation
	scratch  *image.RGBA
	uploader texture.Uploader

	width  int
	height int

	started  bool
	recycled bool

	dispose func()
	timing  disposeTiming
}

func newResource(rep codec.Representation, up texture.Uploader, dispose func(), timing disposeTiming) *Resource {
	w, h := rep.Bounds()
	r := &Resource{
		rep:      rep,
		uploader: up,
		width:    w,
		height:   h,
		dispose:  dispose,
		timing:   timing,
	}
	if timing == disposeImmediate {
		r.fireDispose()
	}
	return r
}

// fireDispose invokes the release callback at most once.
func (r *Resource) fireDispose() {
	if r.dispose == nil {
		return
	}
	d := r.dispose
	r.dispose = nil
	d()
}

// Start begins animation playback. It takes effect once per resource
// lifetime; subsequent calls and calls on static or recycled resources do
// nothing.
func (r *Resource) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recycled || r.started {
		return
	}
	r.started = true
	r.rep.Start()
}

// UploadFrame hands the current frame to the texture uploader. Animated
// frames are first flattened into the scratch surface, cleared to
// transparent each time; static images hand over their surface directly.
// Silently returns if the resource is recycled or has no pixels.
func (r *Resource) UploadFrame(init bool, x, y, w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recycled || r.uploader == nil {
		return
	}
	if pix := r.rep.Pixels(); pix != nil {
		r.uploader.Upload(pix, init, x, y, w, h)
		return
	}
	if !r.rep.Animated() {
		return
	}
	if r.scratch == nil {
		r.scratch = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	}
	draw.Draw(r.scratch, r.scratch.Bounds(), image.Transparent, image.Point{}, draw.Src)
	r.rep.DrawInto(r.scratch)
	r.uploader.Upload(r.scratch, init, x, y, w, h)
}

// FrameInterval returns the suggested redraw interval: one display tick for
// a live animated resource, 0 when no periodic redraw is needed.
func (r *Resource) FrameInterval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recycled || !r.rep.Animated() {
		return 0
	}
	return frameInterval
}

// IsOpaque always reports false. Composited animation frames and decoded
// PNG/WebP surfaces may carry transparency that an opaque fast-path blit
// would corrupt.
func (r *Resource) IsOpaque() bool { return false }

// Recycle stops playback, releases the representation and scratch surface,
// and fires a deferred release callback. Safe to call from any thread and
// more than once; everything after the first call is a no-op.
func (r *Resource) Recycle() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recycled {
		return
	}
	r.recycled = true
	r.rep.Stop()
	r.rep.Release()
	r.scratch = nil
	if r.timing == disposeAtRecycle {
		r.fireDispose()
	}
	r.dispose = nil
}

func (r *Resource) IsRecycled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recycled
}

// Width reports the decoded width. Still valid after Recycle.
func (r *Resource) Width() int { return r.width }

// Height reports the decoded height. Still valid after Recycle.
func (r *Resource) Height() int { return r.height }
