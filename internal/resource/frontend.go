package resource

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/junsooki/AirView/internal/codec"
	"github.com/junsooki/AirView/internal/giffix"
	"github.com/junsooki/AirView/internal/sampling"
	"github.com/junsooki/AirView/internal/texture"
)

// OpenFile memory-maps path read-only and decodes it into a Resource. GIF
// sources are run through the timing rewrite first, after which the mapping
// is released; for anything else the mapping is decoded directly and its
// release follows the usual rule (after construction for static images, at
// Recycle for animated ones).
func OpenFile(path string, policy sampling.Policy, up texture.Uploader) (*Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	release := func() {
		m.Unmap()
		f.Close()
	}

	if giffix.IsGIF(m) {
		data, err := giffix.Rewrite(bytes.NewReader(m))
		release()
		if err != nil {
			return nil, err
		}
		return construct(data, nil, policy, up)
	}

	r, err := construct(m, release, policy, up)
	if err != nil {
		release()
		return nil, err
	}
	return r, nil
}

// FromBytes decodes a caller-owned buffer. release is invoked at most once:
// as soon as the bytes are copied for the timing rewrite, immediately after
// construction when a software decode has consumed them, or at Recycle when
// the representation keeps them. If no resource is constructed and the copy
// was never made, release is not called and the caller still owns the buffer.
func FromBytes(data []byte, release func(), policy sampling.Policy, up texture.Uploader) (*Resource, error) {
	if giffix.IsGIF(data) {
		rewritten, err := giffix.Rewrite(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		// The rewritten copy is self-sufficient.
		if release != nil {
			release()
		}
		return construct(rewritten, nil, policy, up)
	}
	return construct(data, release, policy, up)
}

// FromImage wraps an already-decoded surface as a static Resource. No
// sniffing, no timing rewrite, no release callback.
func FromImage(img *image.RGBA, up texture.Uploader) *Resource {
	if img == nil {
		panic("resource: nil image")
	}
	return newResource(codec.NewStatic(img), up, nil, disposeImmediate)
}

func construct(data []byte, release func(), policy sampling.Policy, up texture.Uploader) (*Resource, error) {
	rep, err := codec.Decode(data, codec.SizeFunc(policy))
	if err != nil {
		return nil, err
	}
	timing := disposeImmediate
	if rep.Animated() {
		timing = disposeAtRecycle
	}
	return newResource(rep, up, release, timing), nil
}
