package giffix

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
)

// encodeGIF builds a small GIF with the given per-frame delays in
// hundredths of a second. Disposal is set so the encoder always emits a
// graphic control extension, even for zero delays.
func encodeGIF(t *testing.T, delays []int) []byte {
	t.Helper()
	g := &gif.GIF{}
	pal := color.Palette{
		color.RGBA{A: 0xFF},
		color.RGBA{R: 0xFF, A: 0xFF},
		color.RGBA{G: 0xFF, A: 0xFF},
		color.RGBA{B: 0xFF, A: 0xFF},
	}
	for i, d := range delays {
		pm := image.NewPaletted(image.Rect(0, 0, 4, 4), pal)
		for p := range pm.Pix {
			pm.Pix[p] = uint8(i % len(pal))
		}
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, d)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func TestIsGIF(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{"gif89a", []byte("GIF89a with trailing data"), true},
		{"gif87a", []byte("GIF87a"), true},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, false},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, false},
		{"short", []byte("GIF"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGIF(tt.header); got != tt.want {
				t.Errorf("IsGIF(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestRewriteRaisesSmallDelays(t *testing.T) {
	src := encodeGIF(t, []int{0, 1, 50})
	out, err := Rewrite(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode rewritten gif: %v", err)
	}
	want := []int{MinDelay, MinDelay, 50}
	for i, w := range want {
		if g.Delay[i] != w {
			t.Errorf("frame %d delay = %d, want %d", i, g.Delay[i], w)
		}
	}
}

func TestRewritePreservesCompliantStream(t *testing.T) {
	src := encodeGIF(t, []int{50, 25})
	out, err := Rewrite(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Error("rewrite of a compliant stream changed bytes")
	}
}

func TestRewriteRejectsNonGIF(t *testing.T) {
	if _, err := Rewrite(bytes.NewReader([]byte("definitely not a gif"))); err == nil {
		t.Error("Rewrite accepted a non-gif stream")
	}
}

func TestRewriteRejectsTruncatedStream(t *testing.T) {
	src := encodeGIF(t, []int{10, 10})
	for _, n := range []int{14, len(src) - 3} {
		if _, err := Rewrite(bytes.NewReader(src[:n])); err == nil {
			t.Errorf("Rewrite accepted a stream truncated to %d bytes", n)
		}
	}
}
