package sampling

// Policy maps a source image's natural dimensions to the integer subsample
// factor used during decode.
type Policy func(naturalW, naturalH int) int

// SampleSize returns the integer factor by which a srcW x srcH image must be
// subsampled during decode so the result fits within dstW x dstH on both
// axes. The factor is never below 1: sources already inside the bounds
// decode at full size. Non-positive target bounds are a programming error.
func SampleSize(srcW, srcH, dstW, dstH int) int {
	if dstW <= 0 || dstH <= 0 {
		panic("sampling: target bounds must be positive")
	}
	factor := srcW / dstW
	if f := srcH / dstH; f > factor {
		factor = f
	}
	if factor < 1 {
		factor = 1
	}
	return factor
}

// FullView bounds the decode at twice the display dimensions, enough detail
// for zooming without holding the full source in memory.
func FullView(displayW, displayH int) Policy {
	return func(w, h int) int {
		return SampleSize(w, h, displayW*2, displayH*2)
	}
}

// Thumbnail bounds the decode at a fixed maximum dimension, for search
// results and grid cells.
func Thumbnail(maxDim int) Policy {
	return func(w, h int) int {
		return SampleSize(w, h, maxDim, maxDim)
	}
}
