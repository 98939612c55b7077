package sampling

import "testing"

func TestSampleSize(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
		want                   int
	}{
		{"already fits", 800, 600, 1000, 1000, 1},
		{"full view 4000x3000", 4000, 3000, 1000, 1000, 4},
		{"tall source", 1000, 4000, 1000, 1000, 4},
		{"exact multiple", 2000, 2000, 1000, 1000, 2},
		{"tiny source", 10, 10, 1000, 1000, 1},
		{"non-square bounds", 4096, 2160, 2048, 1080, 2},
		{"one pixel target", 500, 300, 1, 1, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleSize(tt.srcW, tt.srcH, tt.dstW, tt.dstH)
			if got != tt.want {
				t.Errorf("SampleSize(%d, %d, %d, %d) = %d, want %d",
					tt.srcW, tt.srcH, tt.dstW, tt.dstH, got, tt.want)
			}
		})
	}
}

// The factor is always >= 1, and the subsampled size never misses the bound
// by more than one decode step (integer factors cannot do better).
func TestSampleSizeBounds(t *testing.T) {
	dims := []int{1, 7, 100, 333, 1000, 4096}
	for _, srcW := range dims {
		for _, srcH := range dims {
			for _, dst := range []int{1, 64, 500, 2000} {
				f := SampleSize(srcW, srcH, dst, dst)
				if f < 1 {
					t.Fatalf("SampleSize(%d, %d, %d, %d) = %d < 1", srcW, srcH, dst, dst, f)
				}
				// One more step would fit both axes.
				if (srcW+f)/(f+1) > dst || (srcH+f)/(f+1) > dst {
					t.Errorf("SampleSize(%d, %d, %d, %d) = %d leaves more than one step of slack",
						srcW, srcH, dst, dst, f)
				}
			}
		}
	}
}

func TestSampleSizePanicsOnInvalidBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("SampleSize with zero target bounds did not panic")
		}
	}()
	SampleSize(100, 100, 0, 100)
}

func TestFullViewPolicy(t *testing.T) {
	// Display 500x500 -> bounds 1000x1000.
	p := FullView(500, 500)
	if got := p(4000, 3000); got != 4 {
		t.Errorf("FullView(500, 500)(4000, 3000) = %d, want 4", got)
	}
	if got := p(900, 900); got != 1 {
		t.Errorf("FullView(500, 500)(900, 900) = %d, want 1", got)
	}
}

func TestThumbnailPolicy(t *testing.T) {
	p := Thumbnail(100)
	if got := p(400, 300); got != 4 {
		t.Errorf("Thumbnail(100)(400, 300) = %d, want 4", got)
	}
	if got := p(50, 50); got != 1 {
		t.Errorf("Thumbnail(100)(50, 50) = %d, want 1", got)
	}
}
