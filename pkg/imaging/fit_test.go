package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFitSize(t *testing.T) {
	cases := []struct {
		name               string
		sw, sh, maxW, maxH int
		wantW, wantH       int
	}{
		{"AlreadyInside", 320, 240, 640, 480, 320, 240},
		{"WidthBound", 1024, 768, 512, 768, 512, 384},
		{"HeightBound", 400, 300, 400, 150, 200, 150},
		{"BothBound", 1024, 768, 200, 200, 200, 150},
		{"ExtremeAspect", 4000, 2, 100, 100, 100, 1},
		{"Square", 500, 500, 128, 128, 128, 128},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := FitSize(tc.sw, tc.sh, tc.maxW, tc.maxH)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestFitSizeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sw := rapid.IntRange(1, 8192).Draw(t, "sw")
		sh := rapid.IntRange(1, 8192).Draw(t, "sh")
		maxW := rapid.IntRange(1, 4096).Draw(t, "maxW")
		maxH := rapid.IntRange(1, 4096).Draw(t, "maxH")

		w, h := FitSize(sw, sh, maxW, maxH)

		if w > maxW || h > maxH {
			t.Fatalf("FitSize(%d,%d,%d,%d) = %dx%d exceeds the box", sw, sh, maxW, maxH, w, h)
		}
		if w < 1 || h < 1 {
			t.Fatalf("FitSize(%d,%d,%d,%d) = %dx%d collapsed below 1", sw, sh, maxW, maxH, w, h)
		}
		if sw <= maxW && sh <= maxH && (w != sw || h != sh) {
			t.Fatalf("FitSize(%d,%d,%d,%d) = %dx%d resized an image already inside the box", sw, sh, maxW, maxH, w, h)
		}
	})
}

func TestFitWithinDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 600))
	dst := FitWithin(src, 400, 400)
	assert.Equal(t, 400, dst.Bounds().Dx())
	assert.Equal(t, 300, dst.Bounds().Dy())
}

func TestFitWithinNeverUpscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	dst := FitWithin(src, 400, 400)
	assert.Same(t, src, dst)
}

func TestFitWithinIgnoresEmptyBox(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	assert.Same(t, src, FitWithin(src, 0, 0))
	assert.Same(t, src, FitWithin(src, -1, 200))
}

func TestParseFitSpec(t *testing.T) {
	w, h, err := ParseFitSpec("320x240")
	assert.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)

	for _, bad := range []string{"", "320", "320x", "x240", "axb", "0x100", "100x-5"} {
		_, _, err := ParseFitSpec(bad)
		assert.Error(t, err, "spec %q", bad)
	}
}
