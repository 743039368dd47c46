package imaging

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// FitWithin downscales src to fit inside maxW x maxH, preserving aspect
// ratio. Images already inside the box are returned unchanged; thumbnails
// are never upscaled.
func FitWithin(src *image.RGBA, maxW, maxH int) *image.RGBA {
	if maxW <= 0 || maxH <= 0 {
		return src
	}
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw <= maxW && sh <= maxH {
		return src
	}

	w, h := FitSize(sw, sh, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// FitSize computes the largest size not exceeding maxW x maxH that keeps the
// sw:sh aspect ratio. Both results are at least 1.
func FitSize(sw, sh, maxW, maxH int) (int, int) {
	w, h := sw, sh
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ParseFitSpec parses a "WxH" bounding box, e.g. "320x240".
func ParseFitSpec(spec string) (int, int, error) {
	parts := strings.SplitN(spec, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", spec)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", spec, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", spec, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", spec)
	}
	return w, h, nil
}
