package editorhost

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// GrabScreenRect reads a desktop region. Used by the screen capture mode,
// where the surface is placed on screen without activation and its pixels
// are taken from the compositor's output instead of the drawable.
func GrabScreenRect(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("empty screen rectangle")
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	return img, nil
}
