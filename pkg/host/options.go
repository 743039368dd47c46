package host

import (
	"encoding/hex"
	"fmt"
	"time"
)

// CaptureMode selects how pixels are read back.
type CaptureMode int

const (
	// ModeWindow reads the off-screen drawable directly. Default.
	ModeWindow CaptureMode = iota

	// ModeScreen places the surface on screen without activating it and
	// grabs its desktop region. Fallback for GPU-composited editors whose
	// drawable reads back empty.
	ModeScreen
)

// Defaults for a capture run. The settle budget is a policy constant: the
// plugin ABI has no "first paint complete" signal, so the host pumps the
// native loop for a bounded window and then trusts whatever is drawn.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	DefaultSettle = 150 * time.Millisecond
)

// Options configures one capture run. The zero value is usable; withDefaults
// fills in the documented defaults.
type Options struct {
	// Requested canvas. The plugin may renegotiate at attach time, in which
	// case the output tracks the negotiated view size.
	Width  int
	Height int

	// ClassNameFilter narrows class selection to entries whose name contains
	// the filter (case-sensitive substring). Empty selects the first effect
	// class in enumeration order.
	ClassNameFilter string

	// ClassID selects a class by its exact 16-byte identifier. Takes
	// precedence over ClassNameFilter.
	ClassID *[16]byte

	// Settle bounds the render-settle wait after attach.
	Settle time.Duration

	Mode CaptureMode

	// ThumbWidth/ThumbHeight, when set, downscale the snapshot to fit the
	// box while preserving aspect ratio.
	ThumbWidth  int
	ThumbHeight int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	return o
}

// ParseClassID decodes a 32-hex-digit class identifier.
func ParseClassID(s string) (*[16]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid class id %q: %w", s, err)
	}
	if len(raw) != 16 {
		return nil, fmt.Errorf("invalid class id %q: want 16 bytes, got %d", s, len(raw))
	}
	var id [16]byte
	copy(id[:], raw)
	return &id, nil
}
