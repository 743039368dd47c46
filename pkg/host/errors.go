package host

import "errors"

// Stage errors. Every pipeline failure wraps exactly one of these so callers
// can tell which stage aborted the capture.
var (
	// Loader stage.
	ErrBundleNotFound = errors.New("bundle not found")
	ErrNotAPlugin     = errors.New("not a plugin bundle")
	ErrLoadFailed     = errors.New("module load failed")

	// Session stage.
	ErrNoMatchingClass    = errors.New("no matching effect class")
	ErrControllerMismatch = errors.New("controller class not in factory")
	ErrInitializeFailed   = errors.New("initialize failed")

	// Runner stage.
	ErrNoEditor     = errors.New("plugin has no editor")
	ErrAttachFailed = errors.New("view attach failed")

	// Snapshot and encode stages.
	ErrCaptureEmpty = errors.New("capture produced no pixels")
	ErrEncodeFailed = errors.New("image encode failed")
)
