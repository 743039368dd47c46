package host

import (
	"fmt"
	"image"
	"runtime"

	"github.com/vstface/vstface/pkg/debug"
	"github.com/vstface/vstface/pkg/imaging"
)

// Capturer wires the pipeline to a concrete module loader, editor host and
// screen grabber. Each CapturePlugin call is an isolated cycle: everything it
// opens is torn down before it returns, so captures can be repeated within
// one process.
type Capturer struct {
	// Load opens a plugin bundle. Usually vst3.LoadModule.
	Load func(bundlePath string) (Module, error)

	// NewHost creates the platform editor host. Usually editorhost.New.
	NewHost func() EditorHost

	// GrabScreen reads a desktop region for ModeScreen. Usually
	// editorhost.GrabScreenRect.
	GrabScreen func(image.Rectangle) (*image.RGBA, error)

	// Log receives stage-by-stage progress. Nil means the package default.
	Log *debug.Logger
}

// CapturePlugin runs one full capture: load, session, attach, settle,
// snapshot, encode. On any failure the output file is left untouched and a
// wrapped stage error is returned. Teardown is deferred in reverse
// acquisition order on every exit path.
//
// The plugin ABI requires lifecycle and view calls on one logical thread, so
// the whole pipeline is pinned to the calling OS thread.
func (c *Capturer) CapturePlugin(bundlePath, outputPath string, opts Options) error {
	opts = opts.withDefaults()
	log := c.Log
	if log == nil {
		log = debug.Default()
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log.Debug("loading %s", bundlePath)
	module, err := c.Load(bundlePath)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := module.Unload(); uerr != nil {
			log.Warn("unload: %v", uerr)
		}
	}()

	factory, err := module.Factory()
	if err != nil {
		return err
	}

	session, err := OpenSession(factory, opts)
	if err != nil {
		return err
	}
	defer session.Close()
	log.Debug("opened session for class %q", session.Class().Name)

	editor := c.NewHost()
	defer func() {
		if cerr := editor.Close(); cerr != nil {
			log.Warn("editor close: %v", cerr)
		}
	}()

	if err := editor.Open(session.Controller(), opts.Width, opts.Height, opts.Mode == ModeScreen); err != nil {
		return err
	}
	w, h := editor.ContentSize()
	log.Debug("attached, negotiated %dx%d", w, h)

	editor.Pump(opts.Settle)

	img, err := c.snapshot(editor, opts)
	if err != nil {
		return err
	}
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%w: %dx%d surface", ErrCaptureEmpty, w, h)
	}

	if opts.ThumbWidth > 0 && opts.ThumbHeight > 0 {
		img = imaging.FitWithin(img, opts.ThumbWidth, opts.ThumbHeight)
	}

	if err := imaging.WritePNG(outputPath, img); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	log.Info("captured %s -> %s (%dx%d)", bundlePath, outputPath, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func (c *Capturer) snapshot(editor EditorHost, opts Options) (*image.RGBA, error) {
	if opts.Mode == ModeScreen {
		if c.GrabScreen == nil {
			return nil, fmt.Errorf("%w: no screen grabber wired", ErrCaptureEmpty)
		}
		img, err := c.GrabScreen(editor.ScreenRect())
		if err != nil {
			return nil, fmt.Errorf("%w: screen grab: %v", ErrCaptureEmpty, err)
		}
		return img, nil
	}
	img, err := editor.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureEmpty, err)
	}
	return img, nil
}
