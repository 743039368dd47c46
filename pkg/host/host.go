// Package host drives the capture pipeline: load a plugin module, open a
// component/controller session, attach the editor view to an off-screen
// surface, settle, snapshot and encode. The plugin ABI and the platform
// windowing live behind the interfaces below so the pipeline itself stays
// platform-free.
package host

import (
	"image"
	"time"
)

// Rect mirrors the plugin ABI's view rectangle.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int { return int(r.Right - r.Left) }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int { return int(r.Bottom - r.Top) }

// ClassInfo describes one class entry exposed by a plugin factory.
type ClassInfo struct {
	ID          [16]byte
	Cardinality int32
	Category    string
	Name        string
}

// Module is a loaded plugin bundle. Unload must be called exactly once,
// after every object derived from the factory has been released.
type Module interface {
	Factory() (Factory, error)
	Unload() error
}

// Factory enumerates and instantiates the classes of a loaded module.
type Factory interface {
	CountClasses() int
	ClassInfo(index int) (ClassInfo, error)
	CreateComponent(classID [16]byte) (Component, error)
	CreateController(classID [16]byte) (Controller, error)
}

// Component is the processing half of a plugin instance. The host only
// exercises the lifecycle and the controller pairing; audio is never run.
type Component interface {
	Initialize() error
	Terminate() error
	ControllerClassID() ([16]byte, error)
	Release()
}

// Controller is the UI half of a plugin instance.
type Controller interface {
	Initialize() error
	Terminate() error

	// CreateView asks for the editor view for a platform type tag.
	// (nil, nil) means the plugin has no editor.
	CreateView(platformType string) (View, error)

	Release()
}

// View is the plugin's editor capability. It is valid only while the owning
// controller is alive and must be detached (Removed) before release.
type View interface {
	PlatformTypeSupported(platformType string) bool
	Attached(parent uintptr, platformType string) error
	Removed() error
	Size() (Rect, error)
	SetSize(Rect) error
	Release()
}

// EditorHost owns the native off-screen surface the view is attached to.
// Implementations are per platform; see pkg/editorhost.
//
// State machine: Unopened -> ViewCreated -> Attached -> (Resized) -> Closed.
// Close is idempotent and required before the controller is torn down.
type EditorHost interface {
	// Open creates the view, the surface, attaches and negotiates the size.
	// onScreen places the surface on the visible desktop without activating
	// it (screen-grab capture mode); otherwise it is kept off screen.
	Open(ctrl Controller, width, height int, onScreen bool) error

	// ContentSize reports the negotiated surface size.
	ContentSize() (int, int)

	// ResizeContent forces a fixed canvas onto both surface and view.
	ResizeContent(width, height int) error

	// ScreenRect reports the surface's rectangle in desktop coordinates.
	ScreenRect() image.Rectangle

	// Pump runs the native event/draw loop for a bounded settle window.
	Pump(budget time.Duration)

	// Snapshot reads back the surface's current pixels.
	Snapshot() (*image.RGBA, error)

	Close() error
}
