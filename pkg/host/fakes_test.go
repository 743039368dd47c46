package host

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// Test doubles for the plugin ABI and the platform runner. They record the
// pipeline's calls so tests can assert acquisition/teardown ordering, which
// is the contract the plugin ABI actually cares about.

type callLog struct {
	calls []string
}

func (l *callLog) add(name string) { l.calls = append(l.calls, name) }

func (l *callLog) index(name string) int {
	for i, c := range l.calls {
		if c == name {
			return i
		}
	}
	return -1
}

func classID(b byte) [16]byte {
	var id [16]byte
	id[0] = b
	return id
}

type fakeView struct {
	log       *callLog
	preferred Rect
	size      Rect
	failAtt   bool
}

func (v *fakeView) PlatformTypeSupported(string) bool { return true }

func (v *fakeView) Attached(parent uintptr, platformType string) error {
	v.log.add("view.attached")
	if v.failAtt {
		return fmt.Errorf("plugin rejected parent")
	}
	v.size = v.preferred
	return nil
}

func (v *fakeView) Removed() error {
	v.log.add("view.removed")
	return nil
}

func (v *fakeView) Size() (Rect, error) { return v.preferred, nil }

func (v *fakeView) SetSize(r Rect) error {
	v.size = r
	return nil
}

func (v *fakeView) Release() { v.log.add("view.release") }

type fakeController struct {
	log      *callLog
	view     *fakeView
	noView   bool
	failInit bool
}

func (c *fakeController) Initialize() error {
	c.log.add("controller.initialize")
	if c.failInit {
		return fmt.Errorf("controller refused")
	}
	return nil
}

func (c *fakeController) Terminate() error {
	c.log.add("controller.terminate")
	return nil
}

func (c *fakeController) CreateView(platformType string) (View, error) {
	if c.noView {
		return nil, nil
	}
	return c.view, nil
}

func (c *fakeController) Release() { c.log.add("controller.release") }

type fakeComponent struct {
	log          *callLog
	controllerID [16]byte
	failInit     bool
}

func (c *fakeComponent) Initialize() error {
	c.log.add("component.initialize")
	if c.failInit {
		return fmt.Errorf("component refused")
	}
	return nil
}

func (c *fakeComponent) Terminate() error {
	c.log.add("component.terminate")
	return nil
}

func (c *fakeComponent) ControllerClassID() ([16]byte, error) { return c.controllerID, nil }

func (c *fakeComponent) Release() { c.log.add("component.release") }

type fakeFactory struct {
	classes     []ClassInfo
	components  map[[16]byte]Component
	controllers map[[16]byte]Controller
}

func (f *fakeFactory) CountClasses() int { return len(f.classes) }

func (f *fakeFactory) ClassInfo(i int) (ClassInfo, error) { return f.classes[i], nil }

func (f *fakeFactory) CreateComponent(id [16]byte) (Component, error) {
	c, ok := f.components[id]
	if !ok {
		return nil, fmt.Errorf("no component class %x", id)
	}
	return c, nil
}

func (f *fakeFactory) CreateController(id [16]byte) (Controller, error) {
	c, ok := f.controllers[id]
	if !ok {
		return nil, fmt.Errorf("no controller class %x", id)
	}
	return c, nil
}

type fakeModule struct {
	log     *callLog
	factory Factory
}

func (m *fakeModule) Factory() (Factory, error) { return m.factory, nil }

func (m *fakeModule) Unload() error {
	m.log.add("module.unload")
	return nil
}

// fakeEditor behaves like a platform runner: it creates the view through the
// controller, attaches it, honors the attach-time size renegotiation and
// detaches on Close.
type fakeEditor struct {
	log      *callLog
	view     View
	width    int
	height   int
	onScreen bool
	failSnap bool
	closed   bool
}

func (e *fakeEditor) Open(ctrl Controller, width, height int, onScreen bool) error {
	e.log.add("editor.open")
	view, err := ctrl.CreateView("Test")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoEditor, err)
	}
	if view == nil {
		return ErrNoEditor
	}
	e.view = view
	e.width, e.height, e.onScreen = width, height, onScreen

	if err := view.Attached(1, "Test"); err != nil {
		return fmt.Errorf("%w: %v", ErrAttachFailed, err)
	}
	if rect, err := view.Size(); err == nil {
		if w, h := rect.Width(), rect.Height(); w > 0 && h > 0 && (w != width || h != height) {
			e.width, e.height = w, h
			if err := view.SetSize(rect); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *fakeEditor) ContentSize() (int, int) { return e.width, e.height }

func (e *fakeEditor) ResizeContent(w, h int) error {
	e.width, e.height = w, h
	return nil
}

func (e *fakeEditor) ScreenRect() image.Rectangle {
	return image.Rect(40, 40, 40+e.width, 40+e.height)
}

func (e *fakeEditor) Pump(time.Duration) { e.log.add("editor.pump") }

func (e *fakeEditor) Snapshot() (*image.RGBA, error) {
	if e.failSnap {
		return nil, fmt.Errorf("readback failed")
	}
	img := image.NewRGBA(image.Rect(0, 0, e.width, e.height))
	for i := range img.Pix {
		img.Pix[i] = 0x7F
	}
	img.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	return img, nil
}

func (e *fakeEditor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.log.add("editor.close")
	if e.view != nil {
		_ = e.view.Removed()
		e.view.Release()
		e.view = nil
	}
	return nil
}
