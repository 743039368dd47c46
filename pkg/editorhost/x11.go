//go:build linux

package editorhost

// #cgo LDFLAGS: -lX11 -lXcomposite
// #include <stdlib.h>
// #include <X11/Xlib.h>
// #include <X11/Xutil.h>
// #include <X11/extensions/Xcomposite.h>
//
// // XDestroyImage is a macro, so wrap it for cgo.
// static inline void vstface_destroy_ximage(XImage* img) {
//     XDestroyImage(img);
// }
import "C"
import (
	"fmt"
	"image"
	"time"
	"unsafe"

	"github.com/vstface/vstface/pkg/host"
)

const platformType = "X11EmbedWindowID"

// New returns the X11 editor host.
func New() host.EditorHost {
	return &x11Host{}
}

// x11Host attaches the view to an override-redirect window. Off-screen
// capture redirects the window into a composite pixmap so it never reaches
// the visible desktop; on-screen mode maps it normally for screen grabbing.
type x11Host struct {
	display    *C.Display
	win        C.Window
	view       host.View
	width      int
	height     int
	onScreen   bool
	redirected bool
	stage      stage
}

func (x *x11Host) Open(ctrl host.Controller, width, height int, onScreen bool) error {
	if x.stage != stageUnopened {
		return fmt.Errorf("%w: host already opened", host.ErrAttachFailed)
	}

	view, err := createEditorView(ctrl, platformType)
	if err != nil {
		return err
	}
	x.view = view
	x.stage = stageViewCreated

	x.display = C.XOpenDisplay(nil)
	if x.display == nil {
		return fmt.Errorf("%w: cannot open X display", host.ErrAttachFailed)
	}

	screen := C.XDefaultScreen(x.display)
	root := C.XRootWindow(x.display, screen)
	x.width, x.height, x.onScreen = width, height, onScreen

	x.win = C.XCreateSimpleWindow(x.display, root, 0, 0,
		C.uint(width), C.uint(height), 0,
		C.XBlackPixel(x.display, screen), C.XWhitePixel(x.display, screen))

	// Keep the window manager out of the attach/size negotiation.
	var attrs C.XSetWindowAttributes
	attrs.override_redirect = 1
	C.XChangeWindowAttributes(x.display, x.win, C.CWOverrideRedirect, &attrs)

	var major, minor C.int
	hasComposite := C.XCompositeQueryVersion(x.display, &major, &minor) != 0
	if !onScreen && hasComposite {
		// Manual redirect: the window renders into an off-screen pixmap and
		// is never composited to the desktop.
		C.XCompositeRedirectWindow(x.display, x.win, C.CompositeRedirectManual)
		x.redirected = true
	}

	C.XMapWindow(x.display, x.win)
	C.XSync(x.display, 0)

	if err := x.view.Attached(uintptr(x.win), platformType); err != nil {
		return fmt.Errorf("%w: %v", host.ErrAttachFailed, err)
	}
	x.stage = stageAttached

	// Many editors report their real preferred size only once attached.
	if rect, err := x.view.Size(); err == nil {
		if w, h := rect.Width(), rect.Height(); w > 0 && h > 0 && (w != width || h != height) {
			if err := x.ResizeContent(w, h); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *x11Host) ContentSize() (int, int) { return x.width, x.height }

func (x *x11Host) ResizeContent(width, height int) error {
	if x.stage != stageAttached {
		return fmt.Errorf("%w: not attached", host.ErrAttachFailed)
	}
	C.XResizeWindow(x.display, x.win, C.uint(width), C.uint(height))
	C.XSync(x.display, 0)
	x.width, x.height = width, height
	return x.view.SetSize(host.Rect{Right: int32(width), Bottom: int32(height)})
}

func (x *x11Host) ScreenRect() image.Rectangle {
	if x.stage != stageAttached {
		return image.Rectangle{}
	}
	var rx, ry C.int
	var child C.Window
	root := C.XRootWindow(x.display, C.XDefaultScreen(x.display))
	C.XTranslateCoordinates(x.display, x.win, root, 0, 0, &rx, &ry, &child)
	return image.Rect(int(rx), int(ry), int(rx)+x.width, int(ry)+x.height)
}

// Pump drains the X event queue for the settle budget, nudging the view with
// expose events so editors that paint lazily schedule their first frame.
func (x *x11Host) Pump(budget time.Duration) {
	if x.stage != stageAttached {
		return
	}
	deadline := time.Now().Add(budget)
	for {
		for C.XPending(x.display) > 0 {
			var ev C.XEvent
			C.XNextEvent(x.display, &ev)
		}
		C.XClearArea(x.display, x.win, 0, 0, 0, 0, 1)
		C.XSync(x.display, 0)
		if time.Now().After(deadline) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (x *x11Host) Snapshot() (*image.RGBA, error) {
	if x.stage != stageAttached {
		return nil, fmt.Errorf("surface not attached")
	}

	drawable := C.Drawable(x.win)
	var pixmap C.Pixmap
	if x.redirected {
		pixmap = C.XCompositeNameWindowPixmap(x.display, x.win)
		if pixmap == 0 {
			return nil, fmt.Errorf("no composite pixmap for window")
		}
		drawable = C.Drawable(pixmap)
	}

	allPlanes := ^C.ulong(0)
	ximg := C.XGetImage(x.display, drawable, 0, 0,
		C.uint(x.width), C.uint(x.height), allPlanes, C.ZPixmap)
	if pixmap != 0 {
		C.XFreePixmap(x.display, pixmap)
	}
	if ximg == nil {
		return nil, fmt.Errorf("XGetImage failed for %dx%d drawable", x.width, x.height)
	}
	defer C.vstface_destroy_ximage(ximg)

	if ximg.bits_per_pixel != 32 && ximg.bits_per_pixel != 24 {
		return nil, fmt.Errorf("unsupported pixel depth %d", int(ximg.bits_per_pixel))
	}

	w, h := int(ximg.width), int(ximg.height)
	stride := int(ximg.bytes_per_line)
	bpp := int(ximg.bits_per_pixel) / 8
	data := unsafe.Slice((*byte)(unsafe.Pointer(ximg.data)), stride*h)

	// ZPixmap rows are BGRX on little-endian displays.
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for xx := 0; xx < w; xx++ {
			dst[xx*4+0] = src[xx*bpp+2]
			dst[xx*4+1] = src[xx*bpp+1]
			dst[xx*4+2] = src[xx*bpp+0]
			dst[xx*4+3] = 0xFF
		}
	}
	return img, nil
}

func (x *x11Host) Close() error {
	if x.stage == stageClosed {
		return nil
	}
	if x.stage == stageAttached {
		_ = x.view.Removed()
	}
	if x.view != nil {
		x.view.Release()
		x.view = nil
	}
	if x.display != nil {
		if x.win != 0 {
			C.XDestroyWindow(x.display, x.win)
			x.win = 0
		}
		C.XCloseDisplay(x.display)
		x.display = nil
	}
	x.stage = stageClosed
	return nil
}
