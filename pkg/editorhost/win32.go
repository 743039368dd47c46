//go:build windows

package editorhost

import (
	"fmt"
	"image"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/vstface/vstface/pkg/host"
)

const platformType = "HWND"

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procMoveWindow       = user32.NewProc("MoveWindow")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
	procPrintWindow      = user32.NewProc("PrintWindow")

	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
)

const (
	wsPopup             = 0x80000000
	wsExToolWindow      = 0x00000080
	wsExNoActivate      = 0x08000000
	swShowNoActivate    = 4
	pmRemove            = 1
	pwRenderFullContent = 2
	biRGB               = 0
	dibRGBColors        = 0

	// Parked coordinate for surfaces that must never reach the desktop.
	offscreenOrigin = -32000
)

type winMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

type winRect struct {
	left, top, right, bottom int32
}

type bitmapInfoHeader struct {
	size          uint32
	width         int32
	height        int32
	planes        uint16
	bitCount      uint16
	compression   uint32
	sizeImage     uint32
	xPelsPerMeter int32
	yPelsPerMeter int32
	clrUsed       uint32
	clrImportant  uint32
}

type bitmapInfo struct {
	header bitmapInfoHeader
	colors [1]uint32
}

// New returns the win32 editor host.
func New() host.EditorHost {
	return &win32Host{}
}

// win32Host attaches the view to a popup window created from the predefined
// Static class. Off-screen captures park the window at offscreenOrigin;
// PrintWindow renders it into a DIB section either way.
type win32Host struct {
	hwnd   uintptr
	view   host.View
	width  int
	height int
	stage  stage
}

func (w *win32Host) Open(ctrl host.Controller, width, height int, onScreen bool) error {
	if w.stage != stageUnopened {
		return fmt.Errorf("%w: host already opened", host.ErrAttachFailed)
	}

	view, err := createEditorView(ctrl, platformType)
	if err != nil {
		return err
	}
	w.view = view
	w.stage = stageViewCreated

	x := offscreenOrigin
	if onScreen {
		x = 80
	}
	className, _ := windows.UTF16PtrFromString("Static")
	hwnd, _, _ := procCreateWindowExW.Call(
		wsExToolWindow|wsExNoActivate,
		uintptr(unsafe.Pointer(className)),
		0,
		wsPopup,
		uintptr(x), uintptr(x),
		uintptr(width), uintptr(height),
		0, 0, 0, 0,
	)
	if hwnd == 0 {
		return fmt.Errorf("%w: CreateWindowEx failed", host.ErrAttachFailed)
	}
	w.hwnd = hwnd
	w.width, w.height = width, height
	procShowWindow.Call(hwnd, swShowNoActivate)

	if err := w.view.Attached(w.hwnd, platformType); err != nil {
		return fmt.Errorf("%w: %v", host.ErrAttachFailed, err)
	}
	w.stage = stageAttached

	// Many editors report their real preferred size only once attached.
	if rect, err := w.view.Size(); err == nil {
		if vw, vh := rect.Width(), rect.Height(); vw > 0 && vh > 0 && (vw != width || vh != height) {
			if err := w.ResizeContent(vw, vh); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *win32Host) ContentSize() (int, int) { return w.width, w.height }

func (w *win32Host) ResizeContent(width, height int) error {
	if w.stage != stageAttached {
		return fmt.Errorf("%w: not attached", host.ErrAttachFailed)
	}
	var r winRect
	procGetWindowRect.Call(w.hwnd, uintptr(unsafe.Pointer(&r)))
	procMoveWindow.Call(w.hwnd, uintptr(r.left), uintptr(r.top), uintptr(width), uintptr(height), 1)
	w.width, w.height = width, height
	return w.view.SetSize(host.Rect{Right: int32(width), Bottom: int32(height)})
}

func (w *win32Host) ScreenRect() image.Rectangle {
	if w.stage != stageAttached {
		return image.Rectangle{}
	}
	var r winRect
	procGetWindowRect.Call(w.hwnd, uintptr(unsafe.Pointer(&r)))
	return image.Rect(int(r.left), int(r.top), int(r.right), int(r.bottom))
}

// Pump drains the thread's message queue for the settle budget and forces a
// synchronous WM_PAINT each cycle.
func (w *win32Host) Pump(budget time.Duration) {
	if w.stage != stageAttached {
		return
	}
	deadline := time.Now().Add(budget)
	var m winMsg
	for {
		for {
			got, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
			if got == 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		}
		procUpdateWindow.Call(w.hwnd)
		if time.Now().After(deadline) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (w *win32Host) Snapshot() (*image.RGBA, error) {
	if w.stage != stageAttached {
		return nil, fmt.Errorf("surface not attached")
	}

	memDC, _, _ := procCreateCompatibleDC.Call(0)
	if memDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	bi := bitmapInfo{header: bitmapInfoHeader{
		size:        uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		width:       int32(w.width),
		height:      -int32(w.height), // top-down rows
		planes:      1,
		bitCount:    32,
		compression: biRGB,
	}}
	var bits unsafe.Pointer
	hbm, _, _ := procCreateDIBSection.Call(0,
		uintptr(unsafe.Pointer(&bi)), dibRGBColors,
		uintptr(unsafe.Pointer(&bits)), 0, 0)
	if hbm == 0 || bits == nil {
		return nil, fmt.Errorf("CreateDIBSection failed for %dx%d", w.width, w.height)
	}
	defer procDeleteObject.Call(hbm)

	old, _, _ := procSelectObject.Call(memDC, hbm)
	defer procSelectObject.Call(memDC, old)

	ok, _, _ := procPrintWindow.Call(w.hwnd, memDC, pwRenderFullContent)
	if ok == 0 {
		return nil, fmt.Errorf("PrintWindow failed")
	}

	src := unsafe.Slice((*byte)(bits), w.width*w.height*4)
	img := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	for i := 0; i < w.width*w.height; i++ {
		img.Pix[i*4+0] = src[i*4+2]
		img.Pix[i*4+1] = src[i*4+1]
		img.Pix[i*4+2] = src[i*4+0]
		img.Pix[i*4+3] = 0xFF
	}
	return img, nil
}

func (w *win32Host) Close() error {
	if w.stage == stageClosed {
		return nil
	}
	if w.stage == stageAttached {
		_ = w.view.Removed()
	}
	if w.view != nil {
		w.view.Release()
		w.view = nil
	}
	if w.hwnd != 0 {
		procDestroyWindow.Call(w.hwnd)
		w.hwnd = 0
	}
	w.stage = stageClosed
	return nil
}
