//go:build darwin

package editorhost

// #cgo CFLAGS: -x objective-c
// #cgo LDFLAGS: -framework Cocoa
// #import <Cocoa/Cocoa.h>
// #include <string.h>
//
// // Borderless, never-activated window. Off-screen captures park it far
// // outside the visible desktop; screen mode orders it front without focus.
// static void* vstface_cocoa_open(int w, int h, int onScreen, void** outContentView) {
//     NSRect frame = NSMakeRect(onScreen ? 80 : -16000, onScreen ? 80 : -16000, w, h);
//     NSWindow* win = [[NSWindow alloc] initWithContentRect:frame
//                                                 styleMask:NSWindowStyleMaskBorderless
//                                                   backing:NSBackingStoreBuffered
//                                                     defer:NO];
//     [win setReleasedWhenClosed:NO];
//     NSView* content = [[NSView alloc] initWithFrame:NSMakeRect(0, 0, w, h)];
//     [win setContentView:content];
//     if (onScreen) {
//         [win orderFrontRegardless];
//     }
//     *outContentView = content;
//     return win;
// }
//
// static void vstface_cocoa_resize(void* window, int w, int h) {
//     NSWindow* win = (NSWindow*)window;
//     NSRect frame = [win frame];
//     frame.size = NSMakeSize(w, h);
//     [win setFrame:frame display:YES];
// }
//
// static void vstface_cocoa_screen_rect(void* window, int* x, int* y, int* w, int* h) {
//     NSWindow* win = (NSWindow*)window;
//     NSRect frame = [win frame];
//     NSRect screen = [[NSScreen mainScreen] frame];
//     *x = (int)frame.origin.x;
//     *y = (int)(screen.size.height - frame.origin.y - frame.size.height);
//     *w = (int)frame.size.width;
//     *h = (int)frame.size.height;
// }
//
// // Run the loop in short slices and flush pending drawing synchronously
// // after each slice.
// static void vstface_cocoa_pump(void* window, double seconds) {
//     NSWindow* win = (NSWindow*)window;
//     NSDate* deadline = [NSDate dateWithTimeIntervalSinceNow:seconds];
//     while ([deadline timeIntervalSinceNow] > 0) {
//         [[NSRunLoop currentRunLoop] runMode:NSDefaultRunLoopMode
//                                  beforeDate:[NSDate dateWithTimeIntervalSinceNow:0.016]];
//         [win displayIfNeeded];
//     }
// }
//
// static int vstface_cocoa_snapshot(void* window, unsigned char* buf, int w, int h) {
//     NSWindow* win = (NSWindow*)window;
//     NSView* view = [win contentView];
//     NSBitmapImageRep* rep = [[NSBitmapImageRep alloc]
//         initWithBitmapDataPlanes:NULL
//                       pixelsWide:w
//                       pixelsHigh:h
//                    bitsPerSample:8
//                  samplesPerPixel:4
//                         hasAlpha:YES
//                         isPlanar:NO
//                   colorSpaceName:NSDeviceRGBColorSpace
//                      bytesPerRow:w * 4
//                     bitsPerPixel:32];
//     if (rep == nil) {
//         return 0;
//     }
//     [view cacheDisplayInRect:[view bounds] toBitmapImageRep:rep];
//     memcpy(buf, [rep bitmapData], (size_t)w * (size_t)h * 4);
//     [rep release];
//     return 1;
// }
//
// static void vstface_cocoa_close(void* window, void* contentView) {
//     NSWindow* win = (NSWindow*)window;
//     NSView* content = (NSView*)contentView;
//     [win orderOut:nil];
//     [win setContentView:nil];
//     [content release];
//     [win release];
// }
import "C"
import (
	"fmt"
	"image"
	"time"
	"unsafe"

	"github.com/vstface/vstface/pkg/host"
)

const platformType = "NSView"

// New returns the Cocoa editor host.
func New() host.EditorHost {
	return &cocoaHost{}
}

type cocoaHost struct {
	window  unsafe.Pointer
	content unsafe.Pointer
	view    host.View
	width   int
	height  int
	stage   stage
}

func (c *cocoaHost) Open(ctrl host.Controller, width, height int, onScreen bool) error {
	if c.stage != stageUnopened {
		return fmt.Errorf("%w: host already opened", host.ErrAttachFailed)
	}

	view, err := createEditorView(ctrl, platformType)
	if err != nil {
		return err
	}
	c.view = view
	c.stage = stageViewCreated

	var content unsafe.Pointer
	on := C.int(0)
	if onScreen {
		on = 1
	}
	c.window = C.vstface_cocoa_open(C.int(width), C.int(height), on, &content)
	if c.window == nil {
		return fmt.Errorf("%w: cannot create window", host.ErrAttachFailed)
	}
	c.content = content
	c.width, c.height = width, height

	if err := c.view.Attached(uintptr(c.content), platformType); err != nil {
		return fmt.Errorf("%w: %v", host.ErrAttachFailed, err)
	}
	c.stage = stageAttached

	// Many editors report their real preferred size only once attached.
	if rect, err := c.view.Size(); err == nil {
		if w, h := rect.Width(), rect.Height(); w > 0 && h > 0 && (w != width || h != height) {
			if err := c.ResizeContent(w, h); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *cocoaHost) ContentSize() (int, int) { return c.width, c.height }

func (c *cocoaHost) ResizeContent(width, height int) error {
	if c.stage != stageAttached {
		return fmt.Errorf("%w: not attached", host.ErrAttachFailed)
	}
	C.vstface_cocoa_resize(c.window, C.int(width), C.int(height))
	c.width, c.height = width, height
	return c.view.SetSize(host.Rect{Right: int32(width), Bottom: int32(height)})
}

func (c *cocoaHost) ScreenRect() image.Rectangle {
	if c.stage != stageAttached {
		return image.Rectangle{}
	}
	var x, y, w, h C.int
	C.vstface_cocoa_screen_rect(c.window, &x, &y, &w, &h)
	return image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h))
}

func (c *cocoaHost) Pump(budget time.Duration) {
	if c.stage != stageAttached {
		return
	}
	C.vstface_cocoa_pump(c.window, C.double(budget.Seconds()))
}

func (c *cocoaHost) Snapshot() (*image.RGBA, error) {
	if c.stage != stageAttached {
		return nil, fmt.Errorf("surface not attached")
	}
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	ok := C.vstface_cocoa_snapshot(c.window, (*C.uchar)(unsafe.Pointer(&img.Pix[0])), C.int(c.width), C.int(c.height))
	if ok == 0 {
		return nil, fmt.Errorf("bitmap readback failed for %dx%d view", c.width, c.height)
	}
	return img, nil
}

func (c *cocoaHost) Close() error {
	if c.stage == stageClosed {
		return nil
	}
	if c.stage == stageAttached {
		_ = c.view.Removed()
	}
	if c.view != nil {
		c.view.Release()
		c.view = nil
	}
	if c.window != nil {
		C.vstface_cocoa_close(c.window, c.content)
		c.window, c.content = nil, nil
	}
	c.stage = stageClosed
	return nil
}
