package vst3

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_host_api.h"
// #include <stdlib.h>
//
// // Helper functions to call IPlugView methods
// static inline Steinberg_tresult view_isPlatformTypeSupported(struct Steinberg_IPlugView* v, const char* type) {
//     return v->lpVtbl->isPlatformTypeSupported(v, type);
// }
//
// static inline Steinberg_tresult view_attached(struct Steinberg_IPlugView* v, void* parent, const char* type) {
//     return v->lpVtbl->attached(v, parent, type);
// }
//
// static inline Steinberg_tresult view_removed(struct Steinberg_IPlugView* v) {
//     return v->lpVtbl->removed(v);
// }
//
// static inline Steinberg_tresult view_getSize(struct Steinberg_IPlugView* v, struct Steinberg_ViewRect* size) {
//     return v->lpVtbl->getSize(v, size);
// }
//
// static inline Steinberg_tresult view_onSize(struct Steinberg_IPlugView* v, struct Steinberg_ViewRect* size) {
//     return v->lpVtbl->onSize(v, size);
// }
//
// static inline Steinberg_uint32 view_release(struct Steinberg_IPlugView* v) {
//     return v->lpVtbl->release(v);
// }
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/vstface/vstface/pkg/host"
)

// View wraps a plugin's IPlugView. Valid only while the owning controller is
// alive; Removed must be called before Release once the view was attached.
type View struct {
	ptr *C.struct_Steinberg_IPlugView
}

// PlatformTypeSupported reports whether the view can attach to the given
// platform type tag.
func (v *View) PlatformTypeSupported(platformType string) bool {
	ctype := C.CString(platformType)
	defer C.free(unsafe.Pointer(ctype))
	return C.view_isPlatformTypeSupported(v.ptr, ctype) == ResultOK
}

// Attached hands the native parent handle to the view.
func (v *View) Attached(parent uintptr, platformType string) error {
	ctype := C.CString(platformType)
	defer C.free(unsafe.Pointer(ctype))

	res := C.view_attached(v.ptr, unsafe.Pointer(parent), ctype)
	if res != ResultOK {
		return fmt.Errorf("attached(%s) failed (%d)", platformType, int32(res))
	}
	return nil
}

// Removed detaches the view from its parent.
func (v *View) Removed() error {
	if res := C.view_removed(v.ptr); res != ResultOK {
		return fmt.Errorf("removed failed (%d)", int32(res))
	}
	return nil
}

// Size reads the view's current rectangle. Plugins commonly report their
// true preferred size only after being attached to a real drawable.
func (v *View) Size() (host.Rect, error) {
	var rect C.struct_Steinberg_ViewRect
	if res := C.view_getSize(v.ptr, &rect); res != ResultOK {
		return host.Rect{}, fmt.Errorf("getSize failed (%d)", int32(res))
	}
	return host.Rect{
		Left:   int32(rect.left),
		Top:    int32(rect.top),
		Right:  int32(rect.right),
		Bottom: int32(rect.bottom),
	}, nil
}

// SetSize informs the view of its new rectangle.
func (v *View) SetSize(r host.Rect) error {
	rect := C.struct_Steinberg_ViewRect{
		left:   C.Steinberg_int32(r.Left),
		top:    C.Steinberg_int32(r.Top),
		right:  C.Steinberg_int32(r.Right),
		bottom: C.Steinberg_int32(r.Bottom),
	}
	if res := C.view_onSize(v.ptr, &rect); res != ResultOK {
		return fmt.Errorf("onSize failed (%d)", int32(res))
	}
	return nil
}

// Release drops the host's reference.
func (v *View) Release() {
	if v.ptr != nil {
		C.view_release(v.ptr)
		v.ptr = nil
	}
}
