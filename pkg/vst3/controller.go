package vst3

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_host_api.h"
// #include <stdlib.h>
//
// // Helper functions to call IEditController methods
// static inline Steinberg_tresult controller_initialize(struct Steinberg_Vst_IEditController* c) {
//     return c->lpVtbl->initialize(c, 0);
// }
//
// static inline Steinberg_tresult controller_terminate(struct Steinberg_Vst_IEditController* c) {
//     return c->lpVtbl->terminate(c);
// }
//
// static inline struct Steinberg_IPlugView* controller_createView(struct Steinberg_Vst_IEditController* c, const char* name) {
//     return c->lpVtbl->createView(c, name);
// }
//
// static inline Steinberg_uint32 controller_release(struct Steinberg_Vst_IEditController* c) {
//     return c->lpVtbl->release(c);
// }
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/vstface/vstface/pkg/host"
)

// ViewTypeEditor is the view name every VST3 editor responds to.
const ViewTypeEditor = "editor"

// Controller wraps a plugin's IEditController.
type Controller struct {
	ptr *C.struct_Steinberg_Vst_IEditController
}

// Initialize runs the plugin-base initialize with a nil host context.
func (c *Controller) Initialize() error {
	if res := C.controller_initialize(c.ptr); res != ResultOK {
		return fmt.Errorf("controller initialize failed (%d)", int32(res))
	}
	return nil
}

// Terminate runs the plugin-base terminate.
func (c *Controller) Terminate() error {
	if res := C.controller_terminate(c.ptr); res != ResultOK {
		return fmt.Errorf("controller terminate failed (%d)", int32(res))
	}
	return nil
}

// CreateView asks for the plugin's editor view. A nil result without error
// means the plugin exposes no editor; platformType is only used by the
// caller when attaching, createView itself always receives the "editor"
// name per the ABI convention.
func (c *Controller) CreateView(platformType string) (host.View, error) {
	name := C.CString(ViewTypeEditor)
	defer C.free(unsafe.Pointer(name))

	ptr := C.controller_createView(c.ptr, name)
	if ptr == nil {
		return nil, nil
	}
	return &View{ptr: ptr}, nil
}

// Release drops the host's reference.
func (c *Controller) Release() {
	if c.ptr != nil {
		C.controller_release(c.ptr)
		c.ptr = nil
	}
}
