package vst3

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_host_api.h"
//
// // Helper functions to call IComponent methods
// static inline Steinberg_tresult component_initialize(struct Steinberg_Vst_IComponent* c) {
//     return c->lpVtbl->initialize(c, 0);
// }
//
// static inline Steinberg_tresult component_terminate(struct Steinberg_Vst_IComponent* c) {
//     return c->lpVtbl->terminate(c);
// }
//
// static inline Steinberg_tresult component_getControllerClassId(struct Steinberg_Vst_IComponent* c, char* classId) {
//     return c->lpVtbl->getControllerClassId(c, classId);
// }
//
// static inline Steinberg_uint32 component_release(struct Steinberg_Vst_IComponent* c) {
//     return c->lpVtbl->release(c);
// }
import "C"
import (
	"fmt"
	"unsafe"
)

// Component wraps a plugin's IComponent. The host exercises only the
// lifecycle and the declared controller pairing; audio processing is never
// set up.
type Component struct {
	ptr *C.struct_Steinberg_Vst_IComponent
}

// Initialize runs the plugin-base initialize with a nil host context.
func (c *Component) Initialize() error {
	if res := C.component_initialize(c.ptr); res != ResultOK {
		return fmt.Errorf("component initialize failed (%d)", int32(res))
	}
	return nil
}

// Terminate runs the plugin-base terminate.
func (c *Component) Terminate() error {
	if res := C.component_terminate(c.ptr); res != ResultOK {
		return fmt.Errorf("component terminate failed (%d)", int32(res))
	}
	return nil
}

// ControllerClassID reads the identifier of the paired edit controller.
func (c *Component) ControllerClassID() ([16]byte, error) {
	var id [16]byte
	res := C.component_getControllerClassId(c.ptr, (*C.char)(unsafe.Pointer(&id[0])))
	if res != ResultOK {
		return id, fmt.Errorf("getControllerClassId failed (%d)", int32(res))
	}
	return id, nil
}

// Release drops the host's reference.
func (c *Component) Release() {
	if c.ptr != nil {
		C.component_release(c.ptr)
		c.ptr = nil
	}
}
