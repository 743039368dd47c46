package vst3

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_host_api.h"
// #include <string.h>
//
// // Helper functions to call IPluginFactory methods
// static inline Steinberg_int32 factory_countClasses(struct Steinberg_IPluginFactory* f) {
//     return f->lpVtbl->countClasses(f);
// }
//
// static inline Steinberg_tresult factory_getClassInfo(struct Steinberg_IPluginFactory* f, Steinberg_int32 index, struct Steinberg_PClassInfo* info) {
//     return f->lpVtbl->getClassInfo(f, index, info);
// }
//
// static inline Steinberg_tresult factory_createInstance(struct Steinberg_IPluginFactory* f, const char* cid, const char* iid, void** obj) {
//     return f->lpVtbl->createInstance(f, cid, iid, obj);
// }
//
// static inline Steinberg_uint32 factory_release(struct Steinberg_IPluginFactory* f) {
//     return f->lpVtbl->release(f);
// }
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/vstface/vstface/pkg/host"
)

// Factory wraps a plugin's IPluginFactory. It stays valid for the lifetime
// of the loaded module.
type Factory struct {
	ptr *C.struct_Steinberg_IPluginFactory
}

func newFactory(ptr unsafe.Pointer) *Factory {
	if ptr == nil {
		return nil
	}
	return &Factory{ptr: (*C.struct_Steinberg_IPluginFactory)(ptr)}
}

// CountClasses reports how many class entries the factory exposes.
func (f *Factory) CountClasses() int {
	return int(C.factory_countClasses(f.ptr))
}

// ClassInfo reads one class entry.
func (f *Factory) ClassInfo(index int) (host.ClassInfo, error) {
	var info C.struct_Steinberg_PClassInfo
	if C.factory_getClassInfo(f.ptr, C.Steinberg_int32(index), &info) != ResultOK {
		return host.ClassInfo{}, fmt.Errorf("getClassInfo(%d) failed", index)
	}

	var out host.ClassInfo
	C.memcpy(unsafe.Pointer(&out.ID[0]), unsafe.Pointer(&info.cid[0]), 16)
	out.Cardinality = int32(info.cardinality)
	out.Category = C.GoString(&info.category[0])
	out.Name = C.GoString(&info.name[0])
	return out, nil
}

// CreateComponent instantiates classID as an IComponent.
func (f *Factory) CreateComponent(classID [16]byte) (host.Component, error) {
	ptr, err := f.createInstance(classID, IIDIComponent)
	if err != nil {
		return nil, err
	}
	return &Component{ptr: (*C.struct_Steinberg_Vst_IComponent)(ptr)}, nil
}

// CreateController instantiates classID as an IEditController.
func (f *Factory) CreateController(classID [16]byte) (host.Controller, error) {
	ptr, err := f.createInstance(classID, IIDIEditController)
	if err != nil {
		return nil, err
	}
	return &Controller{ptr: (*C.struct_Steinberg_Vst_IEditController)(ptr)}, nil
}

func (f *Factory) createInstance(classID, iid [16]byte) (unsafe.Pointer, error) {
	var obj unsafe.Pointer
	res := C.factory_createInstance(
		f.ptr,
		(*C.char)(unsafe.Pointer(&classID[0])),
		(*C.char)(unsafe.Pointer(&iid[0])),
		&obj,
	)
	if res != ResultOK || obj == nil {
		return nil, fmt.Errorf("createInstance %x failed (%d)", classID, int32(res))
	}
	return obj, nil
}

func (f *Factory) release() {
	if f.ptr != nil {
		C.factory_release(f.ptr)
		f.ptr = nil
	}
}
