//go:build linux || darwin

package vst3

// #cgo CFLAGS: -I../../include
// #cgo linux LDFLAGS: -ldl
// #include <dlfcn.h>
// #include <stdlib.h>
// #include "../../include/vst3/vst3_host_api.h"
//
// typedef struct Steinberg_IPluginFactory* (*vstface_factory_proc)(void);
// typedef uint8_t (*vstface_entry_proc)(void*);
// typedef uint8_t (*vstface_exit_proc)(void);
//
// static inline struct Steinberg_IPluginFactory* vstface_call_factory(void* proc) {
//     return ((vstface_factory_proc)proc)();
// }
//
// static inline uint8_t vstface_call_entry(void* proc, void* ref) {
//     return ((vstface_entry_proc)proc)(ref);
// }
//
// static inline uint8_t vstface_call_exit(void* proc) {
//     return ((vstface_exit_proc)proc)();
// }
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/vstface/vstface/pkg/host"
)

// Module is a dlopen'ed plugin bundle.
type Module struct {
	handle      unsafe.Pointer
	factoryProc unsafe.Pointer
	exitProc    unsafe.Pointer
	factory     *Factory
	unloaded    bool
}

// LoadModule opens the bundle's platform binary, runs the module entry and
// resolves the factory entry point. The caller must pair it with Unload.
func LoadModule(bundlePath string) (host.Module, error) {
	binary, err := bundleBinaryPath(bundlePath)
	if err != nil {
		return nil, err
	}

	cpath := C.CString(binary)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_LOCAL)
	if handle == nil {
		return nil, fmt.Errorf("%w: %s", host.ErrLoadFailed, C.GoString(C.dlerror()))
	}
	m := &Module{handle: handle}

	// The module entry pair differs per platform. On macOS bundleEntry wants
	// a CFBundleRef; hosts that dlopen the Mach-O directly pass nil and
	// plugins built with the SDK accept that.
	entryName, exitName, entryRef := "ModuleEntry", "ModuleExit", handle
	if runtime.GOOS == "darwin" {
		entryName, exitName, entryRef = "bundleEntry", "bundleExit", nil
	}
	if entry := m.symbol(entryName); entry != nil {
		if C.vstface_call_entry(entry, entryRef) == 0 {
			C.dlclose(handle)
			return nil, fmt.Errorf("%w: %s refused", host.ErrLoadFailed, entryName)
		}
		m.exitProc = m.symbol(exitName)
	}

	m.factoryProc = m.symbol("GetPluginFactory")
	if m.factoryProc == nil {
		m.callExit()
		C.dlclose(handle)
		return nil, fmt.Errorf("%w: %s has no GetPluginFactory", host.ErrNotAPlugin, binary)
	}
	return m, nil
}

// Factory resolves the plugin factory. The factory stays valid until Unload.
func (m *Module) Factory() (host.Factory, error) {
	if m.factory == nil {
		ptr := C.vstface_call_factory(m.factoryProc)
		if ptr == nil {
			return nil, fmt.Errorf("%w: GetPluginFactory returned nothing", host.ErrNotAPlugin)
		}
		m.factory = newFactory(unsafe.Pointer(ptr))
	}
	return m.factory, nil
}

// Unload releases the factory, runs the module exit and closes the library.
// Must be called exactly once, after all derived objects are released.
func (m *Module) Unload() error {
	if m.unloaded {
		return nil
	}
	m.unloaded = true

	if m.factory != nil {
		m.factory.release()
		m.factory = nil
	}
	m.callExit()
	if C.dlclose(m.handle) != 0 {
		return fmt.Errorf("dlclose: %s", C.GoString(C.dlerror()))
	}
	return nil
}

func (m *Module) symbol(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.dlsym(m.handle, cname)
}

func (m *Module) callExit() {
	if m.exitProc != nil {
		C.vstface_call_exit(m.exitProc)
		m.exitProc = nil
	}
}
