//go:build windows

package vst3

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/vstface/vstface/pkg/host"
)

// Module is a LoadLibrary'ed plugin bundle.
type Module struct {
	handle   windows.Handle
	factProc uintptr
	exitProc uintptr
	factory  *Factory
	unloaded bool
}

// LoadModule opens the bundle's DLL, runs InitDll when present and resolves
// the factory entry point. The caller must pair it with Unload.
func LoadModule(bundlePath string) (host.Module, error) {
	binary, err := bundleBinaryPath(bundlePath)
	if err != nil {
		return nil, err
	}

	handle, err := windows.LoadLibraryEx(binary, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", host.ErrLoadFailed, binary, err)
	}
	m := &Module{handle: handle}

	if init, err := windows.GetProcAddress(handle, "InitDll"); err == nil {
		ok, _, _ := syscall.SyscallN(init)
		if ok == 0 {
			windows.FreeLibrary(handle)
			return nil, fmt.Errorf("%w: InitDll refused", host.ErrLoadFailed)
		}
		m.exitProc, _ = windows.GetProcAddress(handle, "ExitDll")
	}

	m.factProc, err = windows.GetProcAddress(handle, "GetPluginFactory")
	if err != nil {
		m.callExit()
		windows.FreeLibrary(handle)
		return nil, fmt.Errorf("%w: %s has no GetPluginFactory", host.ErrNotAPlugin, binary)
	}
	return m, nil
}

// Factory resolves the plugin factory. The factory stays valid until Unload.
func (m *Module) Factory() (host.Factory, error) {
	if m.factory == nil {
		ptr, _, _ := syscall.SyscallN(m.factProc)
		if ptr == 0 {
			return nil, fmt.Errorf("%w: GetPluginFactory returned nothing", host.ErrNotAPlugin)
		}
		m.factory = newFactory(unsafe.Pointer(ptr))
	}
	return m.factory, nil
}

// Unload releases the factory, runs ExitDll and frees the library. Must be
// called exactly once, after all derived objects are released.
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
	if err := windows.FreeLibrary(m.handle); err != nil {
		return fmt.Errorf("free library: %w", err)
	}
	return nil
}

func (m *Module) callExit() {
	if m.exitProc != 0 {
		_, _, _ = syscall.SyscallN(m.exitProc)
		m.exitProc = 0
	}
}
