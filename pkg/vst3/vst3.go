// Package vst3 is the cgo layer over the VST3 COM ABI: module loading,
// factory enumeration and the component / controller / view wrappers the
// capture pipeline drives. Everything crossing the ABI goes through the
// vtable helpers declared in the per-file preambles; the rest of the host
// only sees the interfaces in pkg/host.
package vst3

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_host_api.h"
import "C"

// Result codes as returned across the ABI.
const (
	ResultOK    = 0
	ResultFalse = 1
)

// Interface IDs
var (
	IIDIPluginFactory = [16]byte{
		0x7A, 0x4D, 0x81, 0x1C, 0x52, 0x11, 0x4A, 0x1F,
		0xAE, 0xD9, 0xD2, 0xEE, 0x0B, 0x43, 0xBF, 0x9F,
	}
	IIDIComponent = [16]byte{
		0xE8, 0x31, 0xFF, 0x31, 0xF2, 0xD5, 0x4B, 0x01,
		0x83, 0x6F, 0x5D, 0x38, 0x54, 0x34, 0xAE, 0xC6,
	}
	IIDIEditController = [16]byte{
		0xDD, 0xB1, 0x18, 0x8F, 0x2B, 0x0D, 0x43, 0x11,
		0x9E, 0xD0, 0xAE, 0xB4, 0x38, 0x95, 0x40, 0x52,
	}
	IIDIPlugView = [16]byte{
		0x5B, 0xC3, 0x25, 0x07, 0xD0, 0x60, 0x49, 0xEA,
		0xA6, 0x15, 0x1B, 0x52, 0x2B, 0x75, 0x5B, 0x29,
	}
)

// Platform view type tags passed to IPlugView.
const (
	PlatformTypeNSView = "NSView"
	PlatformTypeHWND   = "HWND"
	PlatformTypeX11    = "X11EmbedWindowID"
)
