// Package editorhost owns the native off-screen surface a plugin editor view
// is attached to. One implementation per platform: Cocoa on darwin, X11 with
// the composite extension on linux, win32 on windows. New returns the
// implementation for the build platform.
//
// All implementations walk the same states: Unopened -> ViewCreated ->
// Attached -> (Resized) -> Closed. Close detaches before destroying the
// surface and is safe to call twice.
package editorhost

import (
	"fmt"

	"github.com/vstface/vstface/pkg/host"
)

type stage int

const (
	stageUnopened stage = iota
	stageViewCreated
	stageAttached
	stageClosed
)

// createEditorView asks the controller for an editor view and verifies it
// can attach to this platform's type tag.
func createEditorView(ctrl host.Controller, platformType string) (host.View, error) {
	view, err := ctrl.CreateView(platformType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", host.ErrNoEditor, err)
	}
	if view == nil {
		return nil, host.ErrNoEditor
	}
	if !view.PlatformTypeSupported(platformType) {
		view.Release()
		return nil, fmt.Errorf("%w: view rejects platform type %s", host.ErrAttachFailed, platformType)
	}
	return view, nil
}
