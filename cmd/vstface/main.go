package main

import (
	"os"

	"github.com/vstface/vstface/pkg/editorhost"
	"github.com/vstface/vstface/pkg/host"
	"github.com/vstface/vstface/pkg/vst3"
)

func main() {
	capturer := &host.Capturer{
		Load:       vst3.LoadModule,
		NewHost:    editorhost.New,
		GrabScreen: editorhost.GrabScreenRect,
	}
	root := newRootCommand(capturer.CapturePlugin)
	os.Exit(run(root, os.Stderr))
}
