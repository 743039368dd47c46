package vst3

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vstface/vstface/pkg/host"
)

// archNames maps GOARCH to the architecture token used inside VST3 bundle
// directory names.
var archNames = map[string]string{
	"amd64": "x86_64",
	"arm64": "aarch64",
	"386":   "i386",
}

// bundleBinaryPath resolves the platform binary inside a .vst3 bundle.
// Returns host.ErrBundleNotFound when the bundle path itself is missing and
// host.ErrNotAPlugin when the container holds no binary for this platform.
func bundleBinaryPath(bundlePath string) (string, error) {
	fi, err := os.Stat(bundlePath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", host.ErrBundleNotFound, bundlePath)
	}

	// Legacy single-file form: the bundle itself is the module (Windows).
	if !fi.IsDir() {
		if runtime.GOOS == "windows" {
			return bundlePath, nil
		}
		return "", fmt.Errorf("%w: %s is not a bundle directory", host.ErrNotAPlugin, bundlePath)
	}

	for _, candidate := range binaryCandidates(bundlePath, runtime.GOOS, runtime.GOARCH) {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no platform binary in %s", host.ErrNotAPlugin, bundlePath)
}

// binaryCandidates lists the expected binary locations for a bundle on the
// given platform, in preference order.
func binaryCandidates(bundlePath, goos, goarch string) []string {
	stem := strings.TrimSuffix(filepath.Base(bundlePath), filepath.Ext(bundlePath))
	arch := archNames[goarch]
	if arch == "" {
		arch = goarch
	}

	switch goos {
	case "darwin":
		return []string{
			filepath.Join(bundlePath, "Contents", "MacOS", stem),
		}
	case "windows":
		if goarch == "arm64" {
			arch = "arm64"
		}
		return []string{
			filepath.Join(bundlePath, "Contents", arch+"-win", stem+".vst3"),
		}
	default:
		return []string{
			filepath.Join(bundlePath, "Contents", arch+"-linux", stem+".so"),
		}
	}
}
