package vst3

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vstface/vstface/pkg/host"
)

func TestBinaryCandidates(t *testing.T) {
	cases := []struct {
		goos, goarch string
		bundle       string
		want         string
	}{
		{"linux", "amd64", "/plugs/Reverb.vst3", filepath.Join("/plugs/Reverb.vst3", "Contents", "x86_64-linux", "Reverb.so")},
		{"linux", "arm64", "/plugs/Reverb.vst3", filepath.Join("/plugs/Reverb.vst3", "Contents", "aarch64-linux", "Reverb.so")},
		{"darwin", "arm64", "/plugs/Reverb.vst3", filepath.Join("/plugs/Reverb.vst3", "Contents", "MacOS", "Reverb")},
		{"windows", "amd64", "/plugs/Reverb.vst3", filepath.Join("/plugs/Reverb.vst3", "Contents", "x86_64-win", "Reverb.vst3")},
	}

	for _, tc := range cases {
		got := binaryCandidates(tc.bundle, tc.goos, tc.goarch)
		if len(got) == 0 {
			t.Fatalf("%s/%s: no candidates", tc.goos, tc.goarch)
		}
		if got[0] != tc.want {
			t.Errorf("%s/%s: got %q, want %q", tc.goos, tc.goarch, got[0], tc.want)
		}
	}
}

func TestBundleBinaryPathMissingBundle(t *testing.T) {
	_, err := bundleBinaryPath(filepath.Join(t.TempDir(), "nope.vst3"))
	if !errors.Is(err, host.ErrBundleNotFound) {
		t.Errorf("expected ErrBundleNotFound, got %v", err)
	}
}

func TestBundleBinaryPathEmptyBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Empty.vst3")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := bundleBinaryPath(dir)
	if !errors.Is(err, host.ErrNotAPlugin) {
		t.Errorf("expected ErrNotAPlugin, got %v", err)
	}
}

func TestBundleBinaryPathFindsPlatformBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("layout covered by TestBinaryCandidates")
	}
	dir := filepath.Join(t.TempDir(), "Synth.vst3")
	want := binaryCandidates(dir, runtime.GOOS, runtime.GOARCH)[0]
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte{0x7f}, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := bundleBinaryPath(dir)
	if err != nil {
		t.Fatalf("bundleBinaryPath: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
