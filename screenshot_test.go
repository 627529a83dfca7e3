package roomdesigner

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"empty room", "empty_room"},
		{"  padded  ", "padded"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"a/b\\c", "a_b_c"},
		{"v1.2-final", "v1.2-final"},
		{"sofa #1", "sofa__1"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	d := newTestDesigner(t, Config{})
	if d.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", d.ScreenshotDir)
	}
	d.Screenshot("one")
	d.Screenshot("two")
	if len(d.screenshotQueue) != 2 {
		t.Errorf("queue = %v", d.screenshotQueue)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent orange
		255, 255, 255, 255,
		0, 0, 0, 0,
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 255, 255, 255, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix[:12], want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	src := unpremultiply([]byte{10, 20, 30, 255}, 1, 1)
	if err := writePNG(path, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Errorf("bounds = %v", img.Bounds())
	}

	if err := writePNG(filepath.Join(dir, "missing", "shot.png"), src); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}
