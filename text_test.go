package roomdesigner

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadTTFFont(t *testing.T) {
	f, err := LoadTTFFont(goregular.TTF, 16)
	if err != nil {
		t.Fatal(err)
	}
	if f.LineHeight() <= 16 {
		t.Errorf("LineHeight = %v, want more than the font size", f.LineHeight())
	}

	w1, h1 := f.MeasureString("Sofa")
	w2, _ := f.MeasureString("Sofa Sofa")
	if w1 <= 0 || w2 <= w1 {
		t.Errorf("widths %v and %v", w1, w2)
	}
	_, h2 := f.MeasureString("line one\nline two")
	if h2 <= h1 {
		t.Errorf("two lines (%v) should be taller than one (%v)", h2, h1)
	}
}

func TestLoadTTFFontInvalid(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a font"), 14); err == nil {
		t.Error("expected an error for invalid font data")
	}
}

func TestEnsureHUDFont(t *testing.T) {
	f, err := ensureHUDFont()
	if err != nil {
		t.Fatal(err)
	}
	again, _ := ensureHUDFont()
	if f != again {
		t.Error("HUD font should be cached")
	}
}
