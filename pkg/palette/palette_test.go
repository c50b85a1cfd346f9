package palette

import (
	"image/color"
	"testing"

	"github.com/gogpu/gg"
)

func TestPaletteBasin(t *testing.T) {
	p := New(16)
	if got := p.At(0); got != gg.Black {
		t.Errorf("At(0) = %+v, want black", got)
	}
	if got := p.RGBA(-3); got != (color.RGBA{A: 255}) {
		t.Errorf("RGBA(-3) = %+v, want opaque black", got)
	}
}

func TestPaletteCycles(t *testing.T) {
	p := New(16)
	for c := 1; c <= 16; c++ {
		if p.At(c) != p.At(c+16) {
			t.Fatalf("At(%d) != At(%d)", c, c+16)
		}
		if p.RGBA(c) != p.RGBA(c+32) {
			t.Fatalf("RGBA(%d) != RGBA(%d)", c, c+32)
		}
		if p.RGBA(c).A != 255 {
			t.Fatalf("RGBA(%d) not opaque", c)
		}
	}
	if p.At(1) == p.At(2) {
		t.Error("neighboring indices share a color")
	}
}

func TestPaletteDefaultCycle(t *testing.T) {
	if n := New(0).Len(); n != DefaultCycle {
		t.Errorf("Len = %d, want %d", n, DefaultCycle)
	}
}
