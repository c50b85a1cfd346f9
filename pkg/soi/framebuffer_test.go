package soi

import "testing"

func TestFramebufferPlotClips(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Fill(7)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		fb.Plot(p[0], p[1], 1)
	}
	fb.PlotSpan(-1, 0, 4, 1)
	fb.PlotSpan(3, 0, 4, 1)
	for y := range 3 {
		for x := range 4 {
			if c := fb.At(x, y); c != 7 {
				t.Fatalf("At(%d,%d) = %d, want 7", x, y, c)
			}
		}
	}
	if c := fb.At(4, 0); c != -1 {
		t.Errorf("At outside = %d, want -1", c)
	}
}

func TestFramebufferPlotSpan(t *testing.T) {
	tests := []struct {
		name   string
		x0, x1 int
		want   []int
	}{
		{"inside", 1, 3, []int{0, 5, 5, 0, 0}},
		{"empty", 2, 2, []int{0, 0, 0, 0, 0}},
		{"clipped left", -3, 2, []int{5, 5, 0, 0, 0}},
		{"clipped right", 3, 9, []int{0, 0, 0, 5, 5}},
		{"reversed", 4, 1, []int{0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFramebuffer(5, 2)
			fb.PlotSpan(1, tt.x0, tt.x1, 5)
			for x, want := range tt.want {
				if got := fb.At(x, 1); got != want {
					t.Errorf("At(%d,1) = %d, want %d", x, got, want)
				}
				if got := fb.At(x, 0); got != 0 {
					t.Errorf("row 0 touched at %d", x)
				}
			}
		})
	}
}

func TestFramebufferDiff(t *testing.T) {
	a, b := NewFramebuffer(3, 3), NewFramebuffer(3, 3)
	if !a.Equal(b) {
		t.Error("fresh buffers differ")
	}
	b.Plot(1, 1, 9)
	b.Plot(2, 0, 9)
	if n := a.Diff(b); n != 2 {
		t.Errorf("Diff = %d, want 2", n)
	}
	if n := a.Diff(NewFramebuffer(3, 4)); n != 12 {
		t.Errorf("Diff of mismatched sizes = %d, want 12", n)
	}
	if got := b.Row(1); got[1] != 9 || len(got) != 3 {
		t.Errorf("Row(1) = %v", got)
	}
}
