package types

import "testing"

func TestRectiIntersect(t *testing.T) {
	a := Recti{X: 0, Y: 0, W: 10, H: 10}
	if got := a.Intersect(Recti{X: 5, Y: -2, W: 10, H: 5}); got != (Recti{X: 5, Y: 0, W: 5, H: 3}) {
		t.Errorf("Intersect = %+v", got)
	}
	if got := a.Intersect(Recti{X: 20, Y: 0, W: 1, H: 1}); !got.Empty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
	if !a.Contains(Pointi{X: 9, Y: 0}) || a.Contains(Pointi{X: 10, Y: 0}) {
		t.Error("Contains disagrees with half-open bounds")
	}
}
