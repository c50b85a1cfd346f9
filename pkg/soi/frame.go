package soi

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joshvictor1024/go-soi/pkg/types"
)

var (
	ErrEmptyFrame     = errors.New("soi: empty pixel rectangle")
	ErrDegenerateView = errors.New("soi: degenerate parameter rectangle")
	ErrNilPlotter     = errors.New("soi: nil plotter")
	ErrNilFormula     = errors.New("soi: nil formula")
)

// Frame describes what to render: the parameter rectangle from Min (lower
// left) to Max (upper right), mapped onto a pixel rectangle whose top row
// is Max's imaginary part.
type Frame struct {
	Min, Max complex128
	Pixels   types.Recti
	// Start returns each parameter's orbit value at iteration 1. Nil means
	// the identity.
	Start KeyOrbitFunc
}

// view maps pixels to parameters. Every pixel coordinate is derived from
// the frame, never from the region being processed, so a pixel sees the
// same parameter whichever region renders it.
type view struct {
	px     types.Recti
	minRe  float64
	maxIm  float64
	dx, dy float64
	start  KeyOrbitFunc
}

func newView(f Frame) (view, error) {
	if f.Pixels.Empty() {
		return view{}, fmt.Errorf("%w: %dx%d", ErrEmptyFrame, f.Pixels.W, f.Pixels.H)
	}
	if isBad(f.Min) || isBad(f.Max) || real(f.Min) == real(f.Max) || imag(f.Min) == imag(f.Max) {
		return view{}, fmt.Errorf("%w: %v to %v", ErrDegenerateView, f.Min, f.Max)
	}
	start := f.Start
	if start == nil {
		start = identity
	}
	return view{
		px:    f.Pixels,
		minRe: real(f.Min),
		maxIm: imag(f.Max),
		dx:    (real(f.Max) - real(f.Min)) / float64(f.Pixels.W),
		dy:    (imag(f.Max) - imag(f.Min)) / float64(f.Pixels.H),
		start: start,
	}, nil
}

func isBad(z complex128) bool {
	return cmplx.IsNaN(z) || cmplx.IsInf(z)
}

func (v *view) re(x int) float64 {
	return v.minRe + float64(x-v.px.X)*v.dx
}

func (v *view) im(y int) float64 {
	return v.maxIm - float64(y-v.px.Y)*v.dy
}

// equal is the periodicity epsilon: the smaller pixel spacing.
func (v *view) equal() float64 {
	return min(math.Abs(v.dx), math.Abs(v.dy))
}
