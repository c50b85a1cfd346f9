// Package newton builds and evaluates quadratic Newton (divided-difference)
// interpolation polynomials, and composes them over a 3x3 sample grid.
//
// Nodes are expected to be distinct. Callers derive them from distinct
// rectangle corners, so no error path exists: equal nodes yield Inf or NaN.
package newton

// Build returns the Newton coefficients of the polynomial through
// (x0,w0), (x1,w1), (x2,w2).
func Build(x0, x1, x2, w0, w1, w2 float64) (b0, b1, b2 float64) {
	b0 = w0
	b1 = (w1 - w0) / (x1 - x0)
	b2 = ((w2-w1)/(x2-x1) - b1) / (x2 - x0)
	return b0, b1, b2
}

// Evaluate evaluates the Newton polynomial with nodes x0, x1 and
// coefficients b0, b1, b2 at t.
func Evaluate(x0, x1, b0, b1, b2, t float64) float64 {
	return (b2*(t-x1)+b1)*(t-x0) + b0
}

// Interpolate is Build followed by Evaluate.
func Interpolate(x0, x1, x2, w0, w1, w2, t float64) float64 {
	b0, b1, b2 := Build(x0, x1, x2, w0, w1, w2)
	return Evaluate(x0, x1, b0, b1, b2, t)
}

// Poly is a prebuilt quadratic Newton polynomial. It is used where the same
// samples are evaluated at many positions.
type Poly struct {
	X0, X1     float64
	B0, B1, B2 float64
}

func NewPoly(n Nodes, w0, w1, w2 float64) Poly {
	b0, b1, b2 := Build(n[0], n[1], n[2], w0, w1, w2)
	return Poly{X0: n[0], X1: n[1], B0: b0, B1: b1, B2: b2}
}

func (p Poly) At(t float64) float64 {
	return Evaluate(p.X0, p.X1, p.B0, p.B1, p.B2, t)
}

// Nodes are the three sample positions along one axis.
type Nodes [3]float64

// At interpolates the samples w at t.
func (n Nodes) At(w0, w1, w2, t float64) float64 {
	return Interpolate(n[0], n[1], n[2], w0, w1, w2, t)
}
