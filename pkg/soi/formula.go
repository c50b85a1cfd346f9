package soi

// DefaultBailout is the squared magnitude at which an orbit is considered
// escaped.
const DefaultBailout = 16.0

// Formula is the escape recurrence being rendered. Step must be a pure
// function of (z, c): the renderer relies on neighboring orbits evolving
// smoothly and in lockstep.
type Formula interface {
	// Step advances z by one raw iteration for parameter c.
	Step(z, c complex128) complex128
	// Bailout reports whether z has escaped.
	Bailout(z complex128) bool
}

// Escaped is the default bailout test, |z|^2 >= DefaultBailout.
func Escaped(z complex128) bool {
	re, im := real(z), imag(z)
	return re*re+im*im >= DefaultBailout
}

// Mandelbrot iterates z^2 + c.
type Mandelbrot struct{}

func (Mandelbrot) Step(z, c complex128) complex128 {
	re, im := real(z), imag(z)
	return complex(re*re-im*im+real(c), 2*re*im+imag(c))
}

func (Mandelbrot) Bailout(z complex128) bool { return Escaped(z) }

// Halving iterates z/2. Every orbit is attracted to 0, which makes it useful
// for exercising interior and basin classification.
type Halving struct{}

func (Halving) Step(z, _ complex128) complex128 { return complex(real(z)/2, imag(z)/2) }

func (Halving) Bailout(z complex128) bool { return Escaped(z) }

// BailoutLimiter is implemented by formulas that escape at a squared
// magnitude other than DefaultBailout. Smoothing measures how far past the
// limit the escaping step landed; formulas without it are assumed to use
// DefaultBailout.
type BailoutLimiter interface {
	BailoutLimit() float64
}

func bailoutLimit(f Formula) float64 {
	if bl, ok := f.(BailoutLimiter); ok && bl.BailoutLimit() > 0 {
		return bl.BailoutLimit()
	}
	return DefaultBailout
}

// FormulaFuncs adapts a pair of functions to Formula. A nil BailoutFn tests
// |z|^2 >= Limit, and a zero Limit means DefaultBailout.
type FormulaFuncs struct {
	StepFn    func(z, c complex128) complex128
	BailoutFn func(z complex128) bool
	Limit     float64
}

func (f FormulaFuncs) Step(z, c complex128) complex128 { return f.StepFn(z, c) }

func (f FormulaFuncs) Bailout(z complex128) bool {
	if f.BailoutFn == nil {
		re, im := real(z), imag(z)
		return re*re+im*im >= f.BailoutLimit()
	}
	return f.BailoutFn(z)
}

func (f FormulaFuncs) BailoutLimit() float64 {
	if f.Limit > 0 {
		return f.Limit
	}
	return DefaultBailout
}

// KeyOrbitFunc returns the orbit value of parameter c at the first
// iteration. The zero value of a Frame uses the identity, which is z1 = c
// for z^2 + c started at 0.
type KeyOrbitFunc func(c complex128) complex128

func identity(c complex128) complex128 { return c }
