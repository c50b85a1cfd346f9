package soi

import (
	"fmt"
	"math"
)

// BasinColor is plotted for points classified as interior: orbits that
// exhaust the iteration budget or settle into a periodic cycle.
const BasinColor = 0

// periodicityInterval is the number of raw steps between periodicity checks.
const periodicityInterval = 8

// Periodicity selects when orbits are checked for periodic behavior.
type Periodicity int

const (
	// PeriodicityAuto checks only while the previous orbit of the session
	// did not escape. Interior points cluster, so this skips the check
	// where it cannot pay off.
	PeriodicityAuto Periodicity = iota
	// PeriodicityAlways checks every orbit. Results no longer depend on
	// the order pixels are visited in.
	PeriodicityAlways
	// PeriodicityNever disables the check.
	PeriodicityNever
)

func (p Periodicity) String() string {
	switch p {
	case PeriodicityAuto:
		return "auto"
	case PeriodicityAlways:
		return "always"
	case PeriodicityNever:
		return "never"
	}
	return "unknown"
}

// ParsePeriodicity is the inverse of Periodicity.String.
func ParsePeriodicity(s string) (Periodicity, error) {
	for _, p := range []Periodicity{PeriodicityAuto, PeriodicityAlways, PeriodicityNever} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("soi: unknown periodicity mode %q", s)
}

// Result is the classification of one orbit.
type Result struct {
	// Iterations is the iteration count at which the orbit escaped, or at
	// which it was classified interior.
	Iterations int
	// Smooth is Iterations corrected by how far past the bailout the last
	// step landed. Equal to Iterations for interior points.
	Smooth float64
	// Interior reports the orbit did not escape within the budget.
	Interior bool
	// Periodic reports the orbit was classified by the periodicity check
	// rather than by exhausting the budget.
	Periodic bool
}

// SmoothSteps is the number of color indices per iteration. Escaped orbits
// are colored from Smooth at this resolution.
const SmoothSteps = 8

// Color returns the color index to plot for r: BasinColor for interior
// orbits, otherwise 1 + Smooth*SmoothSteps rounded down.
func (r Result) Color() int {
	if r.Interior {
		return BasinColor
	}
	return 1 + int(r.Smooth*SmoothSteps)
}

// Session carries the state shared by all orbits of one render: the
// periodicity flag and the iteration budget. A Session is not safe for
// concurrent use; independent renders use independent sessions.
type Session struct {
	formula   Formula
	maxIter   int
	equal     float64
	mode      Periodicity
	suspected bool
	bailExp   int
}

// NewSession creates a session iterating f up to maxIter. Two orbit values
// closer than equal on both axes are considered the same point by the
// periodicity check.
//
// A fresh session suspects periodicity, so in PeriodicityAuto mode its first
// orbit is checked.
func NewSession(f Formula, maxIter int, equal float64, mode Periodicity) *Session {
	_, e := math.Frexp(bailoutLimit(f))
	return &Session{
		formula:   f,
		maxIter:   maxIter,
		equal:     equal,
		mode:      mode,
		suspected: true,
		bailExp:   max(e, 1),
	}
}

// PeriodicitySuspected reports whether the next orbit will be checked for
// periodicity in PeriodicityAuto mode. The flag is raised by every interior
// result, periodic or not, and cleared by every escape.
func (s *Session) PeriodicitySuspected() bool {
	return s.suspected
}

func (s *Session) checkPeriodicity() bool {
	switch s.mode {
	case PeriodicityAlways:
		return true
	case PeriodicityNever:
		return false
	}
	return s.suspected
}

// Iterate advances the orbit of c from z, which is the orbit value at
// iteration start, until it escapes or reaches the session's budget.
func (s *Session) Iterate(c, z complex128, start int) Result {
	check := s.checkPeriodicity()
	saved := z
	left, period := periodicityInterval, periodicityInterval
	n := start
	for n < s.maxIter {
		z = s.formula.Step(z, c)
		n++
		if s.formula.Bailout(z) {
			s.suspected = false
			return Result{Iterations: n, Smooth: s.smooth(z, n)}
		}
		if !check || (n-start)%periodicityInterval != 0 {
			continue
		}
		if math.Abs(real(saved)-real(z)) < s.equal && math.Abs(imag(saved)-imag(z)) < s.equal {
			s.suspected = true
			return Result{Iterations: n, Smooth: float64(n), Interior: true, Periodic: true}
		}
		// the distance between checkpoints doubles so cycles of any
		// length are eventually caught
		left -= periodicityInterval
		if left <= 0 {
			period <<= 1
			saved = z
			left = period
		}
	}
	s.suspected = true
	return Result{Iterations: n, Smooth: float64(n), Interior: true}
}

// smooth corrects n using the binary exponent of |z|^2 relative to the
// exponent of the formula's bailout limit. Each step past the bailout
// roughly doubles the exponent for quadratic recurrences.
func (s *Session) smooth(z complex128, n int) float64 {
	re, im := real(z), imag(z)
	_, e := math.Frexp(re*re + im*im)
	if e <= 0 {
		return float64(n)
	}
	v := float64(n) - math.Log2(float64(e)/float64(s.bailExp))
	return min(float64(n), max(float64(n-1), v))
}
