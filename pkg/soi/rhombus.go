package soi

import (
	"math"

	"github.com/joshvictor1024/go-soi/pkg/newton"
	"github.com/joshvictor1024/go-soi/pkg/types"
)

// degenerateDeviation stands in for the relative error when the true value
// is exactly zero but the prediction is not.
const degenerateDeviation = 1000.0

// rhombus is a region on the work stack: the pixel rectangle
// [x1,x2) x [y1,y2) and the orbit values of its key points, all at
// iteration iter.
//
// Keys are indexed [row][col] on the lattice of corners, edge midpoints and
// center:
//
//	[0][0] --- [0][1] --- [0][2]   y1
//	  |          |          |
//	[1][0] --- [1][1] --- [1][2]   (y1+y2)/2
//	  |          |          |
//	[2][0] --- [2][1] --- [2][2]   y2
//	  x1    (x1+x2)/2       x2
type rhombus struct {
	x1, x2, y1, y2 int
	keys           newton.Grid
	iter           int
	depth          int
	parent         int
}

func (f *rhombus) width() int  { return f.x2 - f.x1 }
func (f *rhombus) height() int { return f.y2 - f.y1 }

func (f *rhombus) rect() types.Recti {
	return types.Recti{X: f.x1, Y: f.y1, W: f.width(), H: f.height()}
}

func (f *rhombus) mid() (xm, ym int) {
	return (f.x1 + f.x2) >> 1, (f.y1 + f.y2) >> 1
}

// nodes returns the parameter coordinates of the lattice columns and rows.
func (r *render) nodes(f *rhombus) (xs, ys newton.Nodes) {
	xm, ym := f.mid()
	xs = newton.Nodes{r.v.re(f.x1), r.v.re(xm), r.v.re(f.x2)}
	ys = newton.Nodes{r.v.im(f.y1), r.v.im(ym), r.v.im(f.y2)}
	return xs, ys
}

// quarters returns the parameter coordinates of the centers of the four
// children. The test points sit there.
func (r *render) quarters(f *rhombus) (qx, qy [2]float64) {
	xm, ym := f.mid()
	qx = [2]float64{r.v.re((f.x1 + xm) >> 1), r.v.re((xm + f.x2) >> 1)}
	qy = [2]float64{r.v.im((f.y1 + ym) >> 1), r.v.im((ym + f.y2) >> 1)}
	return qx, qy
}

// process resolves one region: it fills it, scans it, or iterates its key
// and test orbits jointly until the prediction fails and then pushes its
// four children.
func (r *render) process(f *rhombus) Status {
	idx := r.record(f)
	r.stats.Regions++
	r.stats.MaxDepth = max(r.stats.MaxDepth, f.depth)
	headroom := r.cfg.maxDepth - f.depth
	r.stats.MinHeadroom = min(r.stats.MinHeadroom, headroom)

	if r.cancelRequested() {
		r.resolve(idx, OutcomeCancelled, f.iter)
		return Cancelled
	}
	if f.iter > r.cfg.maxIter {
		return r.fill(idx, f, f.iter)
	}
	if f.height() <= r.cfg.scanThreshold || f.width() <= r.cfg.scanThreshold {
		r.stats.Scans++
		return r.scan(idx, f, OutcomeScan)
	}
	if headroom <= 0 || len(r.stack)+4 > r.cfg.maxPending {
		if !r.warned {
			r.warned = true
			Logger().Warn("soi: frame budget exhausted, scanning",
				"depth", f.depth,
				"pending", len(r.stack),
				"rect", f.rect(),
			)
		}
		r.stats.ForcedScans++
		return r.scan(idx, f, OutcomeForcedScan)
	}

	xs, ys := r.nodes(f)
	qx, qy := r.quarters(f)

	var kc [3][3]complex128
	for i := range 3 {
		for j := range 3 {
			kc[i][j] = complex(xs[j], ys[i])
		}
	}
	var tc, tz [4]complex128
	for i := range 2 {
		for j := range 2 {
			tc[2*i+j] = complex(qx[j], qy[i])
			tz[2*i+j] = f.keys.At(xs, ys, qx[j], qy[i])
		}
	}

	z := f.keys
	var saved newton.Grid
	iter := f.iter
	check := r.sess.checkPeriodicity()
	ck := checkpoint{keys: z, tests: tz}
	left, period := periodicityInterval, periodicityInterval
	for {
		if r.cancelRequested() {
			r.resolve(idx, OutcomeCancelled, iter)
			return Cancelled
		}
		saved = z
		iter++
		escaped := r.step(&z, &kc, &tz, &tc, iter)
		r.stats.JointSteps++

		// an escaping orbit breaks the smoothness the prediction relies on
		if escaped {
			break
		}
		// nothing escaped within the budget: the whole region is interior
		if iter > r.cfg.maxIter {
			return r.fill(idx, f, iter)
		}
		if r.deviates(&z, xs, ys, &tz, &tc) {
			break
		}
		if !check || (iter-f.iter)%periodicityInterval != 0 {
			continue
		}
		// every key and test orbit settled: the prediction holds, so the
		// orbits between them are settled too
		if ck.settled(&z, &tz, r.sess.equal) {
			r.sess.suspected = true
			r.stats.BasinFills++
			return r.fill(idx, f, iter)
		}
		left -= periodicityInterval
		if left <= 0 {
			period <<= 1
			ck = checkpoint{keys: z, tests: tz}
			left = period
		}
	}

	// back to the last state the prediction held for
	iter--
	if iter-f.iter < r.cfg.minGain {
		r.stats.EarlyScans++
		g := *f
		g.keys = saved
		g.iter = iter
		return r.scan(idx, &g, OutcomeEarlyScan)
	}

	lattice := saved.Refine(xs, ys, qx, qy)
	xm, ym := f.mid()
	xb := [3]int{f.x1, xm, f.x2}
	yb := [3]int{f.y1, ym, f.y2}
	for k := 3; k >= 0; k-- {
		i, j := k>>1, k&1
		r.stack = append(r.stack, rhombus{
			x1:     xb[j],
			x2:     xb[j+1],
			y1:     yb[i],
			y2:     yb[i+1],
			keys:   newton.Sub(&lattice, i, j),
			iter:   iter,
			depth:  f.depth + 1,
			parent: idx,
		})
	}
	r.stats.Subdivisions++
	r.resolve(idx, OutcomeSubdivide, iter)
	return Completed
}

// checkpoint holds the 13 orbit values a region's periodicity check
// compares against.
type checkpoint struct {
	keys  newton.Grid
	tests [4]complex128
}

func (ck *checkpoint) settled(z *newton.Grid, tz *[4]complex128, equal float64) bool {
	near := func(a, b complex128) bool {
		return math.Abs(real(a)-real(b)) < equal && math.Abs(imag(a)-imag(b)) < equal
	}
	for i := range 3 {
		for j := range 3 {
			if !near(ck.keys[i][j], z[i][j]) {
				return false
			}
		}
	}
	for k := range 4 {
		if !near(ck.tests[k], tz[k]) {
			return false
		}
	}
	return true
}

// step advances all key and test orbits by one iteration and reports
// whether any of them escaped. All thirteen are stepped regardless.
func (r *render) step(z *newton.Grid, kc *[3][3]complex128, tz, tc *[4]complex128, iter int) bool {
	fm := r.cfg.formula
	escaped := false
	for i := range 3 {
		for j := range 3 {
			z[i][j] = fm.Step(z[i][j], kc[i][j])
			escaped = fm.Bailout(z[i][j]) || escaped
			r.logOrbit(z[i][j], iter)
		}
	}
	for k := range 4 {
		tz[k] = fm.Step(tz[k], tc[k])
		escaped = fm.Bailout(tz[k]) || escaped
		r.logOrbit(tz[k], iter)
	}
	return escaped
}

// deviates reports whether any test orbit is further from its predicted
// value than the tolerance allows.
func (r *render) deviates(z *newton.Grid, xs, ys newton.Nodes, tz, tc *[4]complex128) bool {
	for k := range 4 {
		p := z.At(xs, ys, real(tc[k]), imag(tc[k]))
		if deviation(real(p), real(tz[k])) > r.tol || deviation(imag(p), imag(tz[k])) > r.tol {
			return true
		}
	}
	return false
}

// deviation is the relative error |1 - predicted/actual|.
func deviation(predicted, actual float64) float64 {
	if actual == 0 {
		if predicted == 0 {
			return 0
		}
		return degenerateDeviation
	}
	d := math.Abs(1 - predicted/actual)
	if math.IsNaN(d) {
		return degenerateDeviation
	}
	return d
}

// fill paints the region as interior.
func (r *render) fill(idx int, f *rhombus, iter int) Status {
	for y := f.y1; y < f.y2; y++ {
		if r.cancelRequested() {
			r.resolve(idx, OutcomeCancelled, iter)
			return Cancelled
		}
		r.plot.PlotSpan(y, f.x1, f.x2, BasinColor)
	}
	r.stats.InteriorFills++
	r.resolve(idx, OutcomeInteriorFill, iter)
	return Completed
}
