package soi

import (
	"github.com/joshvictor1024/go-soi/pkg/newton"
)

// seeder predicts the orbit value of a parameter at the region's iteration.
type seeder interface {
	At(re, im float64) complex128
}

// startSeeder seeds from the frame's starting orbit. Only regions that have
// not been iterated yet may use it.
type startSeeder KeyOrbitFunc

func (s startSeeder) At(re, im float64) complex128 {
	return s(complex(re, im))
}

func (r *render) seeder(f *rhombus) seeder {
	// a frame one pixel wide or high has coincident interpolation nodes;
	// this only happens for the untouched root region
	if f.width() < 2 || f.height() < 2 {
		return startSeeder(r.v.start)
	}
	xs, ys := r.nodes(f)
	return newton.NewSurface(&f.keys, xs, ys)
}

// scan renders the region pixel by pixel, row by row. Each row is sampled
// every interleave pixels; where two samples differ, the pixels between
// them are iterated leftward from the right sample until the left sample's
// color is met again, and the rest of the gap is filled as one run.
func (r *render) scan(idx int, f *rhombus, o Outcome) Status {
	seed := r.seeder(f)
	for y := f.y1; y < f.y2; y++ {
		if r.cancelRequested() {
			r.resolve(idx, OutcomeCancelled, f.iter)
			return Cancelled
		}
		r.scanRow(seed, y, f.x1, f.x2, f.iter)
	}
	r.resolve(idx, o, f.iter)
	return Completed
}

func (r *render) scanRow(seed seeder, y, x1, x2, iter int) {
	stride := r.cfg.interleave
	im := r.v.im(y)
	colorAt := func(x int) int {
		re := r.v.re(x)
		r.stats.PixelsIterated++
		return r.sess.Iterate(complex(re, im), seed.At(re, im), iter).Color()
	}

	saveX, saveColor := x1, colorAt(x1)
	for x := x1 + stride; x < x2; x += stride {
		color := colorAt(x)
		if color == saveColor {
			continue
		}
		end := r.backfill(y, x-1, x-stride, saveColor, colorAt)
		r.span(y, saveX, end, saveColor)
		saveX, saveColor = x, color
	}
	end := r.backfill(y, x2-1, saveX, saveColor, colorAt)
	r.span(y, saveX, end, saveColor)
}

// backfill iterates pixels leftward from x, stopping before stop, plotting
// each one until a pixel of color is met. It returns the last x of the run
// of color.
func (r *render) backfill(y, x, stop, color int, colorAt func(int) int) int {
	for ; x > stop; x-- {
		c := colorAt(x)
		if c == color {
			break
		}
		r.plot.Plot(x, y, c)
	}
	return x
}

// span plots x0 through x1 inclusive.
func (r *render) span(y, x0, x1, color int) {
	if x0 < x1 {
		r.plot.PlotSpan(y, x0, x1+1, color)
		return
	}
	r.plot.Plot(x0, y, color)
}
