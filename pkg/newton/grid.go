package newton

// Grid holds complex samples on a 3x3 lattice, indexed [row][col]. Rows
// follow the Y nodes and columns the X nodes.
//
// Real parts are interpolated along X first, imaginary parts along Y first.
// Both orders give the same polynomial; fixing them keeps results bitwise
// reproducible between Grid.At and Surface.At.
type Grid [3][3]complex128

// At interpolates the grid at (x, y).
func (g *Grid) At(xs, ys Nodes, x, y float64) complex128 {
	var rows, cols [3]float64
	for i := range 3 {
		rows[i] = xs.At(real(g[i][0]), real(g[i][1]), real(g[i][2]), x)
		cols[i] = ys.At(imag(g[0][i]), imag(g[1][i]), imag(g[2][i]), y)
	}
	return complex(ys.At(rows[0], rows[1], rows[2], y), xs.At(cols[0], cols[1], cols[2], x))
}

// Refine interpolates g onto a 5x5 lattice whose nodes are the original
// nodes plus qx between each pair of X nodes and qy between each pair of Y
// nodes. Original samples are carried over unchanged; new edge samples are
// one-dimensional interpolations along their row or column, and the four
// new interior samples are full two-dimensional interpolations.
func (g *Grid) Refine(xs, ys Nodes, qx, qy [2]float64) [5][5]complex128 {
	var f [5][5]complex128
	for r := range 3 {
		for c := range 3 {
			f[2*r][2*c] = g[r][c]
		}
		for k := range 2 {
			f[2*r][2*k+1] = complex(
				xs.At(real(g[r][0]), real(g[r][1]), real(g[r][2]), qx[k]),
				xs.At(imag(g[r][0]), imag(g[r][1]), imag(g[r][2]), qx[k]),
			)
		}
	}
	for c := range 3 {
		for k := range 2 {
			f[2*k+1][2*c] = complex(
				ys.At(real(g[0][c]), real(g[1][c]), real(g[2][c]), qy[k]),
				ys.At(imag(g[0][c]), imag(g[1][c]), imag(g[2][c]), qy[k]),
			)
		}
	}
	for i := range 2 {
		for j := range 2 {
			f[2*i+1][2*j+1] = g.At(xs, ys, qx[j], qy[i])
		}
	}
	return f
}

// Sub extracts the 3x3 grid starting at row 2*i, column 2*j of a refined
// lattice.
func Sub(f *[5][5]complex128, i, j int) Grid {
	var g Grid
	for r := range 3 {
		for c := range 3 {
			g[r][c] = f[2*i+r][2*j+c]
		}
	}
	return g
}

// Surface is a Grid with its per-row and per-column polynomials built once,
// for evaluating many points of the same region.
type Surface struct {
	xs, ys Nodes
	rows   [3]Poly // real parts along X
	cols   [3]Poly // imaginary parts along Y
}

func NewSurface(g *Grid, xs, ys Nodes) *Surface {
	s := &Surface{xs: xs, ys: ys}
	for i := range 3 {
		s.rows[i] = NewPoly(xs, real(g[i][0]), real(g[i][1]), real(g[i][2]))
		s.cols[i] = NewPoly(ys, imag(g[0][i]), imag(g[1][i]), imag(g[2][i]))
	}
	return s
}

// At returns the same value as Grid.At for the grid the surface was built
// from.
func (s *Surface) At(x, y float64) complex128 {
	re := s.ys.At(s.rows[0].At(x), s.rows[1].At(x), s.rows[2].At(x), y)
	im := s.xs.At(s.cols[0].At(y), s.cols[1].At(y), s.cols[2].At(y), x)
	return complex(re, im)
}
