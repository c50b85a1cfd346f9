package types

type Pointi struct {
	X, Y int
}

type Pointf64 struct {
	X, Y float64
}

// Recti is a pixel rectangle covering [X, X+W) x [Y, Y+H).
type Recti struct {
	X, Y, W, H int
}

func (r Recti) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Max returns the exclusive lower right corner.
func (r Recti) Max() Pointi {
	return Pointi{X: r.X + r.W, Y: r.Y + r.H}
}

func (r Recti) Contains(p Pointi) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersect returns the largest rectangle contained in both r and o.
// The result is empty (W or H zero) if they do not overlap.
func (r Recti) Intersect(o Recti) Recti {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Recti{X: x0, Y: y0}
	}
	return Recti{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Rectf64 is a rectangle in number space. X, Y is the upper left corner,
// with Y growing upward.
type Rectf64 struct {
	X, Y, W, H float64
}
