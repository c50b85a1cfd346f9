package soi

import (
	"context"
	"sync"
)

// Status is the outcome of a render.
type Status int

const (
	Completed Status = iota
	// Cancelled renders leave the pixels of already resolved regions in
	// place; the rest of the frame is untouched.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Renderer renders frames with Simultaneous Orbit Iteration. It is safe for
// concurrent use; every call runs its own session.
type Renderer struct {
	cfg config

	mu    sync.Mutex
	stats Stats
	trace []Region
}

func NewRenderer(opts ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}

// Render renders f into p. It returns Cancelled as soon as ctx is done or
// the configured Canceler fires; the error is reserved for invalid input.
func (r *Renderer) Render(ctx context.Context, p Plotter, f Frame) (Status, error) {
	return r.render(ctx, p, f, false)
}

// Scan renders f with the scanning renderer alone, iterating the whole
// frame from interpolated starting values without subdividing.
func (r *Renderer) Scan(ctx context.Context, p Plotter, f Frame) (Status, error) {
	return r.render(ctx, p, f, true)
}

// LastStats returns the statistics of the most recently finished render.
func (r *Renderer) LastStats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Trace returns the regions processed by the most recently finished render,
// in processing order. It is empty unless WithTrace is set.
func (r *Renderer) Trace() []Region {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Region(nil), r.trace...)
}

func (r *Renderer) render(ctx context.Context, p Plotter, f Frame, scanOnly bool) (Status, error) {
	if p == nil {
		return Completed, ErrNilPlotter
	}
	if r.cfg.formula == nil {
		return Completed, ErrNilFormula
	}
	v, err := newView(f)
	if err != nil {
		return Completed, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rs := newRender(ctx, &r.cfg, p, v)
	root := rs.root()
	var status Status
	if scanOnly {
		rs.stats.Regions++
		rs.stats.Scans++
		status = rs.scan(rs.record(&root), &root, OutcomeScan)
	} else {
		status = rs.run(root)
	}

	Logger().Debug("soi: render finished",
		"status", status,
		"pixels", f.Pixels,
		"scan_only", scanOnly,
		"stats", rs.stats,
	)

	r.mu.Lock()
	r.stats = rs.stats
	r.trace = rs.trace
	r.mu.Unlock()
	return status, nil
}

// render is the state of one call: the session, the work stack and the
// statistics.
type render struct {
	ctx  context.Context
	cfg  *config
	plot Plotter
	v    view
	sess *Session
	tol  float64

	stack     []rhombus
	stats     Stats
	trace     []Region
	cancelled bool
	warned    bool
}

func newRender(ctx context.Context, cfg *config, p Plotter, v view) *render {
	return &render{
		ctx:   ctx,
		cfg:   cfg,
		plot:  p,
		v:     v,
		sess:  NewSession(cfg.formula, cfg.maxIter, v.equal(), cfg.periodicity),
		tol:   cfg.tolerance / float64(max(v.px.W-1, 1)),
		stack: make([]rhombus, 0, min(cfg.maxPending, 3*cfg.maxDepth+4)),
		stats: Stats{MinHeadroom: cfg.maxDepth},
	}
}

// root is the region covering the whole frame, its key points at their
// starting orbit values.
func (r *render) root() rhombus {
	px := r.v.px
	f := rhombus{
		x1:     px.X,
		x2:     px.X + px.W,
		y1:     px.Y,
		y2:     px.Y + px.H,
		iter:   1,
		parent: -1,
	}
	xs, ys := r.nodes(&f)
	for i := range 3 {
		for j := range 3 {
			f.keys[i][j] = r.v.start(complex(xs[j], ys[i]))
		}
	}
	return f
}

// run processes regions depth first until the stack is empty. Children are
// pushed in reverse so they are visited top left, top right, bottom left,
// bottom right.
func (r *render) run(root rhombus) Status {
	r.stack = append(r.stack[:0], root)
	for len(r.stack) > 0 {
		n := len(r.stack) - 1
		f := r.stack[n]
		r.stack = r.stack[:n]
		if r.process(&f) == Cancelled {
			return Cancelled
		}
	}
	return Completed
}

func (r *render) cancelRequested() bool {
	if r.cancelled {
		return true
	}
	if r.ctx.Err() != nil || (r.cfg.canceler != nil && r.cfg.canceler.CancelRequested()) {
		r.cancelled = true
	}
	return r.cancelled
}

func (r *render) record(f *rhombus) int {
	if !r.cfg.trace {
		return -1
	}
	r.trace = append(r.trace, Region{
		Rect:      f.rect(),
		Depth:     f.depth,
		Parent:    f.parent,
		Iteration: f.iter,
	})
	return len(r.trace) - 1
}

func (r *render) resolve(idx int, o Outcome, iter int) {
	if idx < 0 {
		return
	}
	r.trace[idx].Outcome = o
	r.trace[idx].Iteration = iter
}

func (r *render) logOrbit(z complex128, iter int) {
	if r.cfg.orbitLog != nil {
		r.cfg.orbitLog.LogOrbitSample(real(z), imag(z), float64(iter))
	}
}
