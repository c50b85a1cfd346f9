package soi

// Option configures a Renderer.
//
// Example:
//
//	r := soi.NewRenderer(
//	    soi.WithMaxIterations(1024),
//	    soi.WithTolerance(0.05),
//	)
type Option func(*config)

// Defaults, matching the tuning of the classic SOI implementation.
const (
	DefaultMaxIterations    = 256
	DefaultTolerance        = 0.1
	DefaultScanThreshold    = 16
	DefaultInterleave       = 4
	DefaultMinSubdivideGain = 10
	DefaultMaxDepth         = 48
	DefaultMaxPending       = 1024

	// MinScanThreshold keeps the interpolation nodes of every subdivided
	// region distinct.
	MinScanThreshold = 4
)

type config struct {
	formula       Formula
	maxIter       int
	tolerance     float64
	scanThreshold int
	interleave    int
	minGain       int
	maxDepth      int
	maxPending    int
	periodicity   Periodicity
	canceler      Canceler
	orbitLog      OrbitLogger
	trace         bool
}

func defaultConfig() config {
	return config{
		formula:       Mandelbrot{},
		maxIter:       DefaultMaxIterations,
		tolerance:     DefaultTolerance,
		scanThreshold: DefaultScanThreshold,
		interleave:    DefaultInterleave,
		minGain:       DefaultMinSubdivideGain,
		maxDepth:      DefaultMaxDepth,
		maxPending:    DefaultMaxPending,
		periodicity:   PeriodicityAuto,
	}
}

// WithFormula sets the recurrence to render. Default is Mandelbrot.
func WithFormula(f Formula) Option {
	return func(c *config) {
		c.formula = f
	}
}

// WithMaxIterations sets the iteration budget. Orbits still bounded after
// n iterations are classified interior.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		c.maxIter = n
	}
}

// WithTolerance sets the acceptable relative interpolation error, expressed
// for the whole image width. The per-render tolerance is t divided by the
// image width in pixels minus one. Zero makes every inexact prediction fail.
func WithTolerance(t float64) Option {
	return func(c *config) {
		c.tolerance = t
	}
}

// WithScanThreshold sets the region side length, in pixels, at or below
// which regions are scanned instead of subdivided. Values below
// MinScanThreshold are raised to it.
func WithScanThreshold(px int) Option {
	return func(c *config) {
		c.scanThreshold = max(px, MinScanThreshold)
	}
}

// WithInterleave sets the scan sampling stride. Color boundaries narrower
// than the stride may be missed; 1 scans every pixel.
func WithInterleave(n int) Option {
	return func(c *config) {
		c.interleave = max(n, 1)
	}
}

// WithMinSubdivideGain sets how many joint iterations a region must gain
// before it is worth subdividing. Regions failing sooner are scanned.
func WithMinSubdivideGain(n int) Option {
	return func(c *config) {
		c.minGain = max(n, 0)
	}
}

// WithMaxDepth bounds the subdivision depth. Regions at the limit are
// scanned.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = max(n, 0)
	}
}

// WithMaxPending bounds the number of regions waiting on the work stack.
// A region whose children would not fit is scanned.
func WithMaxPending(n int) Option {
	return func(c *config) {
		c.maxPending = max(n, 4)
	}
}

// WithPeriodicity selects the periodicity check mode.
func WithPeriodicity(p Periodicity) Option {
	return func(c *config) {
		c.periodicity = p
	}
}

// WithCanceler installs a cancellation poll, checked alongside the render
// context.
func WithCanceler(cc Canceler) Option {
	return func(c *config) {
		c.canceler = cc
	}
}

// WithOrbitLogger installs a sink receiving every joint orbit step of the
// subdivider.
func WithOrbitLogger(l OrbitLogger) Option {
	return func(c *config) {
		c.orbitLog = l
	}
}

// WithTrace records every processed region. See Renderer.Trace.
func WithTrace(enabled bool) Option {
	return func(c *config) {
		c.trace = enabled
	}
}
