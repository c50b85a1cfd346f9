// Command soirender renders an escape-time fractal with Simultaneous Orbit
// Iteration and writes it as an image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joshvictor1024/go-soi/pkg/palette"
	"github.com/joshvictor1024/go-soi/pkg/soi"
	"github.com/joshvictor1024/go-soi/pkg/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type options struct {
	width, height  int
	minRe, maxRe   float64
	minIm, maxIm   float64
	maxIter        int
	tolerance      float64
	threshold      int
	interleave     int
	periodicity    string
	formula        string
	cycle          int
	output, format string
	outline        bool
	compare        bool
	orbitLog       string
	verbose        bool
}

func main() {
	var o options
	flag.IntVar(&o.width, "width", 800, "image width")
	flag.IntVar(&o.height, "height", 600, "image height")
	flag.Float64Var(&o.minRe, "minre", -2.5, "left edge of the view")
	flag.Float64Var(&o.maxRe, "maxre", 1, "right edge of the view")
	flag.Float64Var(&o.minIm, "minim", -1.3125, "bottom edge of the view")
	flag.Float64Var(&o.maxIm, "maxim", 1.3125, "top edge of the view")
	flag.IntVar(&o.maxIter, "maxiter", soi.DefaultMaxIterations, "iteration budget")
	flag.Float64Var(&o.tolerance, "tol", soi.DefaultTolerance, "interpolation tolerance")
	flag.IntVar(&o.threshold, "threshold", soi.DefaultScanThreshold, "scan regions this many pixels high or wide")
	flag.IntVar(&o.interleave, "interleave", soi.DefaultInterleave, "scan sample spacing")
	flag.StringVar(&o.periodicity, "periodicity", "auto", "periodicity check: auto, always or never")
	flag.StringVar(&o.formula, "formula", "mandelbrot", "formula: mandelbrot or halving")
	flag.IntVar(&o.cycle, "cycle", palette.DefaultCycle, "color indices per palette cycle")
	flag.StringVar(&o.output, "output", "soi.png", "output file")
	flag.StringVar(&o.format, "format", "", "png, bmp or tiff; default from the output extension")
	flag.BoolVar(&o.outline, "outline", false, "outline the regions the renderer resolved")
	flag.BoolVar(&o.compare, "compare", false, "also render by scanning and report differing pixels")
	flag.StringVar(&o.orbitLog, "orbitlog", "", "write joint orbit samples to this file")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	soi.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o); err != nil {
		log.Fatalf("soirender: %v", err)
	}
}

func run(ctx context.Context, o options) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("%w: %dx%d", soi.ErrEmptyFrame, o.width, o.height)
	}
	format, err := outputFormat(o.output, o.format)
	if err != nil {
		return err
	}
	formula, err := parseFormula(o.formula)
	if err != nil {
		return err
	}
	mode, err := soi.ParsePeriodicity(o.periodicity)
	if err != nil {
		return err
	}

	opts := []soi.Option{
		soi.WithFormula(formula),
		soi.WithMaxIterations(o.maxIter),
		soi.WithTolerance(o.tolerance),
		soi.WithScanThreshold(o.threshold),
		soi.WithInterleave(o.interleave),
		soi.WithPeriodicity(mode),
		soi.WithTrace(o.outline),
	}
	var ol *soi.OrbitLog
	if o.orbitLog != "" {
		f, err := os.Create(o.orbitLog)
		if err != nil {
			return err
		}
		defer f.Close()
		ol = soi.NewOrbitLog(f)
		opts = append(opts, soi.WithOrbitLogger(ol))
	}

	frame := soi.Frame{
		Min:    complex(o.minRe, o.minIm),
		Max:    complex(o.maxRe, o.maxIm),
		Pixels: types.Recti{W: o.width, H: o.height},
	}
	r := soi.NewRenderer(opts...)
	fb := soi.NewFramebuffer(o.width, o.height)

	start := time.Now()
	status, err := r.Render(ctx, fb, frame)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if status == soi.Cancelled {
		slog.Warn("render cancelled, writing partial image")
	}
	if ol != nil {
		if err := ol.Flush(); err != nil {
			return fmt.Errorf("orbit log: %w", err)
		}
	}

	pr := message.NewPrinter(language.English)
	printStats(pr, r.LastStats(), o.width*o.height, elapsed)

	if o.compare && status == soi.Completed {
		ref := soi.NewFramebuffer(o.width, o.height)
		start := time.Now()
		if _, err := soi.NewRenderer(opts...).Scan(ctx, ref, frame); err != nil {
			return err
		}
		n := fb.Diff(ref)
		pr.Printf("scan only: %v, %d pixels differ (%.3f%%)\n",
			time.Since(start).Round(time.Millisecond), n, 100*float64(n)/float64(o.width*o.height))
	}

	var trace []soi.Region
	if o.outline {
		trace = r.Trace()
	}
	if err := writeImage(o.output, format, fb, palette.New(o.cycle), trace); err != nil {
		return err
	}
	slog.Info("image saved", "path", o.output, "format", format, "width", o.width, "height", o.height)
	return nil
}

func parseFormula(name string) (soi.Formula, error) {
	switch name {
	case "mandelbrot":
		return soi.Mandelbrot{}, nil
	case "halving":
		return soi.Halving{}, nil
	}
	return nil, fmt.Errorf("unknown formula %q", name)
}

func printStats(pr *message.Printer, s soi.Stats, pixels int, elapsed time.Duration) {
	pr.Printf("rendered %d pixels in %v\n", pixels, elapsed.Round(time.Millisecond))
	pr.Printf("  regions %d, subdivided %d\n", s.Regions, s.Subdivisions)
	pr.Printf("  scans %d, early %d, forced %d, interior fills %d (%d periodic)\n",
		s.Scans, s.EarlyScans, s.ForcedScans, s.InteriorFills, s.BasinFills)
	pr.Printf("  joint steps %d, pixels iterated %d, max depth %d\n",
		s.JointSteps, s.PixelsIterated, s.MaxDepth)
}
