package main

import (
	"errors"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshvictor1024/go-soi/pkg/palette"
	"github.com/joshvictor1024/go-soi/pkg/soi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		path, format string
		want         string
		wantErr      bool
	}{
		{"out.png", "", "png", false},
		{"out.PNG", "", "png", false},
		{"out.tif", "", "tiff", false},
		{"out.bmp", "", "bmp", false},
		{"out.png", "tiff", "tiff", false},
		{"out.jpg", "", "", true},
		{"out", "", "", true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.path, tt.format)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("outputFormat(%q, %q) = %q, %v", tt.path, tt.format, got, err)
		}
	}
}

func TestParseFormula(t *testing.T) {
	if f, err := parseFormula("mandelbrot"); err != nil || f != (soi.Mandelbrot{}) {
		t.Errorf("mandelbrot: %v, %v", f, err)
	}
	if f, err := parseFormula("halving"); err != nil || f != (soi.Halving{}) {
		t.Errorf("halving: %v, %v", f, err)
	}
	if _, err := parseFormula("julia"); err == nil {
		t.Error("unknown formula accepted")
	}
}

func TestWriteImage(t *testing.T) {
	fb := soi.NewFramebuffer(8, 6)
	fb.PlotSpan(0, 0, 8, 5)
	pal := palette.New(16)

	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+format)
			if err := writeImage(path, format, fb, pal, nil); err != nil {
				t.Fatalf("writeImage: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, name, err := image.Decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if name != format {
				t.Errorf("decoded as %s", name)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Fatalf("bounds = %v", b)
			}
			if r, g, b, _ := img.At(3, 4).RGBA(); r|g|b != 0 {
				t.Errorf("basin pixel = %d,%d,%d, want black", r, g, b)
			}
			if r, g, b, _ := img.At(3, 0).RGBA(); r|g|b == 0 {
				t.Error("escaped pixel painted black")
			}
		})
	}
}

func TestRunWritesImage(t *testing.T) {
	dir := t.TempDir()
	o := options{
		width: 48, height: 36,
		minRe: -2.5, maxRe: 1, minIm: -1.3125, maxIm: 1.3125,
		maxIter:     64,
		tolerance:   soi.DefaultTolerance,
		threshold:   soi.DefaultScanThreshold,
		interleave:  soi.DefaultInterleave,
		periodicity: "auto",
		formula:     "mandelbrot",
		cycle:       16,
		output:      filepath.Join(dir, "m.png"),
		outline:     true,
		compare:     true,
		orbitLog:    filepath.Join(dir, "orbits.txt"),
	}
	if err := run(t.Context(), o); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, p := range []string{o.output, o.orbitLog} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}

	bad := o
	bad.width = -5
	if err := run(t.Context(), bad); !errors.Is(err, soi.ErrEmptyFrame) {
		t.Errorf("run with negative width = %v, want ErrEmptyFrame", err)
	}

	o.periodicity = "sometimes"
	if err := run(t.Context(), o); err == nil {
		t.Error("run accepted an unknown periodicity mode")
	}
}
