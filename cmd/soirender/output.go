package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"github.com/joshvictor1024/go-soi/pkg/palette"
	"github.com/joshvictor1024/go-soi/pkg/soi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// outputFormat returns format, or the format named by path's extension
// when format is empty.
func outputFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if format == "tif" {
			format = "tiff"
		}
	}
	switch format {
	case "png", "bmp", "tiff":
		return format, nil
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}

// paint draws fb through pal, then outlines every leaf region of trace.
func paint(fb *soi.Framebuffer, pal *palette.Palette, trace []soi.Region) *gg.Context {
	dc := gg.NewContext(fb.Width(), fb.Height())
	for y := range fb.Height() {
		for x, c := range fb.Row(y) {
			dc.SetPixel(x, y, pal.At(c))
		}
	}

	if len(trace) == 0 {
		return dc
	}
	dc.SetRGBA(1, 1, 1, 0.35)
	dc.SetLineWidth(1)
	for _, reg := range trace {
		if reg.Outcome == soi.OutcomeSubdivide || reg.Outcome == soi.OutcomePending {
			continue
		}
		rc := reg.Rect
		dc.DrawRectangle(float64(rc.X)+0.5, float64(rc.Y)+0.5, float64(rc.W-1), float64(rc.H-1))
	}
	_ = dc.Stroke()
	return dc
}

func writeImage(path, format string, fb *soi.Framebuffer, pal *palette.Palette, trace []soi.Region) error {
	dc := paint(fb, pal, trace)
	defer dc.Close()

	if format == "png" {
		return dc.SavePNG(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case "bmp":
		err = bmp.Encode(f, dc.Image())
	case "tiff":
		err = tiff.Encode(f, dc.Image(), &tiff.Options{Compression: tiff.Deflate})
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
