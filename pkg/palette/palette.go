// Package palette maps the color indices produced by package soi to RGBA
// colors.
package palette

import (
	"image/color"

	"github.com/gogpu/gg"
)

// DefaultCycle is the number of color indices per trip around the hue
// circle. At soi.SmoothSteps indices per iteration that is 32 iterations.
const DefaultCycle = 256

// Palette cycles hues with the color index. Index 0 (the basin) has its own
// color.
type Palette struct {
	colors []gg.RGBA
	basin  gg.RGBA
	rgba   []color.RGBA
}

// New builds a palette with cycle hue steps. Values below 1 use
// DefaultCycle.
func New(cycle int) *Palette {
	if cycle < 1 {
		cycle = DefaultCycle
	}
	p := &Palette{
		colors: make([]gg.RGBA, cycle),
		basin:  gg.Black,
		rgba:   make([]color.RGBA, cycle),
	}
	for i := range cycle {
		h := 240 + 360*float64(i)/float64(cycle)
		p.colors[i] = gg.HSL(h, 0.85, 0.55)
		p.rgba[i] = toRGBA(p.colors[i])
	}
	return p
}

// Len returns the number of hue steps.
func (p *Palette) Len() int {
	return len(p.colors)
}

// At returns the color for index c. Negative indices are treated as the basin.
func (p *Palette) At(c int) gg.RGBA {
	if c <= 0 {
		return p.basin
	}
	return p.colors[(c-1)%len(p.colors)]
}

// RGBA returns the color for index c as 8 bit components.
func (p *Palette) RGBA(c int) color.RGBA {
	if c <= 0 {
		return toRGBA(p.basin)
	}
	return p.rgba[(c-1)%len(p.rgba)]
}

func toRGBA(c gg.RGBA) color.RGBA {
	return color.RGBAModel.Convert(c.Color()).(color.RGBA)
}
