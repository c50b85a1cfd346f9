package soi

// Plotter receives finished pixel colors.
type Plotter interface {
	// Plot sets a single pixel.
	Plot(x, y, color int)
	// PlotSpan sets pixels x0 through x1-1 of row y.
	PlotSpan(y, x0, x1, color int)
}

// Framebuffer is an in-memory Plotter holding one color index per pixel.
// Writes outside the buffer are ignored.
type Framebuffer struct {
	width  int
	height int
	data   []int // [y*width+x]
}

// NewFramebuffer creates a framebuffer with every pixel set to BasinColor.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		data:   make([]int, width*height),
	}
}

func (fb *Framebuffer) Width() int {
	return fb.width
}

func (fb *Framebuffer) Height() int {
	return fb.height
}

func (fb *Framebuffer) Plot(x, y, color int) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.data[y*fb.width+x] = color
}

func (fb *Framebuffer) PlotSpan(y, x0, x1, color int) {
	if y < 0 || y >= fb.height {
		return
	}
	x0, x1 = max(x0, 0), min(x1, fb.width)
	row := fb.data[y*fb.width : (y+1)*fb.width]
	for x := x0; x < x1; x++ {
		row[x] = color
	}
}

// At returns the color of a pixel, or -1 outside the buffer.
func (fb *Framebuffer) At(x, y int) int {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return -1
	}
	return fb.data[y*fb.width+x]
}

// Row returns the colors of row y. The slice aliases the buffer.
func (fb *Framebuffer) Row(y int) []int {
	return fb.data[y*fb.width : (y+1)*fb.width]
}

// Fill sets every pixel to color.
func (fb *Framebuffer) Fill(color int) {
	for i := range fb.data {
		fb.data[i] = color
	}
}

// Diff counts the pixels that differ between fb and o. Buffers of different
// sizes differ everywhere.
func (fb *Framebuffer) Diff(o *Framebuffer) int {
	if fb.width != o.width || fb.height != o.height {
		return max(len(fb.data), len(o.data))
	}
	n := 0
	for i, c := range fb.data {
		if o.data[i] != c {
			n++
		}
	}
	return n
}

func (fb *Framebuffer) Equal(o *Framebuffer) bool {
	return fb.Diff(o) == 0
}
