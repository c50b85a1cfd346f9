package main

import (
	"github.com/joshvictor1024/go-soi/pkg/soi"
	"github.com/joshvictor1024/go-soi/pkg/types"
	"github.com/veandco/go-sdl2/sdl"
)

type scene struct {
	renderer       *sdl.Renderer
	canvas         *canvas
	w              int32
	h              int32
	numberPerPixel float64
	numberOrigin   types.Pointf64
	drag           types.Pointi // pixels the view is dragged by but not yet moved
	showMap        bool
}

func newScene(r *sdl.Renderer, w, h int32, opts []soi.Option) (*scene, error) {
	s := scene{
		renderer:       r,
		w:              w,
		h:              h,
		numberPerPixel: 0.004,
		numberOrigin:   types.Pointf64{X: -2.25, Y: 1.2},
	}
	c, err := newCanvas(r, int(w), int(h), s.numberOrigin, s.numberPerPixel, opts)
	if err != nil {
		return nil, err
	}
	s.canvas = c
	go c.work()
	return &s, nil
}

func (s *scene) close() {
	s.canvas.close()
}

func (s *scene) draw() {
	s.canvas.generate()

	numberRect := types.Rectf64{
		X: s.numberOrigin.X + float64(s.drag.X)*s.numberPerPixel,
		Y: s.numberOrigin.Y - float64(s.drag.Y)*s.numberPerPixel,
		W: float64(s.w) * s.numberPerPixel,
		H: float64(s.h) * s.numberPerPixel,
	}
	s.canvas.draw(numberRect)
	if s.showMap {
		s.canvas.dump(numberRect, types.Pointf64{X: 0, Y: 0}, 0.15)
	}
}

// dragView previews a pan without rendering anything new.
func (s *scene) dragView(deltaPixel types.Pointi) {
	s.drag = deltaPixel
}

// updateView pans by deltaPixel, then scales the view by
// ratioNumberPerPixel about the pixel at pivot.
func (s *scene) updateView(deltaPixel types.Pointi, ratioNumberPerPixel float64, pivot types.Pointi) {
	s.drag = types.Pointi{}
	s.numberOrigin, s.numberPerPixel = moveView(s.numberOrigin, s.numberPerPixel, deltaPixel, ratioNumberPerPixel, pivot)
	s.canvas.setView(s.numberOrigin, s.numberPerPixel)
}

func (s *scene) stop() {
	s.canvas.stop()
}

func moveView(origin types.Pointf64, numberPerPixel float64, deltaPixel types.Pointi, ratio float64, pivot types.Pointi) (types.Pointf64, float64) {
	origin.X += float64(deltaPixel.X) * numberPerPixel
	origin.Y -= float64(deltaPixel.Y) * numberPerPixel

	pivotNumber := types.Pointf64{
		X: origin.X + float64(pivot.X)*numberPerPixel,
		Y: origin.Y - float64(pivot.Y)*numberPerPixel,
	}
	numberPerPixel *= ratio
	origin.X = pivotNumber.X - float64(pivot.X)*numberPerPixel
	origin.Y = pivotNumber.Y + float64(pivot.Y)*numberPerPixel
	return origin, numberPerPixel
}
