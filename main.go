// Command go-soi is an interactive escape-time fractal viewer. Drag to pan,
// scroll to zoom, space stops the renders in flight, m toggles the texture
// map and esc quits.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joshvictor1024/go-soi/pkg/soi"
	"github.com/joshvictor1024/go-soi/pkg/types"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowWidth  = 800
	windowHeight = 600

	zoomStep = 0.8
)

func sdlInit(windowTitle string) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		windowWidth, windowHeight, sdl.WINDOW_OPENGL,
	)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func main() {
	var (
		maxIter     = flag.Int("maxiter", soi.DefaultMaxIterations, "iteration budget")
		tolerance   = flag.Float64("tol", soi.DefaultTolerance, "interpolation tolerance")
		periodicity = flag.String("periodicity", "auto", "periodicity check: auto, always or never")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	soi.SetLogger(logger)

	mode, err := soi.ParsePeriodicity(*periodicity)
	if err != nil {
		slog.Error("bad flag", "err", err)
		os.Exit(2)
	}
	opts := []soi.Option{
		soi.WithMaxIterations(*maxIter),
		soi.WithTolerance(*tolerance),
		soi.WithPeriodicity(mode),
	}

	// start SDL
	window, renderer, err := sdlInit("SOI")
	if err != nil {
		slog.Error("sdl init", "err", err)
		return
	}
	defer sdlClose(window, renderer)

	s, err := newScene(renderer, int32(windowWidth), int32(windowHeight), opts)
	if err != nil {
		slog.Error("new scene", "err", err)
		return
	}
	defer s.close()

	// start loop
	run := true
	dragging := false
	mouseDownPosition := types.Pointi{}

	for run {
		// WaitEvent must be on the same thread that did INIT_VIDEO
		// the timeout lets finished chunks show up without input
		e := sdl.WaitEventTimeout(30)

		switch t := e.(type) {
		case *sdl.QuitEvent:
			run = false
		case *sdl.MouseButtonEvent:
			if t.Button != sdl.BUTTON_LEFT {
				break
			}
			if t.Type == sdl.MOUSEBUTTONDOWN {
				dragging = true
				mouseDownPosition = types.Pointi{X: int(t.X), Y: int(t.Y)}
			} else if t.Type == sdl.MOUSEBUTTONUP && dragging {
				dragging = false
				s.updateView(types.Pointi{
					X: mouseDownPosition.X - int(t.X),
					Y: mouseDownPosition.Y - int(t.Y),
				}, 1, types.Pointi{})
			}
		case *sdl.MouseMotionEvent:
			if dragging {
				s.dragView(types.Pointi{
					X: mouseDownPosition.X - int(t.X),
					Y: mouseDownPosition.Y - int(t.Y),
				})
			}
		case *sdl.MouseWheelEvent:
			if dragging || t.Y == 0 {
				break
			}
			ratio := zoomStep
			if t.Y < 0 {
				ratio = 1 / zoomStep
			}
			x, y, _ := sdl.GetMouseState()
			s.updateView(types.Pointi{}, ratio, types.Pointi{X: int(x), Y: int(y)})
		case *sdl.KeyboardEvent:
			if t.Type != sdl.KEYDOWN {
				break
			}
			switch t.Keysym.Sym {
			case sdl.K_ESCAPE:
				run = false
			case sdl.K_SPACE:
				s.stop()
			case sdl.K_m:
				s.showMap = !s.showMap
			}
		}

		// draw
		renderer.SetDrawColor(255, 0, 255, 255)
		renderer.Clear()
		s.draw()
		renderer.Present()
	}
}
