package main

import (
	"context"
	"log/slog"

	"github.com/joshvictor1024/go-soi/pkg/palette"
	"github.com/joshvictor1024/go-soi/pkg/soi"
	"github.com/joshvictor1024/go-soi/pkg/types"
)

const (
	CHUNK_LENGTH int = 128
)

type chunk struct {
	originNumber   types.Pointf64
	numberPerTexel float64
}

func (ch *chunk) good(originNumber types.Pointf64, numberPerTexel float64) bool {
	epsilon := numberPerTexel / 100
	dx := ch.originNumber.X - originNumber.X
	if dx > epsilon || dx+epsilon < 0 {
		return false
	}
	dy := ch.originNumber.Y - originNumber.Y
	if dy > epsilon || dy+epsilon < 0 {
		return false
	}
	dnpt := ch.numberPerTexel - numberPerTexel
	if dnpt > epsilon || dnpt+epsilon < 0 {
		return false
	}
	return true
}

// frame returns the parameter rectangle of a chunk whose upper left texel
// sits at originNumber.
func (ch *chunk) frame(originNumber types.Pointf64, numberPerTexel float64) soi.Frame {
	side := float64(CHUNK_LENGTH) * numberPerTexel
	return soi.Frame{
		Min:    complex(originNumber.X, originNumber.Y-side),
		Max:    complex(originNumber.X+side, originNumber.Y),
		Pixels: types.Recti{W: CHUNK_LENGTH, H: CHUNK_LENGTH},
	}
}

type iterateWork struct {
	ctx            context.Context
	generation     uint64
	originNumber   types.Pointf64
	numberPerTexel float64
	*chunk
	*iterationBuffer
	*drawWork
}

type drawWork struct {
	generation        uint64
	textureData       []byte
	textureDataWidth  int
	textureDataOrigin types.Pointi
	chunk             *chunk
	*iterationBuffer
}

type iterationBuffer struct {
	fb *soi.Framebuffer
}

func newIterationBuffer() *iterationBuffer {
	return &iterationBuffer{fb: soi.NewFramebuffer(CHUNK_LENGTH, CHUNK_LENGTH)}
}

// iterateChunk renders a chunk into its iteration buffer. It reports false
// when the render was cancelled and the buffer holds a partial chunk.
func iterateChunk(r *soi.Renderer, iw *iterateWork) bool {
	f := iw.chunk.frame(iw.originNumber, iw.numberPerTexel)
	status, err := r.Render(iw.ctx, iw.iterationBuffer.fb, f)
	if err != nil {
		slog.Error("chunk render failed", "origin", iw.originNumber, "err", err)
		return false
	}
	if status == soi.Cancelled {
		return false
	}
	slog.Debug("chunk rendered", "origin", iw.originNumber, "stats", r.LastStats())
	return true
}

// drawChunk writes a rendered chunk into RGBA8888 texture data.
func drawChunk(dw *drawWork, pal *palette.Palette) {
	fb := dw.iterationBuffer.fb
	for yi := 0; yi < CHUNK_LENGTH; yi += 1 {
		for xi, c := range fb.Row(yi) {
			pixel := (dw.textureDataOrigin.Y+yi)*dw.textureDataWidth + (dw.textureDataOrigin.X + xi)
			color := pal.RGBA(c)
			dw.textureData[pixel*4+3] = color.R
			dw.textureData[pixel*4+2] = color.G
			dw.textureData[pixel*4+1] = color.B
			dw.textureData[pixel*4+0] = 255
		}
	}
}
