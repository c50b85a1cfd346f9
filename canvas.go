package main

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/joshvictor1024/go-soi/pkg/palette"
	"github.com/joshvictor1024/go-soi/pkg/soi"
	"github.com/joshvictor1024/go-soi/pkg/types"
	"github.com/veandco/go-sdl2/sdl"
)

type canvas struct {
	renderer       *sdl.Renderer
	texture        *sdl.Texture
	chunks         [][]chunk // [y][x], updated to latest
	originNumber   types.Pointf64
	numberPerTexel float64
	generation     uint64
	ctx            context.Context
	cancel         context.CancelFunc
	opts           []soi.Option
	palette        *palette.Palette
	iq             *iterateQueue
	dq             *drawQueue
	ibs            *iterationBufferQueue
	stopCh         chan struct{}
	doneCh         chan struct{}
}

var IT_WORKER = runtime.NumCPU()

func newCanvas(r *sdl.Renderer, minWidth, minHeight int, numberOrigin types.Pointf64, numberPerTexel float64, opts []soi.Option) (*canvas, error) {
	chunkW := (minWidth + CHUNK_LENGTH - 1) / CHUNK_LENGTH
	chunkH := (minHeight + CHUNK_LENGTH - 1) / CHUNK_LENGTH

	t, err := r.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING, // only textures with TEXTUREACCESS_STREAMING can be locked
		int32(chunkW*CHUNK_LENGTH),
		int32(chunkH*CHUNK_LENGTH),
	)
	if err != nil {
		return nil, err
	}

	chunks := make([][]chunk, chunkH)
	for y := range chunks {
		chunks[y] = make([]chunk, chunkW)
	}

	ibs := types.NewControlledQueue[*iterationBuffer]()
	for i := 0; i < 2*IT_WORKER; i += 1 {
		ibs.Send(newIterationBuffer())
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &canvas{
		renderer:       r,
		texture:        t,
		chunks:         chunks,
		originNumber:   numberOrigin,
		numberPerTexel: numberPerTexel,
		ctx:            ctx,
		cancel:         cancel,
		opts:           opts,
		palette:        palette.New(palette.DefaultCycle),
		iq:             newIterateQueue(),
		dq:             types.NewControlledQueue[*drawWork](),
		ibs:            ibs,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}, nil
}

func (c *canvas) close() {
	c.cancel()
	close(c.stopCh)
	c.iq.close()
	c.dq.Close()
	c.ibs.Close()
	<-c.doneCh
	c.texture.Destroy()
}

// blocks until stopCh is closed and every worker returned
// call this in a go routine
func (c *canvas) work() {
	defer close(c.doneCh)
	wg := new(sync.WaitGroup)
	defer wg.Wait()
	wg.Add(IT_WORKER)
	for i := 0; i < IT_WORKER; i += 1 {
		go c.processIterationWork(wg)
	}
	<-c.stopCh
}

func (c *canvas) processIterationWork(wg *sync.WaitGroup) {
	defer wg.Done()
	r := soi.NewRenderer(c.opts...)
	for {
		iw, ok := c.iq.recv()
		if !ok {
			return
		}
		if iw.ctx.Err() != nil {
			continue
		}
		ib, ok := c.ibs.Recv()
		if !ok {
			return
		}
		iw.iterationBuffer = ib

		if !iterateChunk(r, iw) {
			// superseded by a newer view, the partial chunk is never drawn
			if !c.ibs.Send(ib) {
				return
			}
			continue
		}
		iw.drawWork.iterationBuffer = ib
		if !c.dq.Send(iw.drawWork) {
			return
		}
	}
}

// setView moves the canvas to a new view. Renders of the previous view are
// cancelled and every chunk is generated again.
func (c *canvas) setView(originNumber types.Pointf64, numberPerTexel float64) {
	c.stop()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.generation++
	c.originNumber = originNumber
	c.numberPerTexel = numberPerTexel
}

// stop cancels the chunk renders in flight. Chunks not yet drawn stay as
// they are until the view changes.
func (c *canvas) stop() {
	c.cancel()
	if n := c.iq.len(); n > 0 {
		slog.Info("cancelled pending chunks", "pending", n)
	}
}

func (c *canvas) generate() {
	for yi := 0; yi < c.getHeightChunkCount(); yi += 1 {
		for xi := 0; xi < c.getWidthChunkCount(); xi += 1 {
			chunk := &(c.chunks[yi][xi])

			originNumber := types.Pointf64{
				X: c.originNumber.X + float64(xi*CHUNK_LENGTH)*c.numberPerTexel,
				Y: c.originNumber.Y - float64(yi*CHUNK_LENGTH)*c.numberPerTexel,
			}
			if chunk.good(originNumber, c.numberPerTexel) {
				continue
			}
			chunk.originNumber = originNumber
			chunk.numberPerTexel = c.numberPerTexel

			if !c.iq.send(&iterateWork{
				ctx:            c.ctx,
				generation:     c.generation,
				chunk:          chunk,
				originNumber:   originNumber,
				numberPerTexel: c.numberPerTexel,
				drawWork: &drawWork{
					generation:        c.generation,
					textureDataWidth:  c.getWidthTexel(),
					textureDataOrigin: types.Pointi{X: xi * CHUNK_LENGTH, Y: yi * CHUNK_LENGTH},
					chunk:             chunk,
				},
			}) {
				return
			}
		}
	}
}

// draw copies finished chunks into the texture, then shows the part of the
// texture covering numberRect.
func (c *canvas) draw(numberRect types.Rectf64) {
	data, _, err := c.texture.Lock(nil)
	if err != nil {
		slog.Error("lock texture", "err", err)
		return
	}
	for {
		canRecv, dw, ok := c.dq.AttemptRecv(false)
		if !ok || !canRecv {
			break
		}
		if dw.generation == c.generation {
			dw.textureData = data
			drawChunk(dw, c.palette)
		}
		if !c.ibs.Send(dw.iterationBuffer) {
			break
		}
	}
	c.texture.Unlock()

	tr := c.toTextureRecti(numberRect)
	src := tr.Intersect(types.Recti{W: c.getWidthTexel(), H: c.getHeightTexel()})
	if src.Empty() {
		return
	}
	c.renderer.Copy(c.texture,
		&sdl.Rect{X: int32(src.X), Y: int32(src.Y), W: int32(src.W), H: int32(src.H)},
		&sdl.Rect{X: int32(src.X - tr.X), Y: int32(src.Y - tr.Y), W: int32(src.W), H: int32(src.H)},
	)
}

// dump draws the whole texture scaled by ratio at dst, outlining the part
// numberRect covers.
func (c *canvas) dump(numberRect types.Rectf64, dst types.Pointf64, ratio float32) {
	r := sdl.FRect{
		X: float32(dst.X),
		Y: float32(dst.Y),
		W: float32(c.getWidthTexel()) * ratio,
		H: float32(c.getHeightTexel()) * ratio,
	}
	c.renderer.CopyF(c.texture, nil, &r)
	c.renderer.SetDrawColor(255, 255, 255, 255)
	c.renderer.DrawRectF(&r)

	tr := c.toTextureRecti(numberRect)
	c.renderer.DrawRect(&sdl.Rect{
		X: int32(float32(dst.X) + (float32(tr.X) * ratio)),
		Y: int32(float32(dst.Y) + (float32(tr.Y) * ratio)),
		W: int32(float32(tr.W) * ratio),
		H: int32(float32(tr.H) * ratio),
	})
}

func (c *canvas) toTextureRecti(numberRect types.Rectf64) types.Recti {
	return toTexel(c.originNumber, c.numberPerTexel, numberRect)
}

// toTexel maps a rectangle in number space to texels of a texture whose
// upper left texel sits at originNumber.
func toTexel(originNumber types.Pointf64, numberPerTexel float64, numberRect types.Rectf64) types.Recti {
	return types.Recti{
		X: int(math.Round((numberRect.X - originNumber.X) / numberPerTexel)),
		Y: int(math.Round((originNumber.Y - numberRect.Y) / numberPerTexel)),
		W: int(math.Round(numberRect.W / numberPerTexel)),
		H: int(math.Round(numberRect.H / numberPerTexel)),
	}
}

func (c *canvas) getWidthTexel() int {
	return c.getWidthChunkCount() * CHUNK_LENGTH
}

func (c *canvas) getHeightTexel() int {
	return c.getHeightChunkCount() * CHUNK_LENGTH
}

func (c *canvas) getHeightChunkCount() int {
	return len(c.chunks)
}

func (c *canvas) getWidthChunkCount() int {
	return len(c.chunks[0])
}
