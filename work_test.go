package main

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/joshvictor1024/go-soi/pkg/palette"
	"github.com/joshvictor1024/go-soi/pkg/soi"
	"github.com/joshvictor1024/go-soi/pkg/types"
)

func TestChunkGood(t *testing.T) {
	ch := chunk{originNumber: types.Pointf64{X: -1, Y: 1}, numberPerTexel: 0.01}
	if !ch.good(types.Pointf64{X: -1 + 1e-5, Y: 1}, 0.01) {
		t.Error("origin within epsilon reported stale")
	}
	if ch.good(types.Pointf64{X: -0.9, Y: 1}, 0.01) {
		t.Error("moved origin reported good")
	}
	if ch.good(types.Pointf64{X: -1, Y: 1}, 0.02) {
		t.Error("zoomed chunk reported good")
	}
}

func TestChunkFrameAdjacent(t *testing.T) {
	const npt = 0.01
	var ch chunk
	left := ch.frame(types.Pointf64{X: -1, Y: 1}, npt)
	right := ch.frame(types.Pointf64{X: -1 + float64(CHUNK_LENGTH)*npt, Y: 1}, npt)
	if real(left.Max) != real(right.Min) {
		t.Errorf("chunks do not share an edge: %v, %v", left.Max, right.Min)
	}
	if imag(left.Max) != 1 || left.Pixels.W != CHUNK_LENGTH || left.Pixels.H != CHUNK_LENGTH {
		t.Errorf("frame = %+v", left)
	}
}

func TestIterateChunk(t *testing.T) {
	r := soi.NewRenderer(soi.WithMaxIterations(64))
	iw := &iterateWork{
		ctx:             context.Background(),
		originNumber:    types.Pointf64{X: -2, Y: 1.28},
		numberPerTexel:  0.02,
		chunk:           &chunk{},
		iterationBuffer: newIterationBuffer(),
	}
	if !iterateChunk(r, iw) {
		t.Fatal("iterateChunk reported cancelled")
	}
	// texel (0,0) is -2+1.28i, far outside the set
	if c := iw.iterationBuffer.fb.At(0, 0); c == soi.BasinColor {
		t.Errorf("corner color = %d, want escaped", c)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	iw.ctx = ctx
	if iterateChunk(r, iw) {
		t.Error("cancelled render reported done")
	}
}

func TestDrawChunkByteOrder(t *testing.T) {
	ib := newIterationBuffer()
	ib.fb.Fill(3)
	pal := palette.New(16)
	width := 2 * CHUNK_LENGTH
	dw := &drawWork{
		textureData:       make([]byte, width*CHUNK_LENGTH*4),
		textureDataWidth:  width,
		textureDataOrigin: types.Pointi{X: CHUNK_LENGTH},
		iterationBuffer:   ib,
	}
	drawChunk(dw, pal)

	want := pal.RGBA(3)
	p := (5*width + CHUNK_LENGTH + 7) * 4
	if got := dw.textureData[p : p+4]; got[0] != 255 || got[1] != want.B || got[2] != want.G || got[3] != want.R {
		t.Errorf("texel bytes = %v, want A,B,G,R of %+v", got, want)
	}
	if dw.textureData[(5*width+7)*4] != 0 {
		t.Error("drawChunk wrote outside its chunk")
	}
}

func TestIterateQueueReplacesDirty(t *testing.T) {
	iq := newIterateQueue()
	a, b := &chunk{}, &chunk{}
	iq.send(&iterateWork{chunk: a, generation: 1})
	iq.send(&iterateWork{chunk: b, generation: 1})
	iq.send(&iterateWork{chunk: a, generation: 2})
	if n := iq.len(); n != 2 {
		t.Fatalf("len = %d, want 2", n)
	}
	iw, _ := iq.recv()
	if iw.chunk != a || iw.generation != 2 {
		t.Errorf("first work = %p gen %d, want chunk a gen 2", iw.chunk, iw.generation)
	}

	// a was taken, so new work for it queues again
	iq.send(&iterateWork{chunk: a, generation: 3})
	if n := iq.len(); n != 2 {
		t.Errorf("len = %d, want 2", n)
	}
	iq.close()
	if _, ok := iq.recv(); ok {
		t.Error("recv succeeded on closed queue")
	}
}

// Receivers popping work while the control goroutine keeps re-sending the
// same chunks must never leave a chunk queued twice or a queued chunk
// unmarked.
func TestIterateQueueDirtyMatchesQueue(t *testing.T) {
	iq := newIterateQueue()
	chunks := make([]chunk, 4)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := iq.recv(); !ok {
					return
				}
			}
		}()
	}
	for i := range 5000 {
		iq.send(&iterateWork{chunk: &chunks[i%len(chunks)], generation: uint64(i)})
	}

	data := iq.cq.Lock()
	queued := map[*chunk]int{}
	for _, iw := range data {
		queued[iw.chunk]++
	}
	dirty := len(iq.dirty)
	for ch := range iq.dirty {
		if queued[ch] != 1 {
			t.Errorf("dirty chunk %p queued %d times", ch, queued[ch])
		}
	}
	iq.cq.Unlock()
	if dirty != len(queued) {
		t.Errorf("%d dirty chunks, %d queued", dirty, len(queued))
	}

	iq.close()
	wg.Wait()
}

func TestMoveView(t *testing.T) {
	origin := types.Pointf64{X: -2, Y: 1}

	got, npp := moveView(origin, 0.01, types.Pointi{X: 10, Y: 20}, 1, types.Pointi{})
	if npp != 0.01 || !near(got.X, -1.9) || !near(got.Y, 0.8) {
		t.Errorf("pan: %+v %v", got, npp)
	}

	pivot := types.Pointi{X: 100, Y: 50}
	got, npp = moveView(origin, 0.01, types.Pointi{}, 0.5, pivot)
	if npp != 0.005 {
		t.Errorf("zoom npp = %v", npp)
	}
	before := types.Pointf64{X: origin.X + 100*0.01, Y: origin.Y - 50*0.01}
	after := types.Pointf64{X: got.X + 100*npp, Y: got.Y - 50*npp}
	if !near(before.X, after.X) || !near(before.Y, after.Y) {
		t.Errorf("pivot moved: %v -> %v", before, after)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestToTexel(t *testing.T) {
	origin := types.Pointf64{X: -2, Y: 1}
	got := toTexel(origin, 0.01, types.Rectf64{X: -1.9, Y: 1.05, W: 2, H: 1.5})
	if got != (types.Recti{X: 10, Y: -5, W: 200, H: 150}) {
		t.Errorf("toTexel = %+v", got)
	}
}
