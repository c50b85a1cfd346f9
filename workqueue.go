package main

import (
	"github.com/joshvictor1024/go-soi/pkg/types"
)

// push chunk to dirty if not in dirty
// a chunk is dirty exactly while its work waits in the queue; dirty is
// guarded by the queue's lock
type iterateQueue struct {
	cq    *types.ControlledQueue[*iterateWork]
	dirty map[*chunk]struct{}
}

func newIterateQueue() *iterateQueue {
	return &iterateQueue{
		cq:    types.NewControlledQueue[*iterateWork](),
		dirty: map[*chunk]struct{}{},
	}
}

func (iq *iterateQueue) close() {
	iq.cq.Close()
}

// if chunk exist in data (dirty)
// replace old iw with new
// return false to signal close (like with channels)
// only call from ctrl
func (iq *iterateQueue) send(iw *iterateWork) bool {
	data := iq.cq.Lock()
	if _, ok := iq.dirty[iw.chunk]; ok {
		for i, old := range data {
			if old.chunk == iw.chunk {
				data[i] = iw
				break
			}
		}
		iq.cq.Unlock()
		return true
	}
	iq.dirty[iw.chunk] = struct{}{}
	iq.cq.Unlock()
	return iq.cq.Send(iw)
}

func (iq *iterateQueue) recv() (*iterateWork, bool) {
	return iq.cq.RecvFunc(func(iw *iterateWork) {
		delete(iq.dirty, iw.chunk)
	})
}

func (iq *iterateQueue) len() int {
	return iq.cq.Len()
}

// 1 ctrl M send 1 recv
type drawQueue = types.ControlledQueue[*drawWork]

// pool of iteration buffers, M send M recv
type iterationBufferQueue = types.ControlledQueue[*iterationBuffer]
