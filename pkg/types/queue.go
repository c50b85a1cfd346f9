package types

import (
	"sync"
)

// FIFO with unlimited capacity and internal buffer access
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// 1 ctrl M send N recv
type ControlledQueue[T any] struct {
	data          queue[T]
	mu            sync.Mutex
	requestRecvCh chan struct{}
	stopCh        chan struct{}
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		stopCh:        make(chan struct{}),
		requestRecvCh: make(chan struct{}, 1),
	}
}

// closes underlying channel
// only call once from ctrl
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	close(cq.stopCh)
	cq.mu.Unlock()
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	select {
	case <-cq.stopCh:
		return false
	default:
	}
	cq.mu.Lock()
	cq.data.push(v)
	cq.mu.Unlock()
	cq.wake()
	return true
}

func (cq *ControlledQueue[T]) wake() {
	select {
	case cq.requestRecvCh <- struct{}{}:
	default:
	}
}

// blocks on empty to wait to receive
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.attemptRecv(true, nil)
	return v, ok
}

// RecvFunc is Recv, calling onRecv with the received item before the queue
// is unlocked.
func (cq *ControlledQueue[T]) RecvFunc(onRecv func(T)) (T, bool) {
	_, v, ok := cq.attemptRecv(true, onRecv)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	return cq.attemptRecv(blockOnEmpty, nil)
}

func (cq *ControlledQueue[T]) attemptRecv(blockOnEmpty bool, onRecv func(T)) (canRecv bool, v T, ok bool) {
	for {
		select {
		case <-cq.stopCh:
			return true, v, false
		default:
		}

		cq.mu.Lock()
		if cq.data.len() > 0 {
			break
		}
		cq.mu.Unlock()
		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.requestRecvCh:
		case <-cq.stopCh:
		}
	}

	v = cq.data.pop()
	if onRecv != nil {
		onRecv(v)
	}
	more := cq.data.len() > 0
	cq.mu.Unlock()
	if more {
		// let the next receiver in
		cq.wake()
	}
	return true, v, true
}

// Len reports the number of queued items.
func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}

// Lock gives direct access to the queued items until Unlock is called.
// Items may be replaced in place but the slice must not be resized.
func (cq *ControlledQueue[T]) Lock() []T {
	cq.mu.Lock()
	return cq.data.data
}

func (cq *ControlledQueue[T]) Unlock() {
	cq.mu.Unlock()
}
