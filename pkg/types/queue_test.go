package types

import (
	"sync"
	"testing"
)

func TestControlledQueueFIFO(t *testing.T) {
	cq := NewControlledQueue[int]()
	for i := range 5 {
		if !cq.Send(i) {
			t.Fatalf("Send(%d) failed on open queue", i)
		}
	}
	if n := cq.Len(); n != 5 {
		t.Fatalf("Len = %d, want 5", n)
	}
	for i := range 5 {
		v, ok := cq.Recv()
		if !ok || v != i {
			t.Fatalf("Recv = %d, %v, want %d, true", v, ok, i)
		}
	}
}

func TestControlledQueueAttemptRecvEmpty(t *testing.T) {
	cq := NewControlledQueue[string]()
	canRecv, v, ok := cq.AttemptRecv(false)
	if canRecv || v != "" || !ok {
		t.Errorf("AttemptRecv on empty = %v, %q, %v, want false, \"\", true", canRecv, v, ok)
	}
}

func TestControlledQueueClose(t *testing.T) {
	cq := NewControlledQueue[int]()
	cq.Send(1)
	cq.Close()
	if cq.Send(2) {
		t.Error("Send succeeded on closed queue")
	}
	if _, ok := cq.Recv(); ok {
		t.Error("Recv succeeded on closed queue")
	}
}

func TestControlledQueueBlockingRecv(t *testing.T) {
	cq := NewControlledQueue[int]()
	const n = 100
	var wg sync.WaitGroup
	got := make(chan int, n)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := cq.Recv()
				if !ok {
					return
				}
				got <- v
			}
		}()
	}
	for i := range n {
		cq.Send(i)
	}
	sum := 0
	for range n {
		sum += <-got
	}
	cq.Close()
	wg.Wait()
	if want := n * (n - 1) / 2; sum != want {
		t.Errorf("sum of received = %d, want %d", sum, want)
	}
}

func TestControlledQueueLockReplace(t *testing.T) {
	cq := NewControlledQueue[int]()
	cq.Send(1)
	cq.Send(2)
	data := cq.Lock()
	data[1] = 20
	cq.Unlock()
	cq.Recv()
	if v, _ := cq.Recv(); v != 20 {
		t.Errorf("Recv after replace = %d, want 20", v)
	}
}

func TestControlledQueueRecvFuncUnderLock(t *testing.T) {
	cq := NewControlledQueue[int]()
	cq.Send(4)
	cq.Send(5)
	var seen []int
	v, ok := cq.RecvFunc(func(v int) {
		// the queue is still locked, so the item is already gone from it
		seen = append(seen, v, len(cq.data.data))
	})
	if !ok || v != 4 {
		t.Fatalf("RecvFunc = %d, %v, want 4, true", v, ok)
	}
	if len(seen) != 2 || seen[0] != 4 || seen[1] != 1 {
		t.Errorf("onRecv saw %v, want [4 1]", seen)
	}
}
