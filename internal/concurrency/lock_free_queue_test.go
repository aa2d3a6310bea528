package concurrency

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestLockFreeQueue_MPMC exercises the queue the way the slab pool does:
// many goroutines handing slab pointers back and forth concurrently.
func TestLockFreeQueue_MPMC(t *testing.T) {
	q := NewLockFreeQueue[int](1024)
	producers := 10
	consumers := 10
	itemsPerProducer := 10000

	var wg sync.WaitGroup
	var sentSum int64
	var receivedSum int64

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				for !q.Enqueue(val) {
					runtime.Gosched()
				}
				atomic.AddInt64(&sentSum, int64(val))
			}
		}(p)
	}

	var receivedCount int64
	totalItems := int64(producers * itemsPerProducer)

	consumerWg := sync.WaitGroup{}
	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				if val, ok := q.Dequeue(); ok {
					atomic.AddInt64(&receivedSum, int64(val))
					if atomic.AddInt64(&receivedCount, 1) == totalItems {
						return
					}
				} else {
					if atomic.LoadInt64(&receivedCount) >= totalItems {
						return
					}
					runtime.Gosched()
				}
			}
		}()
	}

	wg.Wait()

	done := make(chan struct{})
	go func() {
		consumerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if sentSum != receivedSum {
			t.Errorf("checksum mismatch: sent %d, received %d", sentSum, receivedSum)
		}
	case <-time.After(5 * time.Second):
		t.Errorf("timeout waiting for consumers: received %d/%d", atomic.LoadInt64(&receivedCount), totalItems)
	}
}

func TestLockFreeQueue_EnqueueDequeueOrder(t *testing.T) {
	q := NewLockFreeQueue[*int](4)
	a, b, c := 1, 2, 3

	if !q.Enqueue(&a) || !q.Enqueue(&b) || !q.Enqueue(&c) {
		t.Fatal("expected capacity for 3 items in a queue rounded up to 4")
	}

	got, ok := q.Dequeue()
	if !ok || *got != 1 {
		t.Fatalf("expected FIFO order, got %v ok=%v", got, ok)
	}
}

func TestLockFreeQueue_FullReturnsFalse(t *testing.T) {
	q := NewLockFreeQueue[int](2)
	if !q.Enqueue(1) || !q.Enqueue(2) {
		t.Fatal("expected room for 2 items")
	}
	if q.Enqueue(3) {
		t.Fatal("expected Enqueue to fail once the queue is full")
	}
}

func TestLockFreeQueue_Drain(t *testing.T) {
	q := NewLockFreeQueue[int](8)
	for i := 1; i <= 5; i++ {
		if !q.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}

	drained := q.Drain()
	if len(drained) != 5 {
		t.Fatalf("expected 5 drained items, got %d", len(drained))
	}

	if _, ok := q.Dequeue(); ok {
		t.Fatal("expected queue to be empty after Drain")
	}
}
