package breeze

import (
	"sync"
	"testing"
)

func TestTaskQueueRunsInOrder(t *testing.T) {
	var q TaskQueue
	var got []int
	for i := 0; i < 3; i++ {
		q.Post(func() { got = append(got, i) })
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	if n := q.Drain(); n != 3 {
		t.Errorf("Drain ran %d, want 3", n)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", got)
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after Drain")
	}
}

func TestTaskQueuePostDuringDrainRunsNextDrain(t *testing.T) {
	var q TaskQueue
	ran := 0
	q.Post(func() {
		q.Post(func() { ran++ })
	})
	q.Drain()
	if ran != 0 {
		t.Fatal("task posted while draining ran in the same drain")
	}
	q.Drain()
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestTaskQueueConcurrentPost(t *testing.T) {
	var q TaskQueue
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Post(func() {})
			}
		}()
	}
	wg.Wait()
	if n := q.Drain(); n != 800 {
		t.Errorf("Drain ran %d, want 800", n)
	}
}

func TestFlipBuffer(t *testing.T) {
	var b FlipBuffer[int]
	back, unlock := b.LockBack()
	*back = 7
	unlock()
	if *b.Front() != 0 {
		t.Fatal("writes must not be visible before Flip")
	}

	b.Flip(0)
	if *b.Front() != 7 {
		t.Errorf("front = %d, want 7 after Flip", *b.Front())
	}
	if *b.Back() != 0 {
		t.Errorf("back = %d, want reset value 0", *b.Back())
	}

	b.Flip(-1)
	if *b.Front() != 0 || *b.Back() != -1 {
		t.Errorf("front/back = %d/%d, want 0/-1", *b.Front(), *b.Back())
	}
}

func TestFlipBufferConcurrentWriters(t *testing.T) {
	var b FlipBuffer[int]
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				back, unlock := b.LockBack()
				*back++
				unlock()
			}
		}()
	}
	total := 0
	for i := 0; i < 50; i++ {
		b.Flip(0)
		front, unlock := b.LockFront()
		total += *front
		unlock()
	}
	wg.Wait()
	b.Flip(0)
	total += *b.Front()
	if total != 1000 {
		t.Errorf("counted %d increments, want 1000", total)
	}
}
