package breeze

import (
	"sync"
	"sync/atomic"
)

// FlipBuffer holds two copies of T: producers write the back copy while the
// frame loop reads the front copy. Flip swaps them once per frame. Each
// copy has its own lock, so a writer never waits on a reader.
type FlipBuffer[T any] struct {
	bufs  [2]T
	mus   [2]sync.Mutex
	front atomic.Uint32
}

// Flip makes the back copy the front and resets the new back copy to reset.
func (b *FlipBuffer[T]) Flip(reset T) {
	back := 1 - b.front.Load()
	nb := 1 - back

	// Both copies stay locked until the new back copy is reset, so no
	// writer can land in it before the reset.
	b.mus[back].Lock()
	b.mus[nb].Lock()
	b.front.Store(back)
	b.bufs[nb] = reset
	b.mus[nb].Unlock()
	b.mus[back].Unlock()
}

// Front returns the copy readers see. Hold LockFront while reading through
// a pointer or reference type.
func (b *FlipBuffer[T]) Front() *T {
	return &b.bufs[b.front.Load()]
}

// Back returns the copy writers fill. Hold LockBack while writing.
func (b *FlipBuffer[T]) Back() *T {
	return &b.bufs[1-b.front.Load()]
}

// LockFront locks the front copy and returns it with its unlock function.
func (b *FlipBuffer[T]) LockFront() (*T, func()) {
	i := b.front.Load()
	b.mus[i].Lock()
	return &b.bufs[i], b.mus[i].Unlock
}

// LockBack locks the back copy and returns it with its unlock function.
// The back copy does not change while it is locked.
func (b *FlipBuffer[T]) LockBack() (*T, func()) {
	for {
		i := 1 - b.front.Load()
		b.mus[i].Lock()
		if 1-b.front.Load() == i {
			return &b.bufs[i], b.mus[i].Unlock
		}
		// Flipped between Load and Lock.
		b.mus[i].Unlock()
	}
}
