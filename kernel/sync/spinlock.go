// Package sync provides a spinlock for code that runs with no scheduler to
// park on.
package sync

import "sync/atomic"

// spinAttemptsBeforeYielding is the number of failed acquire attempts after
// which Acquire calls yieldFn.
const spinAttemptsBeforeYielding = 64

var (
	// yieldFn is invoked while spinning. It is nil on bare metal, where the
	// lock holder can only be an interrupted context or another core.
	yieldFn func()
)

// Spinlock implements a lock where each task trying to acquire it busy-waits
// till the lock becomes available. The zero value is an unlocked lock.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired by the currently active task.
// Any attempt to re-acquire a lock already held by the current task (for
// example from an interrupt handler that preempted the holder) will cause a
// deadlock.
func (l *Spinlock) Acquire() {
	acquireSpinlock(&l.state, spinAttemptsBeforeYielding)
}

// TryToAcquire attempts to acquire the lock and returns true if the lock could
// be acquired or false otherwise.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.CompareAndSwapUint32(&l.state, 0, 1)
}

// Release relinquishes a held lock allowing other tasks to acquire it. Calling
// Release while the lock is free has no effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}

func acquireSpinlock(state *uint32, attemptsBeforeYielding uint32) {
	var attempts uint32
	for !atomic.CompareAndSwapUint32(state, 0, 1) {
		if attempts++; attempts < attemptsBeforeYielding {
			continue
		}

		attempts = 0
		if yieldFn != nil {
			yieldFn()
		}
	}
}
