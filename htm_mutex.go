package tlex

import (
	"github.com/llxisdsh/tlex/internal/htm"
	"github.com/llxisdsh/tlex/internal/opt"
)

// HTMMutex is an exclusive mutex that elides its spinlock with hardware
// transactions. Lock first tries to run the critical section speculatively;
// the spinlock is only acquired after the transaction aborted too many
// times (or could never start). The zero value is unlocked, uses
// DefaultRetryLimit, and is ready to use.
//
// An elided critical section holds no lock: mutual exclusion comes from the
// transaction reading the spinlock word, so that any fallback acquirer
// conflicts with, and aborts, every in-flight transaction on the mutex.
type HTMMutex struct {
	_     noCopy
	state SpinLock
	_     [padSpinLock]byte
	retry int32
}

// NewHTMMutex returns a mutex configured by opts (WithRetryLimit).
func NewHTMMutex(opts ...HTMOption) *HTMMutex {
	var c htmConfig
	for _, o := range opts {
		o(&c)
	}
	return &HTMMutex{retry: c.retry}
}

// NewHandle binds a new single-goroutine handle to m. p may be nil.
func (m *HTMMutex) NewHandle(p *HTMProfile) *HTMMutexHandle {
	return &HTMMutexHandle{m: m, p: p}
}

// HTMMutexHandle is the per-goroutine handle of an HTMMutex. The handle
// remembers which way Lock went so Unlock can commit the transaction or
// release the spinlock accordingly.
type HTMMutexHandle struct {
	_      noCopy
	m      *HTMMutex
	p      *HTMProfile
	status HandleStatus
}

// Lock enters the critical section, transactionally when possible.
func (h *HTMMutexHandle) Lock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("Lock", h.status))
	}
	m := h.m
	for attempt, limit := 0, retryLimit(m.retry); attempt < limit; attempt++ {
		// Never begin while the fallback is held; the attempt would be
		// doomed and burn retry budget.
		m.state.UnlockWait()
		s := htm.Begin()
		if s == htm.Started {
			// Reading the lock word subscribes it to the read-set: any
			// fallback acquirer now conflicts with this transaction. It
			// also catches an acquire that slipped in between UnlockWait
			// and Begin, which must abort explicitly; plainly returning
			// would run the critical section alongside the lock holder.
			if m.state.IsLocked() {
				htm.AbortLockHeld()
			}
			h.status = StatusElided
			return
		}
		if h.p != nil {
			h.p.noteAbort(s)
		}
		if !htm.Restartable(s) {
			break
		}
	}
	m.state.Lock()
	h.status = StatusLockedUnique
}

// Unlock leaves the critical section, dispatching on how Lock entered it.
func (h *HTMMutexHandle) Unlock() {
	switch h.status {
	case StatusElided:
		htm.Commit()
		// Count only the outermost commit; a nested section's effects are
		// not published yet.
		if h.p != nil && !htm.InTransaction() {
			h.p.noteCommit()
		}
	case StatusLockedUnique:
		h.m.state.Unlock()
		if h.p != nil {
			h.p.noteUnlock()
		}
	default:
		if opt.Debug_ {
			panic(badHandle("Unlock", h.status))
		}
	}
	h.status = StatusUnlocked
}

// Status returns the handle's current lock-ownership state.
func (h *HTMMutexHandle) Status() HandleStatus {
	return h.status
}
