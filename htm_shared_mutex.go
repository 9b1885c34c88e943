package tlex

import (
	"github.com/llxisdsh/tlex/internal/htm"
	"github.com/llxisdsh/tlex/internal/opt"
)

// HTMSharedMutex is a reader-writer mutex that elides its rw spinlock with
// hardware transactions. The zero value is unlocked, uses
// DefaultRetryLimit for both paths, and is ready to use.
//
// It keeps two lock words on separate cache lines. Writers elide against
// the rw-lock state; readers elide against wflag, a single-bit spinlock
// that only fallback writers ever set. Elided readers therefore subscribe
// to a line that other readers never write. Subscribing to the rw state
// instead would make every fallback reader's count increment abort every
// in-flight elided reader, and reader-side elision would never pay off.
type HTMSharedMutex struct {
	_     noCopy
	state RWSpinLock
	_     [padRWLock]byte
	wflag SpinLock
	_     [padSpinLock]byte

	writeRetry int32
	readRetry  int32
}

// NewHTMSharedMutex returns a mutex configured by opts
// (WithWriteRetryLimit, WithReadRetryLimit).
func NewHTMSharedMutex(opts ...HTMOption) *HTMSharedMutex {
	var c htmConfig
	for _, o := range opts {
		o(&c)
	}
	return &HTMSharedMutex{writeRetry: c.writeRetry, readRetry: c.readRetry}
}

// NewHandle binds a new single-goroutine handle to m. p may be nil.
func (m *HTMSharedMutex) NewHandle(p *HTMProfile) *HTMSharedMutexHandle {
	return &HTMSharedMutexHandle{m: m, p: p}
}

// HTMSharedMutexHandle is the per-goroutine handle of an HTMSharedMutex.
type HTMSharedMutexHandle struct {
	_      noCopy
	m      *HTMSharedMutex
	p      *HTMProfile
	status HandleStatus
}

// Lock acquires the mutex exclusively, transactionally when possible. An
// elided writer subscribes to the whole rw state: any reader or writer
// taking the fallback aborts it.
func (h *HTMSharedMutexHandle) Lock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("Lock", h.status))
	}
	m := h.m
	for attempt, limit := 0, retryLimit(m.writeRetry); attempt < limit; attempt++ {
		m.state.UnlockWait()
		s := htm.Begin()
		if s == htm.Started {
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
	// The rw-lock serializes writers, so nothing can be contending for the
	// writer flag; a plain store suffices.
	m.wflag.LockUncontended()
	h.status = StatusLockedUnique
}

// Unlock releases an exclusive hold, dispatching on how Lock entered.
func (h *HTMSharedMutexHandle) Unlock() {
	switch h.status {
	case StatusElided:
		htm.Commit()
		if h.p != nil && !htm.InTransaction() {
			h.p.noteCommit()
		}
	case StatusLockedUnique:
		// The flag must clear before the rw release: in the reverse order
		// the next writer could win the rw-lock and set the flag in
		// between, and this store would then clear the flag under it,
		// letting elided readers run alongside that writer.
		h.m.wflag.Unlock()
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

// RLock acquires the mutex shared, transactionally when possible. An
// elided reader subscribes only to the writer flag, staying clear of the
// reader-count word that fallback readers mutate.
func (h *HTMSharedMutexHandle) RLock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("RLock", h.status))
	}
	m := h.m
	for attempt, limit := 0, retryLimit(m.readRetry); attempt < limit; attempt++ {
		m.wflag.UnlockWait()
		s := htm.Begin()
		if s == htm.Started {
			if m.wflag.IsLocked() {
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
	// Fallback readers take the rw-lock only; the writer flag belongs to
	// writers.
	m.state.RLock()
	h.status = StatusLockedShared
}

// RUnlock releases a shared hold, dispatching on how RLock entered.
func (h *HTMSharedMutexHandle) RUnlock() {
	switch h.status {
	case StatusElided:
		htm.Commit()
		if h.p != nil && !htm.InTransaction() {
			h.p.noteCommit()
		}
	case StatusLockedShared:
		h.m.state.RUnlock()
		if h.p != nil {
			h.p.noteUnlock()
		}
	default:
		if opt.Debug_ {
			panic(badHandle("RUnlock", h.status))
		}
	}
	h.status = StatusUnlocked
}

// Status returns the handle's current lock-ownership state.
func (h *HTMSharedMutexHandle) Status() HandleStatus {
	return h.status
}
