package tlex

import (
	"github.com/llxisdsh/tlex/internal/opt"
)

// NullSharedMutex has the shared-mutex shape and state machine but
// performs no synchronization.
type NullSharedMutex struct{}

// NewHandle binds a new single-goroutine handle to m. p may be nil.
func (m *NullSharedMutex) NewHandle(p *NullProfile) *NullSharedMutexHandle {
	return &NullSharedMutexHandle{m: m, p: p}
}

// NullSharedMutexHandle is the per-goroutine handle of a NullSharedMutex.
type NullSharedMutexHandle struct {
	_      noCopy
	m      *NullSharedMutex
	p      *NullProfile
	status HandleStatus
}

// Lock records exclusive ownership. It never blocks and excludes nobody.
func (h *NullSharedMutexHandle) Lock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("Lock", h.status))
	}
	h.status = StatusLockedUnique
}

// Unlock clears recorded exclusive ownership.
func (h *NullSharedMutexHandle) Unlock() {
	if opt.Debug_ && h.status != StatusLockedUnique {
		panic(badHandle("Unlock", h.status))
	}
	h.status = StatusUnlocked
	if h.p != nil {
		h.p.noteUnlock()
	}
}

// RLock records shared ownership.
func (h *NullSharedMutexHandle) RLock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("RLock", h.status))
	}
	h.status = StatusLockedShared
}

// RUnlock clears recorded shared ownership.
func (h *NullSharedMutexHandle) RUnlock() {
	if opt.Debug_ && h.status != StatusLockedShared {
		panic(badHandle("RUnlock", h.status))
	}
	h.status = StatusUnlocked
	if h.p != nil {
		h.p.noteUnlock()
	}
}

// Status returns the handle's current lock-ownership state.
func (h *NullSharedMutexHandle) Status() HandleStatus {
	return h.status
}

// SharedMutex is a reader-writer mutex over an RWSpinLock. The zero value
// is unlocked and ready to use.
type SharedMutex struct {
	_     noCopy
	state RWSpinLock
	_     [padRWLock]byte
}

// NewHandle binds a new single-goroutine handle to m. p may be nil.
func (m *SharedMutex) NewHandle(p *Profile) *SharedMutexHandle {
	return &SharedMutexHandle{m: m, p: p}
}

// SharedMutexHandle is the per-goroutine handle of a SharedMutex.
type SharedMutexHandle struct {
	_      noCopy
	m      *SharedMutex
	p      *Profile
	status HandleStatus
}

// Lock acquires the mutex exclusively.
func (h *SharedMutexHandle) Lock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("Lock", h.status))
	}
	h.m.state.Lock()
	h.status = StatusLockedUnique
}

// Unlock releases an exclusive hold.
func (h *SharedMutexHandle) Unlock() {
	if opt.Debug_ && h.status != StatusLockedUnique {
		panic(badHandle("Unlock", h.status))
	}
	h.m.state.Unlock()
	h.status = StatusUnlocked
	if h.p != nil {
		h.p.noteUnlock()
	}
}

// RLock acquires the mutex shared.
func (h *SharedMutexHandle) RLock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("RLock", h.status))
	}
	h.m.state.RLock()
	h.status = StatusLockedShared
}

// RUnlock releases a shared hold.
func (h *SharedMutexHandle) RUnlock() {
	if opt.Debug_ && h.status != StatusLockedShared {
		panic(badHandle("RUnlock", h.status))
	}
	h.m.state.RUnlock()
	h.status = StatusUnlocked
	if h.p != nil {
		h.p.noteUnlock()
	}
}

// Status returns the handle's current lock-ownership state.
func (h *SharedMutexHandle) Status() HandleStatus {
	return h.status
}
