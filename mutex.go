package tlex

import (
	"unsafe"

	"github.com/llxisdsh/tlex/internal/opt"
)

// Lock words get a cache line to themselves so handles and unrelated
// state never false-share with the hottest word in the system.
const (
	padSpinLock = (opt.CacheLineSize_ - unsafe.Sizeof(SpinLock(0))%opt.CacheLineSize_) % opt.CacheLineSize_
	padRWLock   = (opt.CacheLineSize_ - unsafe.Sizeof(RWSpinLock(0))%opt.CacheLineSize_) % opt.CacheLineSize_
)

func badHandle(op string, s HandleStatus) string {
	return "tlex: " + op + " of a handle in state " + s.String()
}

// NullMutex has the mutex shape and the handle state machine but performs
// no synchronization. It exists so builds can compare a workload against
// no locking at all without changing types.
type NullMutex struct{}

// NewHandle binds a new single-goroutine handle to m. p may be nil.
func (m *NullMutex) NewHandle(p *NullProfile) *NullMutexHandle {
	return &NullMutexHandle{m: m, p: p}
}

// NullMutexHandle is the per-goroutine handle of a NullMutex.
type NullMutexHandle struct {
	_      noCopy
	m      *NullMutex
	p      *NullProfile
	status HandleStatus
}

// Lock records exclusive ownership. It never blocks and excludes nobody.
func (h *NullMutexHandle) Lock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("Lock", h.status))
	}
	h.status = StatusLockedUnique
}

// Unlock clears the recorded ownership.
func (h *NullMutexHandle) Unlock() {
	if opt.Debug_ && h.status != StatusLockedUnique {
		panic(badHandle("Unlock", h.status))
	}
	h.status = StatusUnlocked
	if h.p != nil {
		h.p.noteUnlock()
	}
}

// Status returns the handle's current lock-ownership state.
func (h *NullMutexHandle) Status() HandleStatus {
	return h.status
}

// Mutex is an exclusive mutex over a SpinLock. The zero value is unlocked
// and ready to use.
type Mutex struct {
	_     noCopy
	state SpinLock
	_     [padSpinLock]byte
}

// NewHandle binds a new single-goroutine handle to m. p may be nil.
func (m *Mutex) NewHandle(p *Profile) *MutexHandle {
	return &MutexHandle{m: m, p: p}
}

// MutexHandle is the per-goroutine handle of a Mutex.
type MutexHandle struct {
	_      noCopy
	m      *Mutex
	p      *Profile
	status HandleStatus
}

// Lock acquires the mutex exclusively, spinning until it is free.
func (h *MutexHandle) Lock() {
	if opt.Debug_ && h.status > StatusUnlocked {
		panic(badHandle("Lock", h.status))
	}
	h.m.state.Lock()
	h.status = StatusLockedUnique
}

// Unlock releases the mutex.
func (h *MutexHandle) Unlock() {
	if opt.Debug_ && h.status != StatusLockedUnique {
		panic(badHandle("Unlock", h.status))
	}
	h.m.state.Unlock()
	h.status = StatusUnlocked
	if h.p != nil {
		h.p.noteUnlock()
	}
}

// Status returns the handle's current lock-ownership state.
func (h *MutexHandle) Status() HandleStatus {
	return h.status
}
