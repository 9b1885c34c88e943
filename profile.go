package tlex

import (
	"unsafe"

	"github.com/llxisdsh/tlex/internal/htm"
	"github.com/llxisdsh/tlex/internal/opt"
)

// Profile blocks count what a handle did with its mutex. A block belongs to
// exactly one handle during the hot path, so counters are plain (unordered)
// increments; aggregation across handles happens after the workers join,
// via Add. Each block is padded to a cache line so neighbouring handles'
// counters do not false-share.

// NullProfile is the profile shape for the null mutexes. It counts
// nothing.
type NullProfile struct{}

func (p *NullProfile) noteUnlock() {}

// Add accumulates q into p.
func (p *NullProfile) Add(q *NullProfile) {}

// Consistent reports whether the counters agree with sum observed lock
// operations. Trivially true: nothing is counted.
func (p *NullProfile) Consistent(sum uint64) bool {
	return true
}

// Profile counts fallback acquisitions of a non-eliding mutex.
type Profile struct {
	// LocksAcquired counts completed lock/unlock pairs.
	LocksAcquired uint64

	_ [(opt.CacheLineSize_ - unsafe.Sizeof(struct {
		a uint64
	}{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte
}

//go:nosplit
func (p *Profile) noteUnlock() {
	p.LocksAcquired++
}

// Add accumulates q into p.
func (p *Profile) Add(q *Profile) {
	p.LocksAcquired += q.LocksAcquired
}

// Consistent reports whether the counters agree with sum observed lock
// operations: every operation must have taken the lock.
func (p *Profile) Consistent(sum uint64) bool {
	return p.LocksAcquired == sum
}

// HTMProfile counts the exit paths and abort causes of an eliding mutex.
type HTMProfile struct {
	// LocksAcquired counts operations that ended in a fallback unlock.
	LocksAcquired uint64
	// LocksElided counts operations that ended in an outermost commit.
	LocksElided uint64
	// Abort causes, classified once per failed Begin.
	ExplicitAborts uint64
	ConflictAborts uint64
	CapacityAborts uint64
	NestedAborts   uint64
	OtherAborts    uint64

	_ [(opt.CacheLineSize_ - unsafe.Sizeof(struct {
		a [7]uint64
	}{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte
}

//go:nosplit
func (p *HTMProfile) noteUnlock() {
	p.LocksAcquired++
}

//go:nosplit
func (p *HTMProfile) noteCommit() {
	p.LocksElided++
}

//go:nosplit
func (p *HTMProfile) noteAbort(s htm.Status) {
	switch {
	case s&htm.Conflict != 0:
		p.ConflictAborts++
	case s&htm.Explicit != 0:
		p.ExplicitAborts++
	case s&htm.Capacity != 0:
		p.CapacityAborts++
	case s&htm.Nested != 0:
		p.NestedAborts++
	default:
		p.OtherAborts++
	}
}

// Aborts returns the total number of recorded aborts.
func (p *HTMProfile) Aborts() uint64 {
	return p.ExplicitAborts + p.ConflictAborts + p.CapacityAborts +
		p.NestedAborts + p.OtherAborts
}

// Add accumulates q into p.
func (p *HTMProfile) Add(q *HTMProfile) {
	p.LocksAcquired += q.LocksAcquired
	p.LocksElided += q.LocksElided
	p.ExplicitAborts += q.ExplicitAborts
	p.ConflictAborts += q.ConflictAborts
	p.CapacityAborts += q.CapacityAborts
	p.NestedAborts += q.NestedAborts
	p.OtherAborts += q.OtherAborts
}

// Consistent reports whether the counters agree with sum observed lock
// operations. Every operation either committed or took the fallback, and a
// transactional attempt aborts at least once before the fallback is taken.
// A profile with neither aborts nor elisions is accepted as well: that is
// what a handle leaves that never attempts a transaction (retry limit zero).
func (p *HTMProfile) Consistent(sum uint64) bool {
	if p.LocksAcquired+p.LocksElided != sum {
		return false
	}
	aborts := p.Aborts()
	return p.LocksAcquired <= aborts || (aborts == 0 && p.LocksElided == 0)
}
