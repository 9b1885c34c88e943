package tlex

// Lockable is the capability of an exclusive lock handle. It is
// sync.Locker under another name; every handle in this package satisfies
// it, so callers can be written once against the capability and run
// against any of the mutex kinds.
type Lockable interface {
	Lock()
	Unlock()
}

// SharedLockable is the capability of a reader-writer lock handle.
type SharedLockable interface {
	Lockable
	RLock()
	RUnlock()
}

var (
	_ Lockable = (*NullMutexHandle)(nil)
	_ Lockable = (*MutexHandle)(nil)
	_ Lockable = (*HTMMutexHandle)(nil)

	_ SharedLockable = (*NullSharedMutexHandle)(nil)
	_ SharedLockable = (*SharedMutexHandle)(nil)
	_ SharedLockable = (*HTMSharedMutexHandle)(nil)
)

// With runs f holding l exclusively, releasing on every exit path
// including panics.
func With(l Lockable, f func()) {
	l.Lock()
	defer l.Unlock()
	f()
}

// WithShared runs f holding l shared, releasing on every exit path
// including panics.
func WithShared(l SharedLockable, f func()) {
	l.RLock()
	defer l.RUnlock()
	f()
}

// RLocker returns a Lockable whose Lock and Unlock are l's RLock and
// RUnlock, for APIs that only speak sync.Locker.
func RLocker(l SharedLockable) Lockable {
	return rlocker{l}
}

type rlocker struct{ l SharedLockable }

func (r rlocker) Lock()   { r.l.RLock() }
func (r rlocker) Unlock() { r.l.RUnlock() }
