package htm

import "golang.org/x/sys/cpu"

// RTM aborts for transient reasons (conflicts, explicit aborts from the
// elision protocol) far more often than for structural ones, so all three
// qualify for retry.
const restartMask = Explicit | Retry | Conflict

var rtmEnabled = cpu.X86.HasRTM && !raceEnabled

// Raw RTM status encoding (EAX after an abort).
const (
	rtmStarted  = 0xffffffff
	rtmExplicit = 1 << 0
	rtmRetry    = 1 << 1
	rtmConflict = 1 << 2
	rtmCapacity = 1 << 3
	rtmDebug    = 1 << 4
	rtmNested   = 1 << 5
)

// Supported reports whether transactions can ever start on this machine.
func Supported() bool {
	return rtmEnabled
}

// Begin starts a transaction. It returns Started on success; on abort,
// execution resumes here with the decoded abort status. Without RTM it
// reports a non-restartable Error so callers go straight to their
// fallback.
func Begin() Status {
	if !rtmEnabled {
		return Error
	}
	raw := xbegin()
	if raw == rtmStarted {
		return Started
	}
	return decode(raw)
}

// Commit ends the current transaction, publishing its effects atomically.
// Faults when no transaction is active.
func Commit() {
	xend()
}

// InTransaction reports whether the calling thread is currently executing
// speculatively.
func InTransaction() bool {
	if !rtmEnabled {
		return false
	}
	return xtest()
}

// AbortLockHeld aborts the current transaction with LockHeldCode. No-op
// outside a transaction.
func AbortLockHeld() {
	if !rtmEnabled {
		return
	}
	xabortLockHeld()
}

func decode(raw uint32) Status {
	var s Status
	if raw&rtmExplicit != 0 {
		s |= Explicit | Status(raw>>24)&codeMask
	}
	if raw&rtmRetry != 0 {
		s |= Retry
	}
	if raw&rtmConflict != 0 {
		s |= Conflict
	}
	if raw&rtmCapacity != 0 {
		s |= Capacity
	}
	if raw&rtmDebug != 0 {
		s |= Debug
	}
	if raw&rtmNested != 0 {
		s |= Nested
	}
	if s == 0 {
		// EAX == 0: aborted with no classification (e.g. CPUID, syscall,
		// interrupt inside the transaction).
		s = Unknown
	}
	return s
}

func xbegin() uint32
func xend()
func xtest() bool
func xabortLockHeld()
