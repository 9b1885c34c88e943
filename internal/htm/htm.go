// Package htm exposes the hardware transactional memory facility used for
// lock elision: begin/commit/test/abort plus a platform-neutral abort-status
// taxonomy.
//
// The contract any backing implementation must satisfy:
//
//   - Begin returns Started when a transaction is now executing on the
//     calling goroutine's thread, otherwise the status of the most recent
//     aborted attempt. No abort path produces Started.
//   - Commit atomically publishes all speculative effects; it must only be
//     called inside a live transaction.
//   - InTransaction reports whether the caller is currently speculative.
//   - AbortLockHeld aborts the current transaction with the lock-is-held
//     code embedded in the status the matching Begin returns.
//
// On amd64 this is Intel RTM, gated at runtime on CPUID.RTM. Arm TME
// satisfies the same contract but is not wired up. Everywhere else Begin
// reports a non-restartable Error status, so the eliding mutexes degrade to
// their fallback locks.
package htm

// LockHeldCode is the explicit-abort code used when a transaction observes
// the fallback lock held after it started. The matching Begin returns a
// status with the Explicit bit set and Code() == LockHeldCode.
const LockHeldCode = 255
