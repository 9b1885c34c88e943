// Package tlex provides user-space mutexes whose critical sections are
// elided with hardware transactional memory when the CPU supports it.
//
// Each of the exclusive and reader-writer families comes in three kinds: a
// null mutex (type-compatible, no locking), a plain spin mutex, and an HTM
// mutex that runs critical sections as hardware transactions and falls
// back to the spin mutex after repeated aborts. On machines without an HTM
// facility the HTM kinds transparently behave like their spin fallbacks.
//
// A mutex is shared; each goroutine works through its own handle
// (NewHandle), which tracks which way the lock was entered and optionally
// feeds per-handle profile counters. Handles must not be shared between
// goroutines or copied.
package tlex
