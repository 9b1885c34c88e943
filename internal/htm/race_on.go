//go:build race

package htm

// The race detector cannot observe the synchronization a committed
// transaction provides, and its shadow-memory writes inside a transaction
// conflict across threads anyway. Elision is disabled under -race; the
// mutexes degrade to their fallback locks, which the detector understands.
const raceEnabled = true
