//go:build tlex_debug

package opt

// Debug_ enables handle state-machine preconditions.
const Debug_ = true
