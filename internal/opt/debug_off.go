//go:build !tlex_debug

package opt

// Debug_ enables handle state-machine preconditions when built with the
// tlex_debug tag. Off by default: lock misuse is undefined behavior in
// release builds, matching the hot-path cost model.
const Debug_ = false
