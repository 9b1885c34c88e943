package tlex

// DefaultRetryLimit is how many transactional attempts an eliding mutex
// makes before taking its fallback lock.
const DefaultRetryLimit = 10

const noRetries = -1

type htmConfig struct {
	retry      int32
	writeRetry int32
	readRetry  int32
}

// HTMOption configures an eliding mutex at construction time.
type HTMOption func(*htmConfig)

// WithRetryLimit bounds the transactional attempts of an HTMMutex. A limit
// of zero or less disables elision entirely: every Lock goes straight to
// the fallback.
func WithRetryLimit(n int) HTMOption {
	return func(c *htmConfig) { c.retry = normalizeRetry(n) }
}

// WithWriteRetryLimit bounds the transactional attempts of the exclusive
// path of an HTMSharedMutex. Zero or less disables write-side elision.
func WithWriteRetryLimit(n int) HTMOption {
	return func(c *htmConfig) { c.writeRetry = normalizeRetry(n) }
}

// WithReadRetryLimit bounds the transactional attempts of the shared path
// of an HTMSharedMutex. Zero or less disables read-side elision.
func WithReadRetryLimit(n int) HTMOption {
	return func(c *htmConfig) { c.readRetry = normalizeRetry(n) }
}

func normalizeRetry(n int) int32 {
	if n < 1 {
		return noRetries
	}
	return int32(n)
}

// retryLimit decodes a stored limit: zero means unset (use the default),
// negative means elision is off.
func retryLimit(stored int32) int {
	switch {
	case stored == 0:
		return DefaultRetryLimit
	case stored < 0:
		return 0
	default:
		return int(stored)
	}
}
