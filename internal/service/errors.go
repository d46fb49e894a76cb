package service

// refreshThrottledError signals that a forced refresh arrived before the
// minimum interval elapsed, for 429 mapping.
type refreshThrottledError struct{}

func (refreshThrottledError) Error() string { return "refresh throttled: minimum interval not elapsed" }

// ErrRefreshThrottled constructs a refreshThrottledError.
func ErrRefreshThrottled() error { return refreshThrottledError{} }

// IsRefreshThrottled reports whether err indicates refresh backpressure.
func IsRefreshThrottled(err error) bool {
	_, ok := err.(refreshThrottledError)
	return ok
}
