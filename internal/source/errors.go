package source

import (
	"errors"
	"fmt"
)

// FetchError means the pricing source was unreachable, answered with a
// non-success status, or returned a body that is not the expected JSON
// object. It is never retried here; retries are the caller's business.
type FetchError struct {
	URL    string
	Status int // 0 for transport-level failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is (or wraps) a FetchError, so callers
// can distinguish "source unreachable" from "zero valid models".
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
