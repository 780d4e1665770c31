package strobf

import "fmt"

// RetryError reports that the engine exhausted its retry budget while
// trying to sample a chain that round-trips every code point of the input.
// It wraps the last transform-level error observed.
type RetryError struct {
	Attempts int
	Err      error
}

var _ error = (*RetryError)(nil)

func (e *RetryError) Error() string {
	return fmt.Sprintf("strobf: exhausted retry budget (%d attempts); try a longer bit width or a shorter chain: %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}
