package ai

import (
	"errors"
	"fmt"
)

// ErrNoChoicesInResponse is returned when the API response has no choices.
var ErrNoChoicesInResponse = errors.New("no choices in response")

// GenerationError is the adapter's single failure type. Transport errors,
// malformed responses, and missing required fields all surface as a
// GenerationError; the caller shows a message and leaves the draft
// untouched. A suggestion is never partially applied.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("suggestion generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("suggestion generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError reports whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

func generationErr(reason string, err error) error {
	return &GenerationError{Reason: reason, Err: err}
}
