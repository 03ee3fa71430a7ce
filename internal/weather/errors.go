package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedUpstream is returned when the provider responds with
	// success but the payload is missing the expected location or
	// measurement fields.
	ErrMalformedUpstream = errors.New("invalid response from weather API")
)

// InputError marks a request that failed validation before any upstream
// call was made. It maps to a 400 at the API boundary.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewInputError builds an InputError with a formatted message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError carries the provider's HTTP status plus the message and
// error code from its error body, so the API layer can mirror them.
type UpstreamError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather API error (status %d, code %s): %s: %v", e.Status, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("weather API error (status %d, code %s): %s", e.Status, e.Code, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
