package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrNoOutput     = errors.New("AI returned no output")
	ErrInvalidMedia = errors.New("invalid media data")
)

// StatusError is a non-2xx reply from the generation endpoint. Details holds
// the decoded error body, the raw text when it was not JSON, or an empty
// object when the body was empty.
type StatusError struct {
	Code    int
	Details interface{}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Gemini API error: %d", e.Code)
}

// IsTimeout reports whether err came from the call deadline or a network
// timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
