package resolver

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse reports that the generation service returned no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// RejectedError is a user-facing rejection: the input was judged not
// color-related, either by the validator or by the generation service
// itself via its in-band error field.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("not a color query: %s", e.Reason)
}
