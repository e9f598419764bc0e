package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrGenerationPending  = errors.New("an itinerary is already being generated")
	ErrDatabaseError      = errors.New("database error")
	ErrSessionStoreError  = errors.New("session store error")
	ErrUnsupportedBackend = errors.New("unsupported backend")
)

// DecodeFailedMessage is what users see for any DecodeError; the cause is only logged.
const DecodeFailedMessage = "We couldn't build your itinerary. Please try again."

// GenerationError means the completion service did not give us any text to
// work with. Its message is safe to show to the user as is.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func NewGenerationError(reason string, err error) *GenerationError {
	return &GenerationError{Reason: reason, Err: err}
}

// DecodeError means the model replied, but not with an itinerary we accept.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode itinerary: " + e.Msg
	}
	return fmt.Sprintf("decode itinerary: %s: %v", e.Msg, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage turns a generation failure into the single line shown in the
// error slot. Unknown errors get the generic decode wording too.
func UserMessage(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	return DecodeFailedMessage
}
