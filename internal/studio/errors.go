package studio

import (
	"errors"

	"asset-studio/internal/backend"
)

const (
	EmptyPromptMessage = "Please enter a prompt."
	TransportPrefix    = "An error occurred: "
)

var ErrSubmissionInFlight = errors.New("a submission is already in flight")

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// userMessage is the text shown in the error region. Validation and server
// messages are shown verbatim; anything else gets the transport prefix.
func userMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *backend.ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return TransportPrefix + err.Error()
}
