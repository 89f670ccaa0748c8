package backend

import "fmt"

const (
	NoImageMessage      = "API response was successful but no image data was found."
	UnknownErrorMessage = "An unknown error occurred."
)

// ServerError is a response the backend produced on purpose: a non-2xx status,
// or a 2xx body without an image. Message is shown to the user as-is.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError covers everything that kept us from reading a JSON body:
// connection failures, body read failures and malformed JSON.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func transportErrorf(format string, args ...interface{}) *TransportError {
	return &TransportError{Err: fmt.Errorf(format, args...)}
}
