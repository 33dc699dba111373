package services

import "fmt"

// ErrorKind classifies a failure for the client. NOT_FOUND deliberately
// covers "exists but belongs to someone else": ownership mismatches must not
// disclose that the id exists.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindInvalidEncoding   ErrorKind = "INVALID_ENCODING"
	KindInternal          ErrorKind = "INTERNAL_ERROR"
)

type AppError struct {
	HTTPCode int
	Kind     ErrorKind
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAppError(httpCode int, kind ErrorKind, message string, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Kind: kind, Message: message, Err: err}
}

func newAppErrorWithData(httpCode int, kind ErrorKind, message string, data interface{}, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Kind: kind, Message: message, Data: data, Err: err}
}
