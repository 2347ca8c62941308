package model

import "errors"

// ErrorKind classifies a failure so orchestrators can pick the right
// recovery: validation errors never reach the AI service, service errors
// roll the state machine back to the last known-good phase, and bad-data
// errors leave the current data untouched.
type ErrorKind int8

const (
	KindUnknown = ErrorKind(iota)
	KindValidation
	KindService
	KindBadData
)

type AppError struct {
	Kind ErrorKind
	Err  error
}

func (e *AppError) Error() string {
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationErr(err error) error {
	return &AppError{Kind: KindValidation, Err: err}
}

func ServiceErr(err error) error {
	return &AppError{Kind: KindService, Err: err}
}

func BadDataErr(err error) error {
	return &AppError{Kind: KindBadData, Err: err}
}

// KindOf reports the classification of err, unwrapping as needed.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
