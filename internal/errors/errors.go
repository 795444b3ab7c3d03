package errors

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type AppError struct {
	Code            Code
	Message         string
	InternalDetails string
	IsUserFacing    bool
	SuggestedAction string
	WrappedError    error
	StackTrace      string
}

func (e *AppError) Error() string {
	if e.WrappedError != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.WrappedError)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.WrappedError
}

func New(code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StackTrace: string(debug.Stack()),
	}
}

func NewUserFacing(code Code, message string, suggestion string) *AppError {
	return &AppError{
		Code:            code,
		Message:         message,
		IsUserFacing:    true,
		SuggestedAction: suggestion,
		StackTrace:      string(debug.Stack()),
	}
}

// Wrap attaches a code and message to err. An existing *AppError in the chain
// is returned unchanged so the innermost classification wins.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Code:         code,
		Message:      message,
		WrappedError: err,
		StackTrace:   string(debug.Stack()),
	}
}

// WrapUserFacing always produces a new user-facing error, keeping err as the
// cause and reusing its stack when err is already an *AppError.
func WrapUserFacing(err error, code Code, message string, suggestion string) *AppError {
	if err == nil {
		return nil
	}

	stack := ""
	details := ""
	var appErr *AppError
	if errors.As(err, &appErr) {
		stack = appErr.StackTrace
		details = appErr.Error()
	} else {
		stack = string(debug.Stack())
	}

	return &AppError{
		Code:            code,
		Message:         message,
		InternalDetails: details,
		IsUserFacing:    true,
		SuggestedAction: suggestion,
		WrappedError:    err,
		StackTrace:      stack,
	}
}

func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetUserFacingMessage walks the chain for the first user-facing error.
func GetUserFacingMessage(err error) (string, string, bool) {
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if appErr, ok := cur.(*AppError); ok && appErr.IsUserFacing {
			return appErr.Message, appErr.SuggestedAction, true
		}
	}
	return "An unexpected error occurred.", "Check logs for more details.", false
}
