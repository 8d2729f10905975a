package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "validation"
	CodeUnauthorized = "unauthorized"
	CodeNotFound     = "not_found"
	CodeParse        = "parse_error"
	CodeService      = "service_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Parse(format string, args ...interface{}) *Error {
	return New(http.StatusUnprocessableEntity, CodeParse, fmt.Errorf(format, args...))
}

func Service(err error) *Error {
	return New(http.StatusBadGateway, CodeService, err)
}

// StatusOf maps an error to an HTTP status and code for the response
// envelope. Anything that is not an *Error is treated as an internal error.
func StatusOf(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, apiErr.Code
	}
	return http.StatusInternalServerError, "internal"
}
