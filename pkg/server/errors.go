package server

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a server error the way gRPC status codes would; the HTTP
// facade maps them onto status codes and the coordinator decides between
// stream-level rejection and in-band GamePlayError from them.
type Code int

const (
	CodeInvalidArgument Code = iota
	CodeNotFound
	CodeFailedPrecondition
	CodeRuleViolation
	CodeInternal
	CodeUnavailable
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeNotFound:
		return "NotFound"
	case CodeFailedPrecondition:
		return "FailedPrecondition"
	case CodeRuleViolation:
		return "RuleViolation"
	case CodeInternal:
		return "Internal"
	case CodeUnavailable:
		return "Unavailable"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is a coded server error.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Errorf builds a coded error with a formatted message.
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the code from an error, defaulting to Internal for
// errors that did not originate here.
func ErrCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// httpStatus maps an error code onto the HTTP status the facade returns.
func httpStatus(code Code) int {
	switch code {
	case CodeInvalidArgument, CodeRuleViolation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
