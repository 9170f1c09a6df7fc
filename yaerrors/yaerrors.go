// Package yaerrors provides the error type shared by every package of the kit.
//
// An Error carries a numeric code (HTTP status semantics, so the webhook layer can
// log it meaningfully), the original cause, and a human readable traceback that
// grows each time the error is wrapped on its way up the call stack:
//
//	400 | decode update -> build entity #2 -> invalid entity: text_link requires url
//
// The cause stays reachable through Unwrap, so sentinel errors declared by the
// packages can be matched with errors.Is.
package yaerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
)

// ErrTeapot is reported when a method is called on a nil *yaError.
var ErrTeapot = errors.New("backend developer is a teapot")

// Error is an error with a code and a traceback.
type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log yalogger.Logger) Error
	Code() int
	Unwrap() error
	UnwrapLastError() string
}

const (
	codeSeparate  = " | "
	errorSeparate = " -> "
)

type yaError struct {
	code      int
	cause     error
	traceback string
}

// FromError builds an Error around cause, prefixing the traceback with wrap.
func FromError(code int, cause error, wrap string) Error {
	return &yaError{
		code:      code,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog is FromError that also logs the resulting message at error level.
func FromErrorWithLog(code int, cause error, wrap string, log yalogger.Logger) Error {
	err := FromError(code, cause, wrap)

	if log != nil {
		log.Error(err.Error())
	}

	return err
}

// FromString builds an Error whose cause is a fresh error with the message msg.
func FromString(code int, msg string) Error {
	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog is FromString that also logs msg at error level.
func FromStringWithLog(code int, msg string, log yalogger.Logger) Error {
	if log != nil {
		log.Error(msg)
	}

	return FromString(code, msg)
}

// Error returns "<code> | <traceback>".
func (e *yaError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%d%s%s", e.code, codeSeparate, e.traceback)
}

// Unwrap returns the cause the error was built from.
func (e *yaError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns the outermost traceback segment, i.e. the message of the
// latest Wrap call.
func (e *yaError) UnwrapLastError() string {
	safetyCheck(&e)

	head, _, found := strings.Cut(e.traceback, errorSeparate)
	if !found {
		return e.traceback
	}

	return head
}

// Wrap returns a copy of the error with msg prepended to the traceback.
// The receiver is left untouched, so a sentinel-like Error may be wrapped
// concurrently from several goroutines.
func (e *yaError) Wrap(msg string) Error {
	safetyCheck(&e)

	return &yaError{
		code:      e.code,
		cause:     e.cause,
		traceback: msg + errorSeparate + e.traceback,
	}
}

// WrapWithLog is Wrap that also logs msg at error level.
func (e *yaError) WrapWithLog(msg string, log yalogger.Logger) Error {
	if log != nil {
		log.Error(msg)
	}

	return e.Wrap(msg)
}

// Code returns the error code.
func (e *yaError) Code() int {
	safetyCheck(&e)

	return e.code
}

func safetyCheck(err **yaError) {
	if *err == nil {
		*err = &yaError{
			code:      http.StatusTeapot,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
