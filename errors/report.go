package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is reported when the invocation did not fail.
	SuccessCode uint32 = 0

	// All unclassified errors that were not created by this package are
	// clubbed under an internal error code and a generic message instead of
	// detailed error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Report returns the error code and log message that can be shown to a
// client of the ledger. Any error that was not created by wrapping one of the
// registered errors is categorized as error with code 1.
//
// When not running in a debug mode, messages of internal errors and panics
// are replaced with a generic "internal error".
func Report(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	code := Code(err)
	if debug {
		// Try to trigger full information formatting. This
		// might produce a stacktrace.
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode || code == ErrPanic.code {
		return code, internalLog
	}
	return code, err.Error()
}

// Redact replace all errors that were not created using one of the
// registered errors with a generic internal error instance. This function is
// supposed to hide implementation details errors.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
