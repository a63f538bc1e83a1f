package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none or only nil errors are given, nil is returned. A single non nil
// error is returned as it is.
//
// Use it to collect all validation errors of a message instead of failing on
// the first one.
func Append(errs ...error) error {
	var collected []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			collected = append(collected, m.errs...)
			continue
		}
		collected = append(collected, e)
	}

	switch len(collected) {
	case 0:
		return nil
	case 1:
		return collected[0]
	default:
		return &multiErr{errs: collected}
	}
}

// multiErr represents a group of errors. It is created by the Append
// function only.
type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	msgs := make([]string, len(m.errs))
	for i, e := range m.errs {
		msgs[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m.errs), strings.Join(msgs, "\n\t"))
}

// Unpack returns all errors that this instance was created with.
func (m *multiErr) Unpack() []error {
	return m.errs
}

// Cause returns the first error of the group, consistent with a fail fast
// approach when reporting the error code.
func (m *multiErr) Cause() error {
	return m.errs[0]
}

// unpacker is implemented by errors that represent a group of errors.
type unpacker interface {
	Unpack() []error
}
