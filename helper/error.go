package helper

import (
	"errors"
	"strings"
)

// Error wraps an error with the trace of operations it passed through.
type Error struct {
	Original error
	Trace    []string
}

// NewError wraps err with the name of the failing operation.
// Wrapping an already wrapped error appends to its trace.
func NewError(trace string, err error) error {
	if err == nil {
		return nil
	}

	var e Error
	if errors.As(err, &e) {
		t := make([]string, 0, len(e.Trace)+1)
		t = append(t, e.Trace...)
		e.Trace = append(t, trace)
		return e
	}

	return Error{
		Original: err,
		Trace:    []string{trace},
	}
}

func (e Error) Error() string {
	return e.Original.Error() + " | trace: " + strings.Join(e.Trace, " <- ")
}

func (e Error) Unwrap() error {
	return e.Original
}
