package cmderr

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes of PFS commands.
const (
	// CodeFailure is a code of any unclassified failure.
	CodeFailure = 1
	// CodeNotFound is returned when requested item is missing.
	CodeNotFound = 2
)

// ExitErr is an error carrying process exit code along with the cause.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

func (x ExitErr) Unwrap() error { return x.Cause }

// WithCode wraps err into ExitErr with the given code. Returns nil if err
// is nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return ExitErr{Code: code, Cause: err}
}

// ExitOnErr writes error to os.Stderr and calls os.Exit with the code
// carried by ExitErr or CodeFailure. Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

func report(w io.Writer, err error) int {
	var e ExitErr
	if !errors.As(err, &e) {
		e.Code = CodeFailure
	}

	fmt.Fprintln(w, "Error:", err)

	return e.Code
}
