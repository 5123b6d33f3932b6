// Package report maps pipeline results onto stderr diagnostics and
// process exit codes.
//
// Every failure exits 1. The only variation is what gets printed:
// plain errors are printed once with an "error:" prefix, validation
// errors additionally get a usage hint, and errors the transport layer
// already surfaced are kept silent so the user does not see the same
// problem reported twice.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/weft-term/weftctl/internal/ipc"
)

// Silent marks err as already surfaced to the user. Exit fails for it
// without printing anything further.
func Silent(err error) error {
	return &silentError{err: err}
}

type silentError struct {
	err error
}

func (e *silentError) Error() string { return e.err.Error() }
func (e *silentError) Unwrap() error { return e.err }

// Hinted attaches a command path to err so Exit can follow the message
// with a usage hint.
func Hinted(err error, commandPath string) error {
	return &hintedError{err: err, path: commandPath}
}

type hintedError struct {
	err  error
	path string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// FromOutcome converts a delivery outcome into the error Exit expects.
// Delivered maps to nil; every other status maps to exit 1 with the
// message policy the outcome calls for.
func FromOutcome(out ipc.Outcome) error {
	switch out.Status {
	case ipc.StatusDelivered:
		return nil
	case ipc.StatusUnsupported:
		return errors.New("command not supported on this platform")
	case ipc.StatusFailed:
		reason := out.Reason
		if reason == nil {
			reason = errors.New("delivery failed")
		}
		if out.Reported {
			return Silent(reason)
		}
		return reason
	}
	return fmt.Errorf("unhandled delivery status %v", out.Status)
}

// Exit prints err to w according to its marker and returns the process
// exit code. A nil err is success.
func Exit(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var silent *silentError
	if errors.As(err, &silent) {
		return 1
	}

	var hinted *hintedError
	if errors.As(err, &hinted) {
		fmt.Fprintf(w, "error: %v\n", hinted.err)
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", hinted.path)
		return 1
	}

	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
