// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode matches any InvalidExitCodeError via errors.Is.
var ErrInvalidExitCode = errors.New("invalid exit code")

// ExitCode is a process exit status in the POSIX range 0-255.
type ExitCode int

// Exit codes reported by the cfgarc binary.
const (
	// ExitSuccess is returned when the requested operation completed.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for any reported error: unreadable or
	// corrupt containers, unsupported features, missing entries, and
	// output directory failures all map to this code.
	ExitFailure ExitCode = 1
)

// InvalidExitCodeError is returned when an ExitCode falls outside the
// range the operating system can report.
type InvalidExitCodeError struct {
	Value ExitCode
}

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap ties the error to ErrInvalidExitCode for errors.Is checks.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate reports whether the code survives os.Exit intact. Values
// outside 0-255 are truncated by the OS, so callers should replace
// them before exiting.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether the code is ExitSuccess.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String renders the code in decimal.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
