// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/cfgarc/cfgarc/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE
// handlers. A nil Err marks a failure that was already reported on stderr
// (styled message plus issue card); renderExecuteError suppresses fang's
// own printing for those, so only the code is carried out of Execute.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error renders the wrapped error, or a generic exit-status message when
// the failure was already reported.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + e.Code.String()
}

// Unwrap exposes the wrapped error to errors.As in renderExecuteError.
func (e *ExitError) Unwrap() error { return e.Err }
