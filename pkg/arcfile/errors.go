// SPDX-License-Identifier: MPL-2.0

package arcfile

import (
	"errors"
	"fmt"
)

// Feature names carried by UnsupportedFeatureError.
const (
	FeatureCompression = "compression"
	FeatureEncryption  = "encryption"
)

// ErrWalked is returned by Container.Walk once the container's entries
// have already been consumed. The cursor is single-pass; decode the data
// again to walk it again.
var ErrWalked = errors.New("container already walked")

// FormatError reports bytes that violate the container format. It is
// always fatal: once a violation is detected the cursor position can no
// longer be trusted, so no later entry can be located.
type FormatError struct {
	// Offset is the cursor position, in bytes from the start of the
	// container, at which the violation was detected.
	Offset int

	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("offset 0x%x: %s", e.Offset, e.Reason)
}

// UnsupportedFeatureError reports a container whose header declares a
// recognized but unimplemented method, such as a compressed or encrypted
// payload. The file is well formed; this tool cannot read it. Kept
// distinct from FormatError so callers can tell a tool limitation from
// corruption.
type UnsupportedFeatureError struct {
	// Feature is FeatureCompression or FeatureEncryption.
	Feature string

	// Code is the method code the header declares.
	Code uint8
}

// Error implements the error interface.
func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s method %d is not supported (only method 0 can be read)", e.Feature, e.Code)
}
