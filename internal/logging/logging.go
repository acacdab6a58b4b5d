// SPDX-License-Identifier: MPL-2.0

// Package logging constructs the shared CLI logger.
//
// Diagnostics go to stderr so that listing and show output on stdout
// stays clean for pipes. Verbose mode lowers the threshold to Debug,
// which reveals per-entry progress during unpack.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at Info level, or Debug level when
// verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "cfgarc",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
