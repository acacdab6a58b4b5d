// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers:
// runtime.GOOS name constants and the Windows reserved-filename check
// applied to unpacked output paths.
package platform

import "strings"

// OS name constants for runtime.GOOS comparisons. Centralizes the
// string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// windowsReservedNames are device names Windows refuses as filenames,
// regardless of extension.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName checks whether a single path segment collides
// with a Windows device name. Windows reserves the portion before the
// first dot, so "con.txt" and "con.tar.gz" both collide. The comparison
// is case-insensitive.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.IndexByte(upper, '.'); idx != -1 {
		upper = upper[:idx]
	}
	return windowsReservedNames[upper]
}
