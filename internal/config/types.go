// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FormatTable renders listings as an aligned terminal table.
	FormatTable Format = "table"
	// FormatJSON renders listings as one JSON object per row.
	FormatJSON Format = "json"
	// FormatCSV renders listings as CSV with a header record.
	FormatCSV Format = "csv"

	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever disables styled output.
	ColorNever ColorMode = "never"

	// DefaultManifestName is the manifest file name used when
	// 'unpack --manifest' is given without an explicit name.
	DefaultManifestName = "manifest.toml"
)

var (
	// ErrInvalidFormat is returned when a Format value is not recognized.
	ErrInvalidFormat = errors.New("invalid output format")
	// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrInvalidOutputDir is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDir = errors.New("invalid output directory")
	// ErrInvalidManifestName is returned when a ManifestFileName value is malformed.
	ErrInvalidManifestName = errors.New("invalid manifest name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Format specifies the listing output format.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}

	// ColorMode specifies when terminal output is styled.
	ColorMode string

	// InvalidColorModeError is returned when a ColorMode value is not recognized.
	// It wraps ErrInvalidColorMode for errors.Is() compatibility.
	InvalidColorModeError struct {
		Value ColorMode
	}

	// OutputDirPath represents the unpack destination base directory.
	// The zero value ("") is valid and means "current directory".
	// Non-zero values must not be whitespace-only.
	OutputDirPath string

	// InvalidOutputDirError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirError struct {
		Value OutputDirPath
	}

	// ManifestFileName represents the manifest file name written under the
	// output directory. A valid name carries no path separators; the zero
	// value ("") is valid and means "use DefaultManifestName".
	ManifestFileName string

	// InvalidManifestNameError is returned when a ManifestFileName value is
	// whitespace-only or contains a path separator.
	InvalidManifestNameError struct {
		Value ManifestFileName
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all fields.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// OutputDir is the default unpack destination base directory.
		OutputDir OutputDirPath `json:"output_dir" mapstructure:"output_dir"`
		// Format is the default listing output format.
		Format Format `json:"format" mapstructure:"format"`
		// Color controls styled terminal output.
		Color ColorMode `json:"color" mapstructure:"color"`
		// ManifestName is the file name written by 'unpack --manifest'.
		ManifestName ManifestFileName `json:"manifest_name" mapstructure:"manifest_name"`
	}
)

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the defined formats,
// and a list of validation errors if it is not.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatTable, FormatJSON, FormatCSV:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: table, json, csv)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// String returns the string representation of the ColorMode.
func (m ColorMode) String() string { return string(m) }

// IsValid returns whether the ColorMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m ColorMode) IsValid() (bool, []error) {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true, nil
	default:
		return false, []error{&InvalidColorModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidColorModeError.
func (e *InvalidColorModeError) Error() string {
	return fmt.Sprintf("invalid color mode %q (valid: auto, always, never)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorModeError) Unwrap() error {
	return ErrInvalidColorMode
}

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "current directory").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirError.
func (e *InvalidOutputDirError) Error() string {
	return fmt.Sprintf("invalid output directory %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputDirError) Unwrap() error { return ErrInvalidOutputDir }

// String returns the string representation of the ManifestFileName.
func (n ManifestFileName) String() string { return string(n) }

// IsValid returns whether the ManifestFileName is valid.
// The zero value ("") is valid (means "use DefaultManifestName").
// Non-zero values must not be whitespace-only and must not contain
// path separators.
func (n ManifestFileName) IsValid() (bool, []error) {
	if n == "" {
		return true, nil
	}
	if strings.TrimSpace(string(n)) == "" || strings.ContainsAny(string(n), `/\`) {
		return false, []error{&InvalidManifestNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidManifestNameError.
func (e *InvalidManifestNameError) Error() string {
	return fmt.Sprintf("invalid manifest name %q: must be a bare file name", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidManifestNameError) Unwrap() error { return ErrInvalidManifestName }

// IsValid returns whether the Config has valid fields.
// It delegates to each typed field's IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.OutputDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Color.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ManifestName.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputDir:    ".",
		Format:       FormatTable,
		Color:        ColorAuto,
		ManifestName: DefaultManifestName,
	}
}
