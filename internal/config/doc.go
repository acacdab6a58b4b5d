// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/cfgarc/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/cfgarc/config.cue on macOS, %APPDATA%\cfgarc\config.cue
// on Windows; CFGARC_CONFIG_DIR overrides the directory). Values can also be set through
// CFGARC_* environment variables, and command-line flags override everything.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
