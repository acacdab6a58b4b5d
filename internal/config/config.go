// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/cfgarc/cfgarc/internal/issue"
	"github.com/cfgarc/cfgarc/pkg/cueutil"
	"github.com/cfgarc/cfgarc/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "cfgarc"
	// ConfigFileName is the config file name without its extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix is the prefix for environment variable overrides
	// (e.g., CFGARC_FORMAT overrides the format key).
	EnvPrefix = "CFGARC"

	// configDirEnvVar overrides the platform config directory lookup.
	configDirEnvVar = "CFGARC_CONFIG_DIR"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the directory cfgarc reads its config file from. The
// CFGARC_CONFIG_DIR environment variable wins over the platform default;
// the test override in global.go wins over both.
//
//nolint:revive // config.ConfigDir stutters, but Dir alone is too vague at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	if dir := os.Getenv(configDirEnvVar); dir != "" {
		return dir, nil
	}

	base, err := platformConfigBase()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// platformConfigBase resolves the per-user configuration root: %APPDATA%
// on Windows, ~/Library/Application Support on macOS, $XDG_CONFIG_HOME or
// ~/.config elsewhere.
func platformConfigBase() (string, error) {
	switch runtime.GOOS {
	case platform.Windows:
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming"), nil
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".config"), nil
	}
}

// loadWithOptions builds a fresh Config from defaults, an optional config
// file, and environment overrides, in that precedence order. It never
// touches package-level state, so concurrent loads are safe.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	applyDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", cueLoadIssue(resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Env overrides bypass the CUE schema, so the typed values get a second
	// check here.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check enum values: format is table/json/csv, color is auto/always/never").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// applyDefaults seeds Viper so a missing file or key still yields a
// complete Config.
func applyDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("output_dir", d.OutputDir.String())
	v.SetDefault("format", d.Format.String())
	v.SetDefault("color", d.Color.String())
	v.SetDefault("manifest_name", d.ManifestName.String())
}

// resolveConfigFile picks the config file for this load: the explicit
// --config path when set (missing file is an error), otherwise the first
// of <config dir>/config.cue and ./config.cue that exists. Empty path with
// nil error means defaults only.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'cfgarc config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", err
		}
	}

	name := ConfigFileName + "." + ConfigFileExt
	for _, p := range []string{filepath.Join(cfgDir, name), name} {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

// cueLoadIssue wraps a CUE parse or schema failure with the guidance the
// CLI prints for a bad config file.
func cueLoadIssue(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'cfgarc config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges the result into Viper. Decoding to a map rather
// than a struct keeps Viper's layering intact: file values sit above
// defaults and below environment overrides. Concrete(false) because
// every schema field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecodeString[map[string]any](
		configSchema, data, "#Config",
		cueutil.WithConcrete(false),
		cueutil.WithFilename(path),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the configuration directory if needed and
// returns its path.
func EnsureConfigDir() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return cfgDir, nil
}

// configFilePath is the full path of the config file, with its directory
// created on first use.
func configFilePath() (string, error) {
	cfgDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig writes a commented default config file unless one
// already exists.
func CreateDefaultConfig() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		return nil
	}
	return writeConfig(cfgPath, DefaultConfig())
}

// Save overwrites the config file with cfg.
func Save(cfg *Config) error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}
	return writeConfig(cfgPath, cfg)
}

func writeConfig(path string, cfg *Config) error {
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE renders cfg as the commented CUE document written by
// 'config init' and Save.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder
	sb.WriteString("// cfgarc Configuration File\n")
	sb.WriteString("// Run 'cfgarc config show' to see the effective configuration.\n\n")

	fields := []struct{ comment, key, value string }{
		{"Default unpack destination base directory.", "output_dir", cfg.OutputDir.String()},
		{"Default listing format: table, json, or csv.", "format", cfg.Format.String()},
		{"Styled terminal output: auto, always, or never.", "color", cfg.Color.String()},
		{"Manifest file name for 'unpack --manifest'.", "manifest_name", cfg.ManifestName.String()},
	}
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "// %s\n%s: %q\n", f.comment, f.key, f.value)
	}
	return sb.String()
}
