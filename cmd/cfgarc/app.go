// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cfgarc/cfgarc/internal/config"
	"github.com/cfgarc/cfgarc/internal/issue"
)

type (
	// App is the composition root for the CLI layer: every Cobra command
	// handler receives one and loads configuration through its
	// ConfigProvider.
	App struct {
		Config ConfigProvider
	}

	// Dependencies names the injection points NewApp accepts. A nil field
	// gets its production default, so tests override only what they stub.
	Dependencies struct {
		Config ConfigProvider
	}

	// ConfigProvider abstracts config.Provider so command tests can feed
	// handlers canned configurations without touching the filesystem.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp fills in production defaults for any dependency left nil.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{Config: deps.Config}, nil
}

// loadConfigWithFallback loads configuration via the provider. When no config
// path was given explicitly, load failures degrade to defaults with a styled
// warning on stderr so the read-only commands stay usable on a machine with a
// broken config file. An explicit --config path that fails to load is fatal.
func loadConfigWithFallback(ctx context.Context, provider ConfigProvider, configPath string, stderr io.Writer, verbose bool) (*config.Config, error) {
	cfg, err := provider.Load(ctx, config.LoadOptions{ConfigFilePath: configPath})
	if err == nil {
		return cfg, nil
	}

	if configPath != "" {
		return nil, fmt.Errorf("load config from %s: %w", configPath, err)
	}

	fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	return config.DefaultConfig(), nil
}

// formatErrorForDisplay picks the richest rendering err offers: an
// ActionableError formats itself with suggestions (and the cause chain
// when verbose); anything else prints as-is.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
