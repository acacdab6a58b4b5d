// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions narrows where one Load call looks for its config file.
// The zero value means the standard search: the platform config
// directory, then config.cue in the current directory, then built-in
// defaults. Environment overrides apply in every case.
type LoadOptions struct {
	// ConfigFilePath names the config file directly. When set, the
	// directory search is skipped and a missing file is an error rather
	// than a fallthrough.
	ConfigFilePath string

	// ConfigDirPath replaces the platform config directory in the search.
	ConfigDirPath string
}

// Provider is the seam commands load configuration through; App swaps
// it for a stub in tests.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// cueProvider loads CUE config files from the real filesystem.
type cueProvider struct{}

var _ Provider = (*cueProvider)(nil)

// NewProvider returns the filesystem-backed Provider.
func NewProvider() Provider {
	return &cueProvider{}
}

func (p *cueProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithSource reads configuration like Provider.Load and additionally
// returns the path of the config file that supplied it. The path is
// empty when only defaults (and environment overrides) applied.
func LoadWithSource(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
