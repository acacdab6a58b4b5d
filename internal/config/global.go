// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir for tests. It outranks the
// CFGARC_CONFIG_DIR environment variable but yields to an explicit
// LoadOptions.ConfigDirPath. Tests use it instead of faking HOME because
// os.UserHomeDir does not consult HOME on every platform.
var configDirOverride string

// SetConfigDirOverride points ConfigDir at dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the config directory override. Pair with
// SetConfigDirOverride in test cleanup.
func Reset() {
	configDirOverride = ""
}
