// Package config loads pyrho settings from defaults, the YAML config file,
// PYRHO_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmmshn/pyrho/internal/appdir"
)

// ErrUnknownKey is returned when a config key is not one of ValidKeys.
var ErrUnknownKey = errors.New("unknown config key")

const envPrefix = "PYRHO"

// Defaults.
const (
	DefaultOutput  = "text"
	DefaultVerbose = false
)

// Config holds the effective settings for one invocation.
type Config struct {
	// ConfigFile is the resolved path of the YAML config file.
	ConfigFile string

	Verbose bool
	Output  string

	// Aliases maps alias names to the command line they expand to.
	Aliases map[string]string
}

// RegisterFlags adds the global flags backed by config keys to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default: <user config dir>/pyrho/config.yaml)")
	flags.BoolP("verbose", "v", DefaultVerbose, "enable verbose logging (debug level)")
	flags.StringP("output", "o", DefaultOutput, "output format: text, json, plain")
}

// DefaultConfigPath returns <user config dir>/pyrho/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load resolves the effective configuration. The config file is created with
// 0600 permissions when it does not exist yet.
func Load(flags *pflag.FlagSet) (*Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("reading --config flag: %w", err)
	}
	if path == "" {
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	if err := appdir.EnsureFile(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("verbose", DefaultVerbose)
	v.SetDefault("output", DefaultOutput)

	for _, key := range ValidKeys() {
		f := flags.Lookup(flagName(key))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding flag %q: %w", f.Name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		return nil, err
	}

	return &Config{
		ConfigFile: path,
		Verbose:    v.GetBool("verbose"),
		Output:     v.GetString("output"),
		Aliases:    aliases,
	}, nil
}

// flagName converts a viper key into its flag spelling ("no_color" → "no-color").
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
