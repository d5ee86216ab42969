// Package config holds the runtime configuration and its validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// EnvPrefix prefixes every environment variable that can set a flag, e.g. SPLINCH_PASSES.
const EnvPrefix = "SPLINCH"

// ErrUsage marks invalid flag combinations and missing arguments.
var ErrUsage = errors.New("usage error")

// Config holds the settings of a single invocation.
type Config struct {
	// Input is the file to split, or a .xor1/.xor2 file to combine
	Input string `label:"--input" mapstructure:"input" validate:"required"`

	// Split-phase options
	Verify       bool `label:"--verify"        mapstructure:"verify"        validate:"exclusive=Combine"`
	SecureDelete bool `label:"--secure-delete" mapstructure:"secure-delete" validate:"exclusive=Combine"`
	Passes       int  `label:"--passes"        mapstructure:"passes"        validate:"min=1"`

	// Combine switches from split mode to combine mode
	Combine bool `label:"--combine" mapstructure:"combine"`

	// Output options
	Quiet bool `mapstructure:"quiet"`
	Stats bool `mapstructure:"stats"`
	Debug bool `mapstructure:"debug"`

	// File is an optional JSONC file with defaults for any of the above
	File string `mapstructure:"config"`
}

// Load binds flags and SPLINCH_* environment variables into v, reads the optional
// config file and decodes the result. Flags win over the environment, which wins over the file.
func Load(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// readFile merges a JSONC file into v.
func readFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSONInPlace(data))); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return nil
}

// Validate checks flag combinations before any file is touched.
func (c *Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return describe(err)
	}

	if c.Combine && c.Passes != 1 {
		return fmt.Errorf("%w: --passes cannot be used with --combine", ErrUsage)
	}

	return nil
}
