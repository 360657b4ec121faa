// Package config handles configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/antonioalberti/ng5Gdata/internal/core"
	"github.com/antonioalberti/ng5Gdata/internal/log"
)

// Config is the top-level static configuration.
// Maps to the `ng5gdata:` root key in YAML.
type Config struct {
	// Match holds the payload substrings that mark a packet as carrying a
	// NovaGenesis message. Used as the default predicate set for the
	// filter stage.
	Match []string `mapstructure:"match"`

	Extract ExtractConfig `mapstructure:"extract"`
	Log     log.Config    `mapstructure:"log"`
}

// ExtractConfig contains extractor defaults.
type ExtractConfig struct {
	// Output is the default path for extracted JSONL records.
	Output string `mapstructure:"output"`
}

// configRoot is the wrapper matching the YAML structure `ng5gdata: ...`.
type configRoot struct {
	NG5GData Config `mapstructure:"ng5gdata"`
}

// Load loads configuration from file. An empty path yields the defaults.
// Env vars override file values via the key replacer
// (key "ng5gdata.log.level" → env "NG5GDATA_LOG_LEVEL").
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.NG5GData

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks for values no invocation could work with.
func (c *Config) Validate() error {
	if len(c.Match) == 0 {
		return fmt.Errorf("%w: match substrings must not be empty", core.ErrConfigInvalid)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json", core.ErrConfigInvalid)
	}
	return nil
}

// setDefaults sets default values. All keys use the "ng5gdata." prefix to
// match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ng5gdata.match", []string{
		"ng -m", "ng -info", "ng -notify", "ng -p", "ng -scn",
	})

	v.SetDefault("ng5gdata.extract.output", "extracted.jsonl")

	v.SetDefault("ng5gdata.log.level", "info")
	v.SetDefault("ng5gdata.log.format", "text")
	v.SetDefault("ng5gdata.log.file.enabled", false)
}
