// SPDX-License-Identifier: EPL-2.0

// Package config resolves runtime settings from flags, CONVREVERB_*
// environment variables and an optional YAML file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/convreverb/internal/logging"
)

const EnvPrefix = "CONVREVERB"

// Keys, as used in config files. Flags spell them with dashes.
const (
	KeyWorkers     = "workers"
	KeyProgress    = "progress"
	KeyDiagnostics = "diagnostics"
	KeyStrict      = "strict"
	KeyMatchRate   = "match_rate"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Workers     int    `mapstructure:"workers"`
	Progress    bool   `mapstructure:"progress"`
	Diagnostics bool   `mapstructure:"diagnostics"`
	Strict      bool   `mapstructure:"strict"`
	MatchRate   bool   `mapstructure:"match_rate"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

func Default() Config {
	return Config{
		Workers:   1,
		LogLevel:  "info",
		LogFormat: logging.FormatText,
	}
}

func flagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

// RegisterFlags adds one flag per key to fs, with defaults from Default.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.IntP(flagName(KeyWorkers), "j", d.Workers, "Convolution workers (0 uses every CPU)")
	fs.Bool(flagName(KeyProgress), d.Progress, "Log progress at every 10% of the convolution")
	fs.Bool(flagName(KeyDiagnostics), d.Diagnostics, "Log sample statistics for every stage")
	fs.Bool(flagName(KeyStrict), d.Strict, "Reject inputs that are not mono 16-bit PCM")
	fs.Bool(flagName(KeyMatchRate), d.MatchRate, "Resample the impulse to the dry sample rate")
	fs.String(flagName(KeyLogLevel), d.LogLevel, "Log level: debug, info, warn or error")
	fs.String(flagName(KeyLogFormat), d.LogFormat, "Log format: text or json")
}

// Load merges defaults, file (when not empty), the environment and fs. A nil
// fs skips flag binding.
func Load(fs *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyProgress, d.Progress)
	v.SetDefault(KeyDiagnostics, d.Diagnostics)
	v.SetDefault(KeyStrict, d.Strict)
	v.SetDefault(KeyMatchRate, d.MatchRate)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	if fs != nil {
		for _, key := range []string{
			KeyWorkers, KeyProgress, KeyDiagnostics, KeyStrict,
			KeyMatchRate, KeyLogLevel, KeyLogFormat,
		} {
			if f := fs.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalid, c.LogFormat)
	}

	return nil
}
