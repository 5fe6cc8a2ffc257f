package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/allbin/mameduino/internal/serial"
)

// EnvPrefix is prepended to every environment override, e.g. MAMEDUINO_TIMEOUT
const EnvPrefix = "MAMEDUINO"

// LogFileConfig controls rotating file output
type LogFileConfig struct {
	Filename   string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"`
	LogFileConfig `mapstructure:",squash"`
}

// DetectConfig controls port auto-detection
type DetectConfig struct {
	Candidates []string `mapstructure:"candidates"`
}

// Config is the merged result of defaults, config file, environment and flags
type Config struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Poll    time.Duration `mapstructure:"poll"`
	Detect  DetectConfig  `mapstructure:"detect"`
	Log     LoggingConfig `mapstructure:"log"`
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or mameduino.yaml from the usual places when path is
// empty, and unmarshals the merged configuration. A missing default config
// file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mameduino")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mameduino")
		v.AddConfigPath("/etc/mameduino")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}
	if cfg.Poll <= 0 || cfg.Poll > cfg.Timeout {
		return nil, fmt.Errorf("poll interval must be positive and at most the timeout, got %v", cfg.Poll)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timeout", "200ms")
	v.SetDefault("poll", "10ms")

	v.SetDefault("detect.candidates", serial.Candidates())

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSize", 5)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.maxAge", 28)
}
