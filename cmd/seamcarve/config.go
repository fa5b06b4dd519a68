package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// config holds the settings which can be changed through the configuration file.
type config struct {
	Output   string `mapstructure:"output"`
	Quality  int    `mapstructure:"quality"`
	LogLevel string `mapstructure:"log_level"`
}

// loadConfig reads the configuration file. Without an explicit path the
// seamcarve.yaml file is searched in the working directory and in the user
// config directory; when none is found the defaults are used.
func loadConfig(path string) (*config, error) {
	v := viper.New()
	v.SetDefault("output", defaultOutput)
	v.SetDefault("quality", 100)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("seamcarve")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "seamcarve"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the settings once the command line flags are applied.
func (c *config) validate() error {
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality should be between 1 and 100, got %d", c.Quality)
	}
	return nil
}

// level converts the configured log level to a zerolog level.
func (c *config) level() zerolog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
