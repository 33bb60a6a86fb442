package main

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// config is read from the yaml file given by --config (if it exists)
type config struct {
	// default tile store
	Database string `yaml:"database"`

	// debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() *config {
	return &config{
		Database: "~/.tmx/tiles.sqlite",
		LogLevel: "info",
	}
}

// loadConfig reads the config at `fpath`, falling back to defaults for
// anything unset (or everything, if the file doesn't exist).
func loadConfig(fpath string) (*config, error) {
	cfg := defaultConfig()

	fpath, err := homedir.Expand(fpath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fpath)
	if err == nil {
		err = yaml.Unmarshal(data, cfg)
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.Database, err = homedir.Expand(cfg.Database)
	return cfg, err
}

// newLogger builds the logger for the configured level; verbose forces
// development (debug) output.
func newLogger(cfg *config, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	return zcfg.Build()
}
