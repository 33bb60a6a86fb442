package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Nil(t, err)
	home, err := homedir.Dir()
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(home, ".tmx", "tiles.sqlite"), cfg.Database)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "tmx.yaml")
	require.Nil(t, os.WriteFile(fpath, []byte("database: /tmp/maps.sqlite\nlog_level: debug\n"), 0644))

	cfg, err := loadConfig(fpath)

	require.Nil(t, err)
	assert.Equal(t, "/tmp/maps.sqlite", cfg.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigBadYaml(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "tmx.yaml")
	require.Nil(t, os.WriteFile(fpath, []byte("database: [unclosed\n"), 0644))

	_, err := loadConfig(fpath)

	assert.NotNil(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(&config{LogLevel: "warn"}, false)
	require.Nil(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = newLogger(&config{LogLevel: "loud"}, false)
	assert.NotNil(t, err)

	log, err = newLogger(&config{LogLevel: "error"}, true)
	require.Nil(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}
