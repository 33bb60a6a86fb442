package tmx

import (
	"go.uber.org/zap"
)

// Config includes settings for decoding maps
type Config struct {
	// directory external references (eg. <tileset source="x.tsx">) are
	// relative to. If empty external tilesets aren't loaded, only their
	// FirstGID & Source are kept.
	BaseDir string

	// Logger receives debug output while parsing
	Logger *zap.Logger
}

// DefaultConfig returns a decode config with default settings.
func DefaultConfig() *Config {
	return &Config{
		Logger: zap.NewNop(),
	}
}
