// Package config loads the TOML runtime configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type GameConfig struct {
	DataDir  string `toml:"data_dir"`
	SavePath string `toml:"save_path"`
	Seed     int64  `toml:"seed"` // 0 = derive from wall clock
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // log destination; stdout belongs to the UI
}

// Load reads the config file over the defaults. A missing file is not an
// error: the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Game: GameConfig{
			DataDir:  "data",
			SavePath: "savegame.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   "ringquest.log",
		},
	}
}

// NewLogger builds the zap logger described by the logging section. Output
// goes to the configured file — the terminal is owned by the UI.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}
	return zapCfg.Build()
}
