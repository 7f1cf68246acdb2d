package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

// Config is the process configuration, fixed at startup. Per-room game
// settings come from the Game block and are read-only during a game.
type Config struct {
	Addr        string `mapstructure:"addr"`
	CatalogPath string `mapstructure:"catalog_path"`
	Game        Game   `mapstructure:"game"`
}

type Game struct {
	NightSeconds int `mapstructure:"night_seconds"`
	DaySeconds   int `mapstructure:"day_seconds"`
	HandSize     int `mapstructure:"hand_size"`
}

// Load reads cauldron.yaml from the working directory, if present, with
// CAULDRON_-prefixed environment variables overriding file values.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("cauldron")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("cauldron")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := engine.DefaultConfig()
	v.SetDefault("addr", ":8080")
	v.SetDefault("catalog_path", "catalog.yaml")
	v.SetDefault("game.night_seconds", defaults.NightSeconds)
	v.SetDefault("game.day_seconds", defaults.DaySeconds)
	v.SetDefault("game.hand_size", defaults.HandSize)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EngineConfig maps the process configuration onto the engine's per-game
// settings.
func (c Config) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if c.Game.NightSeconds > 0 {
		cfg.NightSeconds = c.Game.NightSeconds
	}
	if c.Game.DaySeconds > 0 {
		cfg.DaySeconds = c.Game.DaySeconds
	}
	if c.Game.HandSize > 0 {
		cfg.HandSize = c.Game.HandSize
	}
	return cfg
}
