package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	DevGuild     string `env:"DEV_GUILD_ID"`
	DBPath       string `env:"DB_PATH"`
	SpeciesJson  string `env:"SPECIES_JSON"`
	PokeAPIURL   string `env:"POKEAPI_URL" envDefault:"https://pokeapi.co/api/v2"`
	WikiHost     string `env:"WIKI_HOST" envDefault:"bulbapedia.bulbagarden.net"`
	MaxSpeciesID int    `env:"MAX_SPECIES_ID" envDefault:"905"`
	ShinyOdds    int    `env:"SHINY_ODDS" envDefault:"500"`
	Timezone     string `env:"LUCKY_TIMEZONE" envDefault:"UTC"`
	Prefix       string `env:"COMMAND_PREFIX" envDefault:"."`
	ShardCount   int    `env:"SHARD_COUNT" envDefault:"1"`
	ShardId      int    `env:"SHARD_ID" envDefault:"0"`
	CooldownMin  int    `env:"COOLDOWN_MIN" envDefault:"5"`
	CooldownMax  int    `env:"COOLDOWN_MAX" envDefault:"5"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxSpeciesID < 1 {
		return nil, fmt.Errorf("MAX_SPECIES_ID must be positive, got %d", cfg.MaxSpeciesID)
	}
	if cfg.ShinyOdds < 1 {
		return nil, fmt.Errorf("SHINY_ODDS must be positive, got %d", cfg.ShinyOdds)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("LUCKY_TIMEZONE: %w", err)
	}
	return loc, nil
}

func (c *Config) Cooldowns() (time.Duration, time.Duration) {
	return time.Duration(c.CooldownMin) * time.Second, time.Duration(c.CooldownMax) * time.Second
}
