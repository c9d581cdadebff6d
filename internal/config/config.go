// Package config provides Viper-based configuration loading for the wildone engine.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/wildone/internal/game/dice"
)

// GameConfig holds world and session settings.
type GameConfig struct {
	// DataDir is the directory holding the YAML game data.
	DataDir string `mapstructure:"data_dir"`
	// StartX and StartY are where a new character begins.
	StartX int `mapstructure:"start_x"`
	StartY int `mapstructure:"start_y"`
	// SafeX and SafeY are where a killed player wakes up.
	SafeX int `mapstructure:"safe_x"`
	SafeY int `mapstructure:"safe_y"`
	// MessageLimit bounds the retained narration.
	MessageLimit int `mapstructure:"message_limit"`
}

// Path joins name onto DataDir.
func (g GameConfig) Path(name string) string {
	return filepath.Join(g.DataDir, name)
}

// DiceConfig selects the randomness source.
type DiceConfig struct {
	// Source is one of "random", "crypto" or "constant".
	Source     string `mapstructure:"source"`
	TrackRolls bool   `mapstructure:"track_rolls"`
	// ConstantValue is the face every die shows when Source is "constant".
	ConstantValue int `mapstructure:"constant_value"`
	// Seed fixes the random sequence; 0 seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

// ServiceConfig converts d to a dice.Config.
func (d DiceConfig) ServiceConfig() (dice.Config, error) {
	kind, err := dice.ParseSourceKind(d.Source)
	if err != nil {
		return dice.Config{}, err
	}
	return dice.Config{Source: kind, TrackRolls: d.TrackRolls, Constant: d.ConstantValue, Seed: d.Seed}, nil
}

// StorageConfig selects the save backend.
type StorageConfig struct {
	// Backend is one of "file", "postgres" or "redis".
	Backend string `mapstructure:"backend"`
	// SaveDir is the directory used by the file backend.
	SaveDir string `mapstructure:"save_dir"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// ConnectTimeout bounds the initial connection and ping.
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds Redis save-store settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// KeyPrefix namespaces every key the store writes.
	KeyPrefix string `mapstructure:"key_prefix"`
	// TTL expires saves; zero keeps them forever.
	TTL time.Duration `mapstructure:"ttl"`
}

// ScriptingConfig holds Lua scripting settings.
type ScriptingConfig struct {
	// Dir holds the Lua scripts; empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps the VM instructions per hook call; zero is unlimited.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Empty means stderr.
	Output string `mapstructure:"output"`
}

// Config is the top-level application configuration.
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Dice      DiceConfig      `mapstructure:"dice"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Validate checks all configuration invariants. Database and Redis settings
// are only checked when their backend is selected.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Storage.Backend == "postgres" {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Storage.Backend == "redis" {
		if err := validateRedis(c.Redis); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, "scripting.instruction_limit must be >= 0")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.DataDir == "" {
		errs = append(errs, "game.data_dir must not be empty")
	}
	if g.MessageLimit < 1 {
		errs = append(errs, fmt.Sprintf("game.message_limit must be >= 1, got %d", g.MessageLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDice(d DiceConfig) error {
	if _, err := dice.ParseSourceKind(d.Source); err != nil {
		return fmt.Errorf("dice.source must be one of [random, crypto, constant], got %q", d.Source)
	}
	if d.Source == "constant" && d.ConstantValue < 1 {
		return fmt.Errorf("dice.constant_value must be >= 1, got %d", d.ConstantValue)
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	validBackends := map[string]bool{"file": true, "postgres": true, "redis": true}
	if !validBackends[s.Backend] {
		return fmt.Errorf("storage.backend must be one of [file, postgres, redis], got %q", s.Backend)
	}
	if s.Backend == "file" && s.SaveDir == "" {
		return errors.New("storage.save_dir must not be empty")
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if d.ConnectTimeout < 0 {
		errs = append(errs, "database.connect_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRedis(r RedisConfig) error {
	var errs []string
	if r.Addr == "" {
		errs = append(errs, "redis.addr must not be empty")
	}
	if r.DB < 0 {
		errs = append(errs, fmt.Sprintf("redis.db must be >= 0, got %d", r.DB))
	}
	if r.TTL < 0 {
		errs = append(errs, "redis.ttl must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with WILDONE_ prefix
	v.SetEnvPrefix("WILDONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.data_dir", "content")
	v.SetDefault("game.start_x", 0)
	v.SetDefault("game.start_y", 0)
	v.SetDefault("game.safe_x", 0)
	v.SetDefault("game.safe_y", -1)
	v.SetDefault("game.message_limit", 250)

	v.SetDefault("dice.source", "random")
	v.SetDefault("dice.track_rolls", false)
	v.SetDefault("dice.constant_value", 1)
	v.SetDefault("dice.seed", 0)

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.save_dir", "saves")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "wildone")
	v.SetDefault("database.password", "wildone")
	v.SetDefault("database.name", "wildone")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.connect_timeout", "5s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "wildone:")
	v.SetDefault("redis.ttl", "0s")

	v.SetDefault("scripting.dir", "content/scripts")
	v.SetDefault("scripting.instruction_limit", 100000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}
