package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/passgen/passgen-go/internal/crypto"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env      string
	LogLevel slog.Level
	Length   int
	Classes  []crypto.CharacterClass
	Copy     bool
}

// fileConfig is the on-disk YAML shape. Pointers distinguish missing keys from zero values.
type fileConfig struct {
	Length  *int     `yaml:"length"`
	Classes []string `yaml:"classes"`
	Copy    *bool    `yaml:"copy"`
}

// Default returns the built-in defaults: 12 characters drawn from every class.
func Default() Config {
	return Config{
		Env:      "development",
		LogLevel: slog.LevelWarn,
		Length:   crypto.DefaultLength,
		Classes:  crypto.AllClasses(),
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or $PASSGEN_CONFIG when path is empty), then PASSGEN_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("PASSGEN_CONFIG")
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.Length < 1 {
		return Config{}, fmt.Errorf("%w: default length must be positive, got %d", ErrInvalidConfig, cfg.Length)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(file).Decode(&fc); err != nil {
		return fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	if fc.Length != nil {
		c.Length = *fc.Length
	}
	if fc.Classes != nil {
		classes, err := crypto.ParseCharacterClasses(strings.Join(fc.Classes, ","))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
		c.Classes = classes
	}
	if fc.Copy != nil {
		c.Copy = *fc.Copy
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Env = getEnv("ENV", c.Env)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalidConfig, err)
		}
	}

	if v := os.Getenv("PASSGEN_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PASSGEN_LENGTH: %w", ErrInvalidConfig, err)
		}
		c.Length = n
	}

	if v := os.Getenv("PASSGEN_CLASSES"); v != "" {
		classes, err := crypto.ParseCharacterClasses(v)
		if err != nil {
			return fmt.Errorf("%w: PASSGEN_CLASSES: %w", ErrInvalidConfig, err)
		}
		c.Classes = classes
	}

	if v := os.Getenv("PASSGEN_COPY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: PASSGEN_COPY: %w", ErrInvalidConfig, err)
		}
		c.Copy = b
	}

	return nil
}

// ClassEnabled reports whether class is among the configured defaults.
func (c Config) ClassEnabled(class crypto.CharacterClass) bool {
	for _, enabled := range c.Classes {
		if enabled == class {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
