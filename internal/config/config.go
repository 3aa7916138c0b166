// Package config loads the bestiary server configuration: YAML file first,
// then environment overrides, then validation.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/bestiary/internal/constants"
)

// Rates holds global rate knobs.
type Rates struct {
	// Loot is the loot-rate divisor: loot rolls are divided by it, so larger
	// values make drops more frequent.
	Loot int `yaml:"loot" env:"BESTIARY_RATE_LOOT" validate:"min=1"`
}

// DefaultRates returns x1 rates.
func DefaultRates() Rates {
	return Rates{Loot: 1}
}

// Server holds all configuration for the bestiary server.
type Server struct {
	LogLevel string `yaml:"log_level" env:"BESTIARY_LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Data layout: <data_dir>/monster/monsters.xml, <data_dir>/items.yaml,
	// <data_dir>/spells.xml; scripts are resolved against ScriptsDir.
	DataDir    string `yaml:"data_dir" env:"BESTIARY_DATA_DIR" validate:"required"`
	ScriptsDir string `yaml:"scripts_dir" env:"BESTIARY_SCRIPTS_DIR" validate:"required"`

	// Metrics endpoint, empty disables it.
	MetricsAddr string `yaml:"metrics_addr" env:"BESTIARY_METRICS_ADDR" validate:"omitempty,hostname_port"`

	// MaxViewportX is the viewport half-width; ability range is clamped to twice it.
	MaxViewportX int `yaml:"max_viewport_x" env:"BESTIARY_MAX_VIEWPORT_X" validate:"min=1"`

	Rates Rates `yaml:"rates"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:     "info",
		DataDir:      "data",
		ScriptsDir:   "data/scripts",
		MetricsAddr:  "127.0.0.1:9108",
		MaxViewportX: constants.MaxViewportX,
		Rates:        DefaultRates(),
	}
}

var validate = validator.New()

// LoadServer loads server config from a YAML file and applies BESTIARY_*
// environment overrides. If the file doesn't exist, defaults are used.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (s Server) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
