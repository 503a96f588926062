// Package config loads environment-driven configuration for the command line
// tools. A .env file in the working directory is read once, if present, before
// the first Load.
package config

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)

var dotenvLoaded sync.Once

// Load parses environment variables into v according to its env struct tags.
func Load[T any](v *T) error {
	dotenvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// CLI is the configuration of cmd/curri.
type CLI struct {
	Definition string   `env:"CURRI_DEFINITION,required,notEmpty"`
	Events     []string `env:"CURRI_EVENTS" envSeparator:","`
	MachineID  string   `env:"CURRI_MACHINE_ID"`
	DOT        bool     `env:"CURRI_DOT" envDefault:"false"`
	LogLevel   string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string   `env:"LOG_FORMAT" envDefault:"text"`

	// Ticking runs after Events. TickCount 0 ticks until interrupted.
	TickEvent    string        `env:"CURRI_TICK_EVENT"`
	TickInterval time.Duration `env:"CURRI_TICK_INTERVAL" envDefault:"1s"`
	TickCount    int           `env:"CURRI_TICK_COUNT" envDefault:"0"`
}
