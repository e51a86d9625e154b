package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config is read from STATEMACHINE_* environment variables, then overridden
// by command-line flags.
type Config struct {
	Table    string `env:"TABLE"`                  // YAML definition; empty uses the built-in INC/DEC table
	Lock     string `env:"LOCK" envDefault:"none"` // none, mutex, semaphore or chan
	NonBlock bool   `env:"NONBLOCK"`
	Debug    bool   `env:"DEBUG"`
	DOT      bool   `env:"DOT"`
	Stats    bool   `env:"STATS"`
}

// LoadConfig parses the environment and args.
func LoadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "STATEMACHINE_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := pflag.NewFlagSet("simple", pflag.ContinueOnError)
	fs.StringVar(&cfg.Table, "table", cfg.Table, "path of a YAML machine definition")
	fs.StringVar(&cfg.Lock, "lock", cfg.Lock, "lock strategy: none, mutex, semaphore or chan")
	fs.BoolVar(&cfg.NonBlock, "nonblock", cfg.NonBlock, "dispatch with the non-blocking flag")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log every transition")
	fs.BoolVar(&cfg.DOT, "dot", cfg.DOT, "print the machine as Graphviz DOT when done")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "log lock usage when done")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Lock {
	case "none", "mutex", "semaphore", "chan":
		return nil
	default:
		return fmt.Errorf("unknown lock strategy %q", c.Lock)
	}
}
