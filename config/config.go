// Package config loads optional VM tuning parameters from an arrow.toml
// file in the current directory. Nothing in this package is
// semantically load-bearing: every value here is a capacity hint, never
// an architectural constant (those — max locals, max constants — stay
// fixed; the constant limit is tied to the 8-bit operand encoding).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables read from arrow.toml.
type Config struct {
	VM VMConfig `toml:"vm"`
}

// VMConfig tunes initial capacities for the VM's eval stack and its
// hash tables. Zero means "use the built-in default".
type VMConfig struct {
	StackSize int `toml:"stack_size"`
	TableSize int `toml:"table_size"`
}

// Default returns the zero-value Config, which asks every VM.Option to
// fall back to its built-in default.
func Default() Config {
	return Config{}
}

// Load reads path and decodes it into a Config. If path does not exist,
// Load returns Default() and a nil error: the config file is optional.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
