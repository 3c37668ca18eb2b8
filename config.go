package goat

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config tunes a Process's run: the number of threads installed at the
// loaded image's entry point, how often mark-and-sweep runs, and each
// thread's initial data-stack capacity. Pool capacity is the fixed
// maxPoolSize and is not configurable. It
// plays the same role for cmd/goat that an addon manifest plays for the
// teacher's mkaddon tooling: declarative, optional, and safe to omit in
// favor of defaults.
type Config struct {
	// InitialThreads is how many threads Run installs at the image's
	// entry point before executing it; every Goat program gets at least a
	// main thread regardless of this value.
	InitialThreads int `yaml:"initial_threads"`

	// GCInterval is how many instructions the interpreter executes
	// between collectCycles passes (spec §4.2's mark-and-sweep is a
	// periodic backstop for reference cycles, not triggered by
	// allocation pressure the way Go's own collector is).
	GCInterval int `yaml:"gc_interval"`

	// StackInitialDepth pre-sizes each new thread's data stack.
	StackInitialDepth int `yaml:"stack_initial_depth"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		InitialThreads:    1,
		GCInterval:        4096,
		StackInitialDepth: 16,
	}
}

// LoadConfig reads a YAML tuning file from path, filling in
// DefaultConfig's values for anything the file leaves zero.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.InitialThreads == 0 {
		cfg.InitialThreads = 1
	}
	if cfg.GCInterval == 0 {
		cfg.GCInterval = 4096
	}
	if cfg.StackInitialDepth == 0 {
		cfg.StackInitialDepth = 16
	}
	return cfg, nil
}
