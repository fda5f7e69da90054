// Package config loads the optional cynthia.toml engine configuration: a
// handful of non-semantic knobs (timeout hint, bench worker count, log
// level/format) that affect how fast or how verbosely a run executes but
// never change a realizability verdict.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root of cynthia.toml.
type Config struct {
	Search SearchConfig `toml:"search"`
	Bench  BenchConfig  `toml:"bench"`
	Log    LogConfig    `toml:"log"`
}

// SearchConfig holds knobs for the CLI's cancellation wrapper around
// pkg/game.Engine.Evaluate. The engine itself has no notion of a timeout;
// it only observes the context the CLI cancels.
type SearchConfig struct {
	// TimeoutSeconds is the wall-clock budget the CLI gives one
	// `synthesize` invocation before cancelling the search's context. Zero
	// means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// BenchConfig holds knobs for internal/bench's worker pool.
type BenchConfig struct {
	// Workers is the fixed StaticWorkerPool size. Zero or negative means
	// "default to runtime.NumCPU()", matching internal/parallel's own
	// convention.
	Workers int `toml:"workers"`
}

// LogConfig holds knobs for internal/obslog's zap construction.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to "info".
	Level string `toml:"level"`
	// JSON selects zap's production (JSON) encoder over its development
	// (console) encoder.
	JSON bool `toml:"json"`
}

// Default returns the configuration used when no cynthia.toml is present.
func Default() Config {
	return Config{
		Search: SearchConfig{TimeoutSeconds: 0},
		Bench:  BenchConfig{Workers: 0},
		Log:    LogConfig{Level: "info", JSON: false},
	}
}

// Timeout returns the configured search timeout as a time.Duration, or 0
// (meaning "no timeout") when TimeoutSeconds is non-positive.
func (c SearchConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads and decodes path as TOML into a Config seeded with Default()
// values, so a partial cynthia.toml only overrides the fields it mentions.
// A missing file is not an error: Load returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
