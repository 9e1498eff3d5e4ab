// Package config loads a fuzzing run's TOML configuration: PRNG seed,
// depth/width budgets, statement-kind weights, the oracle trigger period,
// and the external client target. Decoding follows the teacher's own
// pattern in internal/parser/toml of decoding straight into a typed
// struct and filling defaults in afterward.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"fuzzql/internal/typegen"
)

// ClientTarget selects which internal/client implementation a run talks
// to.
type ClientTarget string

const (
	TargetMock  ClientTarget = "mock"
	TargetLite  ClientTarget = "lite"
	TargetMySQL ClientTarget = "mysql"
)

// Config is the full, decoded run configuration.
type Config struct {
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers"`

	MaxDepth int `toml:"max_depth"`
	MaxWidth int `toml:"max_width"`

	// StatementBudget bounds how many driver iterations (ordinary
	// statements and oracle rounds together) a worker runs before
	// stopping; 0 means unbounded (run until the worker's context is
	// cancelled or the process is stopped).
	StatementBudget int `toml:"statement_budget"`

	// OraclePeriod makes every OraclePeriod-th driver iteration (iteration
	// 0 excluded) an oracle round instead of an ordinary statement, so
	// OraclePeriod-1 ordinary statements run between rounds; 0 disables
	// oracle rounds.
	OraclePeriod int `toml:"oracle_period"`

	Client struct {
		Target ClientTarget `toml:"target"`
		DSN    string        `toml:"dsn"`
		Path   string        `toml:"path"` // SQLite file path for TargetLite
	} `toml:"client"`

	Log struct {
		Path       string `toml:"path"`
		MaxSizeMB  int    `toml:"max_size_mb"`
		MaxBackups int    `toml:"max_backups"`
		MaxAgeDays int    `toml:"max_age_days"`
	} `toml:"log"`
}

// Default returns a Config with sane defaults, used when no file is given
// and as the base Load decodes onto (so a config file only needs to name
// what it overrides).
func Default() Config {
	var c Config
	c.Seed = 1
	c.Workers = 1
	c.MaxDepth = typegen.DefaultBudget.MaxDepth
	c.MaxWidth = typegen.DefaultBudget.MaxWidth
	c.StatementBudget = 1000
	c.OraclePeriod = 20
	c.Client.Target = TargetMock
	c.Log.Path = "fuzzql.log"
	c.Log.MaxSizeMB = 100
	c.Log.MaxBackups = 5
	c.Log.MaxAgeDays = 14
	return c
}

// Load decodes a TOML file at path on top of Default(), so any field the
// file omits keeps its default value.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate reports a descriptive error for an unusable config rather than
// letting the driver fail confusingly later.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("config: max_depth must be >= 1, got %d", c.MaxDepth)
	}
	if c.MaxWidth < 1 {
		return fmt.Errorf("config: max_width must be >= 1, got %d", c.MaxWidth)
	}
	switch c.Client.Target {
	case TargetMock, TargetLite, TargetMySQL:
	default:
		return fmt.Errorf("config: unknown client target %q", c.Client.Target)
	}
	if c.Client.Target == TargetMySQL && c.Client.DSN == "" {
		return fmt.Errorf("config: client.dsn is required for target %q", TargetMySQL)
	}
	return nil
}

// Budget converts the decoded depth/width into a typegen.Budget.
func (c Config) Budget() typegen.Budget {
	return typegen.Budget{MaxDepth: c.MaxDepth, MaxWidth: c.MaxWidth}
}
