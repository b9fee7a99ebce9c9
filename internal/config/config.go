package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/vitalcheck/internal/llm"
	"github.com/abhisek/vitalcheck/internal/report"
	"github.com/abhisek/vitalcheck/internal/statefile"
	"github.com/abhisek/vitalcheck/internal/store"
)

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for vitalcheck.
type Config struct {
	State    StateConfig  `yaml:"state"`
	Seed     uint64       `yaml:"seed"` // 0 picks a random seed
	LogLevel string       `yaml:"log_level"`
	Report   ReportConfig `yaml:"report"`
	LLM      llm.Config   `yaml:"llm"`
}

// StateConfig selects where the patient snapshot lives.
type StateConfig struct {
	Backend string `yaml:"backend"`
	File    string `yaml:"file"`    // empty: patient_data.json in the data dir
	DB      string `yaml:"db"`      // empty: store.DefaultDBPath
	History int    `yaml:"history"` // snapshots kept by the sqlite backend
}

// ReportConfig controls the narrative health report.
type ReportConfig struct {
	Enabled       bool `yaml:"enabled"`
	report.Config `yaml:",inline"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		State: StateConfig{
			Backend: BackendFile,
			History: store.DefaultSnapshotHistory,
		},
		LogLevel: "info",
		Report:   ReportConfig{Enabled: true, Config: report.DefaultConfig()},
		LLM:      llm.DefaultConfig(),
	}
}

// Load layers defaults, the YAML file at path, and VITALCHECK_* variables,
// in that order. An empty path tries VITALCHECK_CONFIG and then the
// default location; only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("VITALCHECK_CONFIG"); p != "" {
			path, explicit = p, true
		} else if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			// ${VAR} references let API keys stay out of the file.
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return &cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/vitalcheck/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vitalcheck", "config.yaml"), nil
}

// ApplyEnv overlays non-empty environment variables onto c.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("VITALCHECK_BACKEND"); v != "" {
		c.State.Backend = v
	}
	if v := getenv("VITALCHECK_STATE_FILE"); v != "" {
		c.State.File = v
	}
	if v := getenv("VITALCHECK_DB"); v != "" {
		c.State.DB = v
	}
	if v := getenv("VITALCHECK_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := getenv("VITALCHECK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("VITALCHECK_REPORT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Report.Enabled = b
		}
	}
	c.LLM.ApplyEnv(getenv)
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.State.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown state backend %q (want %s or %s)", c.State.Backend, BackendFile, BackendSQLite)
	}
	if c.State.History < 0 {
		return fmt.Errorf("state.history must not be negative, got %d", c.State.History)
	}
	return nil
}

// StateFilePath resolves the JSON state file location.
func (c Config) StateFilePath() (string, error) {
	if c.State.File != "" {
		return c.State.File, nil
	}
	return store.DataPath(statefile.DefaultFileName)
}

// DBPath resolves the SQLite database location.
func (c Config) DBPath() (string, error) {
	if c.State.DB != "" {
		return c.State.DB, store.EnsureDir(c.State.DB)
	}
	return store.DefaultDBPath()
}

// Rand returns the random source used for defaulted vitals. A zero Seed
// yields a randomly seeded source.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
