package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tlp/modi"
	"github.com/katalvlaran/tlp/transport"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	NATS    NATSConfig    `yaml:"nats"`
	Solver  SolverConfig  `yaml:"solver"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
	// MaxBodyBytes caps the size of a problem upload.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// StoreConfig selects the persistence backend: memory, sqlite or postgres.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// NATSConfig enables the request/reply endpoint when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type SolverConfig struct {
	MaxIterations    int     `yaml:"max_iterations"`
	Epsilon          float64 `yaml:"epsilon"`
	DegeneratePolicy string  `yaml:"degenerate_policy"`
	CompleteBasis    bool    `yaml:"complete_basis"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Degenerate maps DegeneratePolicy to the optimizer setting.
func (c SolverConfig) Degenerate() (modi.DegeneratePolicy, error) {
	switch strings.ToLower(c.DegeneratePolicy) {
	case "", modi.DegenerateZeroStep.String():
		return modi.DegenerateZeroStep, nil
	case modi.DegenerateSmallestPositive.String():
		return modi.DegenerateSmallestPositive, nil
	default:
		return 0, fmt.Errorf("unknown degenerate policy %q", c.DegeneratePolicy)
	}
}

// SlogLevel parses Level; unknown values fall back to info.
func (c LoggingConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8700,
			MetricsPort:  8701,
			MaxBodyBytes: 1 << 20,
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		NATS: NATSConfig{
			Subject: "tlp.solve.request",
		},
		Solver: SolverConfig{
			MaxIterations:    modi.DefaultMaxIterations,
			Epsilon:          transport.Epsilon,
			DegeneratePolicy: modi.DegenerateZeroStep.String(),
			CompleteBasis:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the daemon cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store driver %s requires a dsn", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := c.Solver.Degenerate(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TLP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TLP_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TLP_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("TLP_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("TLP_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("TLP_NATS_SUBJECT"); v != "" {
		cfg.NATS.Subject = v
	}
	if v := os.Getenv("TLP_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.MaxIterations = n
		}
	}
	if v := os.Getenv("TLP_EPSILON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solver.Epsilon = f
		}
	}
	if v := os.Getenv("TLP_DEGENERATE_POLICY"); v != "" {
		cfg.Solver.DegeneratePolicy = v
	}
	if v := os.Getenv("TLP_COMPLETE_BASIS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Solver.CompleteBasis = b
		}
	}
	if v := os.Getenv("TLP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TLP_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
