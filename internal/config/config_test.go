package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tlp/modi"
)

var envVars = []string{
	"TLP_PORT", "TLP_METRICS_PORT", "TLP_STORE_DRIVER", "TLP_STORE_DSN",
	"TLP_NATS_URL", "TLP_NATS_SUBJECT", "TLP_MAX_ITERATIONS", "TLP_EPSILON",
	"TLP_DEGENERATE_POLICY", "TLP_COMPLETE_BASIS", "TLP_LOG_LEVEL", "TLP_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8700, cfg.Server.Port)
	assert.Equal(t, 8701, cfg.Server.MetricsPort)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "tlp.solve.request", cfg.NATS.Subject)
	assert.Equal(t, 1000, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-10, cfg.Solver.Epsilon)
	assert.True(t, cfg.Solver.CompleteBasis)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	policy, err := cfg.Solver.Degenerate()
	require.NoError(t, err)
	assert.Equal(t, modi.DegenerateZeroStep, policy)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "tlp.yaml")
	data := []byte(`
server:
  port: 9000
store:
  driver: sqlite
  dsn: /tmp/tlp.db
solver:
  max_iterations: 50
  degenerate_policy: smallest-positive
  complete_basis: false
logging:
  level: debug
  format: text
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 8701, cfg.Server.MetricsPort, "untouched keys keep defaults")
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.False(t, cfg.Solver.CompleteBasis)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())

	policy, err := cfg.Solver.Degenerate()
	require.NoError(t, err)
	assert.Equal(t, modi.DegenerateSmallestPositive, policy)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TLP_PORT", "9100")
	t.Setenv("TLP_METRICS_PORT", "not-a-number")
	t.Setenv("TLP_STORE_DRIVER", "postgres")
	t.Setenv("TLP_STORE_DSN", "postgres://localhost/tlp")
	t.Setenv("TLP_NATS_URL", "nats://localhost:4222")
	t.Setenv("TLP_MAX_ITERATIONS", "20")
	t.Setenv("TLP_EPSILON", "1e-8")
	t.Setenv("TLP_COMPLETE_BASIS", "false")
	t.Setenv("TLP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 8701, cfg.Server.MetricsPort, "bad numbers are ignored")
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/tlp", cfg.Store.DSN)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 20, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-8, cfg.Solver.Epsilon)
	assert.False(t, cfg.Solver.CompleteBasis)
	assert.Equal(t, slog.LevelWarn, cfg.Logging.SlogLevel())
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [1"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("TLP_STORE_DRIVER", "sqlite")
	_, err = Load("")
	assert.ErrorContains(t, err, "requires a dsn")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Store.Driver = "mongo"
	assert.ErrorContains(t, cfg.Validate(), "unknown store driver")

	cfg.Store.Driver = "memory"
	cfg.Solver.DegeneratePolicy = "random"
	assert.ErrorContains(t, cfg.Validate(), "unknown degenerate policy")

	cfg.Solver.DegeneratePolicy = ""
	cfg.Logging.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "unknown log format")
}

func TestSlogLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LoggingConfig{Level: "chatty"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LoggingConfig{Level: "ERROR"}.SlogLevel())
}
