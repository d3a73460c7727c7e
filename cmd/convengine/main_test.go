package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/convengine/internal/config"
)

var smallWorkload = []string{
	"-backend", "host", "-log", "error",
	"-width", "37", "-height", "23", "-window", "3", "-stride", "2", "-padding", "1",
	"-reduce", "5000", "-group-width", "16", "-iterations", "2", "-workers", "2",
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Equal(t, "convengine v"+config.Version+"\n", out.String())
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))
	assert.Contains(t, out.String(), "verify")

	assert.Error(t, run([]string{"train"}, &out))
}

func TestRun_Verify(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(append([]string{"verify"}, smallWorkload...), &out))
	assert.Contains(t, out.String(), "All operators agree.")
	for _, o := range ops {
		assert.Contains(t, out.String(), o.name)
	}
}

func TestRun_Bench(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(append([]string{"bench"}, smallWorkload...), &out))
	assert.Contains(t, out.String(), "speedup=")
	assert.Contains(t, out.String(), "accel(host(2 workers))")
}

func TestParseFlags_ConfigThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: host\nseed: 9\nworkload:\n  input_width: 50\n  input_height: 40\n"), 0o600))

	cfg, logger, err := parseFlags("verify", []string{"-config", path, "-height", "30", "-log", "warn"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.Equal(t, config.BackendHost, cfg.Backend)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 50, cfg.Workload.InputWidth, "file value kept")
	assert.Equal(t, 30, cfg.Workload.InputHeight, "flag overrides file")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, _, err := parseFlags("bench", []string{"-width", "2", "-window", "5"})
	assert.Error(t, err)

	_, _, err = parseFlags("bench", []string{"-backend", "tpu"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestOpenAccelerator_AutoFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendAuto
	_, logger, err := parseFlags("verify", []string{"-log", "error"})
	require.NoError(t, err)

	b, release, err := openAccelerator(cfg, logger)
	require.NoError(t, err)
	defer release()
	assert.Contains(t, b.Name(), "accel(")
}
