package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	chdirTemp(t)
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := Load()

	req.NoError(err)
	req.Equal(8080, cfg.Port)
	req.Equal("release", cfg.Mode)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(60*time.Second, cfg.PongWait)
	req.Equal(32, cfg.SendBuffer)
	req.Equal([]string{"*"}, cfg.AllowedOrigins)
	req.Equal(time.Second, cfg.MessageRateInterval)
	req.Equal("kick", cfg.BackpressureAction)
	req.Equal(Default(), cfg)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	req := require.New(t)
	dir := chdirTemp(t)
	req.NoError(os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := "mode: debug\nport: 9000\nsend_buffer: 8\nallowed_origins:\n  - http://localhost:4200\n"
	req.NoError(os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644))
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("CHAT_PORT", "9100")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9100, cfg.Port)
	req.Equal(8, cfg.SendBuffer)
	req.Equal([]string{"http://localhost:4200"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsPingNotShorterThanPong(t *testing.T) {
	req := require.New(t)
	chdirTemp(t)
	t.Setenv("CONFIG_ENV", "missing")
	t.Setenv("CHAT_PING_PERIOD", "2m")

	_, err := Load()

	req.ErrorContains(err, "ping_period")
}

func TestLoad_BackpressureAction(t *testing.T) {
	t.Run("should accept drop from the environment", func(t *testing.T) {
		req := require.New(t)
		chdirTemp(t)
		t.Setenv("CONFIG_ENV", "missing")
		t.Setenv("CHAT_BACKPRESSURE_ACTION", "drop")

		cfg, err := Load()

		req.NoError(err)
		req.Equal("drop", cfg.BackpressureAction)
	})

	t.Run("should reject an unknown action", func(t *testing.T) {
		req := require.New(t)
		chdirTemp(t)
		t.Setenv("CONFIG_ENV", "missing")
		t.Setenv("CHAT_BACKPRESSURE_ACTION", "slow")

		_, err := Load()

		req.ErrorContains(err, "backpressure_action")
	})
}
