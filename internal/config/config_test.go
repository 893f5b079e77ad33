package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(writeConfig(t, "env: development\n"))
		require.NoError(t, err)
		require.Equal(t, 3000, cfg.Port)
		require.True(t, cfg.IsDev())
		require.Contains(t, cfg.DSNValue(), "tracknest")
	})

	t.Run("explicit dsn wins over database section", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(writeConfig(t, "dsn: user:pass@tcp(db:3306)/custom\n"))
		require.NoError(t, err)
		require.Equal(t, "user:pass@tcp(db:3306)/custom", cfg.DSNValue())
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		_, err := Load(writeConfig(t, "prot: 8080\n"))
		require.Error(t, err)
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		t.Parallel()
		_, err := Load(writeConfig(t, "port: 99999\n"))
		require.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("production disables dev mode", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load(writeConfig(t, "env: production\n"))
		require.NoError(t, err)
		require.False(t, cfg.IsDev())
	})
}
