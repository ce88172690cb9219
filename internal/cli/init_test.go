package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/internal/config"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func clearConnectionEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSSLMODE",
		"PGLOAD_CONNECTION_STRING", "DATABASE_URL", "AWS_REGION",
		"AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET",
	} {
		t.Setenv(name, "")
	}
}

func TestBuildInitConfig(t *testing.T) {
	clearConnectionEnv(t)

	cfg, err := buildInitConfig(initFlagValues{
		conn:      connectionFlags{host: "db.internal", username: "loader", database: "Health_DataBase"},
		directory: "exports",
		txMode:    "atomic",
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Connection.Host)
	assert.Equal(t, 5432, cfg.Connection.Port)
	assert.Equal(t, "loader", cfg.Connection.Username)
	assert.Equal(t, "Health_DataBase", cfg.Connection.Database)
	assert.Equal(t, "", cfg.Connection.AuthMethod)
	assert.Equal(t, "exports", cfg.Directory)
	assert.Equal(t, "atomic", cfg.Transaction)
	assert.Equal(t, pgload.DefaultMappings(), cfg.Mappings)
}

func TestBuildInitConfig_InvalidTxMode(t *testing.T) {
	clearConnectionEnv(t)

	_, err := buildInitConfig(initFlagValues{txMode: "sometimes"})
	require.Error(t, err)
	assert.ErrorIs(t, err, pgload.ErrInvalidConfig)
}

func TestWriteProjectConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	cfg := &config.ProjectConfig{
		Connection:  config.ConnectionConfig{Host: "localhost", Port: 5432, Database: "Health_DataBase"},
		Directory:   "data/outputs",
		Transaction: "single",
		Mappings:    pgload.DefaultMappings(),
	}

	path, err := writeProjectConfig(dir, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.ConfigFileName), path)

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Health_DataBase", loaded.Connection.Database)
	assert.Equal(t, filepath.Join(dir, "data/outputs"), loaded.Directory)
	assert.Len(t, loaded.Mappings, 10)
}

func TestWriteProjectConfig_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("directory: keep\n"), 0644))

	_, err := writeProjectConfig(dir, &config.ProjectConfig{}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, pgload.ErrInvalidConfig)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "directory: keep\n", string(data))

	_, err = writeProjectConfig(dir, &config.ProjectConfig{Directory: "new"}, true)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "directory: new")
}
