package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: db.internal\nDB_NAME: culinashare\nJWT_SECRET: from-yaml\n"), 0o600))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SMTP_HOST=smtp.example.com\n"), 0o600))
	require.NoError(t, os.Unsetenv("SMTP_HOST"))
	t.Cleanup(func() { os.Unsetenv("SMTP_HOST") })

	t.Setenv("JWT_SECRET", "from-env")

	require.NoError(t, LoadConfigFrom(path, envFile))

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "culinashare", GetConfig("DB_NAME"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, "smtp.example.com", GetConfig("SMTP_HOST"))
	assert.Equal(t, "5432", GetConfig("DB_PORT"))
	assert.Equal(t, "8080", GetAppConfig().Port)
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfigMissingFiles(t *testing.T) {
	dir := t.TempDir()

	err := LoadConfigFrom(filepath.Join(dir, "absent.yaml"), filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "CULINASHARE", GetConfig("JWT_ISSUER"))
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: [unterminated\n"), 0o600))

	assert.Error(t, LoadConfigFrom(path, ""))
}
