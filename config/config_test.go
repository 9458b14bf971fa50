package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/spectral-transmission/source"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	p := writeConfig(t, "spectrans.yaml", `
source:
  driver: s3
  s3:
    bucket: spectra
    region: eu-west-1
    endpoint: http://localhost:9000
    path_style: true
top_dyes: 5
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, source.DriverS3, cfg.Source.Driver)
	assert.Equal(t, "spectra", cfg.Source.S3.Bucket)
	assert.True(t, cfg.Source.S3.PathStyle)
	assert.Equal(t, 5, cfg.TopDyes)
	assert.Equal(t, ".", cfg.Source.Dir, "defaults survive")
	require.NoError(t, cfg.Validate())

	sc := cfg.SourceConfig()
	assert.Equal(t, "eu-west-1", sc.S3.Region)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	p := writeConfig(t, "spectrans.json", `{"source":{"driver":"sqlite","sqlite":{"path":"/tmp/s.db"}},"watch":false}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/s.db", cfg.SourceConfig().SQLite)
	assert.Equal(t, 3, cfg.TopDyes)
	require.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "bad.json", "{"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "source: [1, 2"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()
	env := map[string]string{
		"SPECTRANS_SOURCE_DRIVER": "http",
		"SPECTRANS_URL":           "https://example.org/spectra/",
		"SPECTRANS_TOP_DYES":      "7",
		"SPECTRANS_S3_PATH_STYLE": "true",
		"SPECTRANS_DIR":           "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, source.DriverHTTP, cfg.Source.Driver)
	assert.Equal(t, "https://example.org/spectra/", cfg.Source.URL)
	assert.Equal(t, 7, cfg.TopDyes)
	assert.True(t, cfg.Source.S3.PathStyle)
	assert.Equal(t, ".", cfg.Source.Dir)
	require.NoError(t, cfg.Validate())

	env["SPECTRANS_TOP_DYES"] = "many"
	require.Error(t, cfg.ApplyEnv(lookup))
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Source.Driver = "ftp"
	require.ErrorIs(t, cfg.Validate(), ErrUnknownDriver)

	for _, driver := range []string{source.DriverHTTP, source.DriverS3, source.DriverSQLite} {
		cfg := Default()
		cfg.Source.Driver = driver
		assert.Error(t, cfg.Validate(), driver)
	}

	cfg = Default()
	cfg.TopDyes = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Watch = true
	assert.NoError(t, cfg.Validate())
	cfg.Source.Driver = source.DriverHTTP
	cfg.Source.URL = "http://x"
	assert.Error(t, cfg.Validate())
}
