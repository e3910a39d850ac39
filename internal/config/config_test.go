package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.UI.NoticeDuration)
	assert.Equal(t, 2*time.Second, cfg.UI.DownloadDelay)
	assert.Equal(t, 4, cfg.UI.MasonryColumns)
	assert.Len(t, cfg.Site.Features, 3)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	yml := `
server:
  port: 9000
  env: production
database:
  driver: sqlite
  path: test.db
ui:
  notice_duration: 5s
  masonry_columns: 0
site:
  moments:
    - id: 1
      category: Biggest Gift
      title: Universe Gift
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.UI.NoticeDuration)
	assert.Equal(t, 4, cfg.UI.MasonryColumns)
	assert.False(t, cfg.IsDevelopment())
	require.Len(t, cfg.Site.Moments, 1)
	assert.Equal(t, "Universe Gift", cfg.Site.Moments[0].Title)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 3306, DBName: "drovic"}
	dsn := d.GetDSN()

	assert.Contains(t, dsn, "u:p@tcp(db:3306)/drovic")
	assert.Contains(t, dsn, "parseTime=true")
}
