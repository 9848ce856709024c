package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
server:
  webhook_secret: from-file
db:
  connection_string: portal.db
ai:
  key: file-key
storage:
  resume_dir: ./resumes
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Config_DefaultsAreApplied(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, LevelInfo, cfg.Logger.LogLevel)
	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.Equal(t, "X-User-Id", cfg.Server.IdentityHeader)
	assert.Equal(t, DriverSqlite, cfg.DB.Driver)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 10*time.Second, cfg.Resume.PageTimeout)
	assert.Equal(t, 30*time.Second, cfg.Resume.LoadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CompaniesTTL)
	assert.Equal(t, 90, cfg.Maintenance.NotificationRetentionDays)
	assert.False(t, cfg.Telegram.Enabled())
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("WEBHOOK_SECRET", "overrideSecret")
	t.Setenv("AI_KEY", "overrideKey")
	t.Setenv("AI_MODEL", "super_duper_model")
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("DB_CONNECTION_STRING", "host=db user=portal")
	t.Setenv("RESUME_PAGE_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", string(LevelDebug))

	cfg, err := loadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "overrideSecret", cfg.Server.WebhookSecret)
	assert.Equal(t, "overrideKey", cfg.AI.Key)
	assert.Equal(t, "super_duper_model", cfg.AI.Model)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "host=db user=portal", cfg.DB.ConnectionString)
	assert.Equal(t, 3*time.Second, cfg.Resume.PageTimeout)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}

func Test_Config_MissingSecretsFailValidation(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `
db:
  connection_string: portal.db
storage:
  resume_dir: ./resumes
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook_secret")
	assert.Contains(t, err.Error(), "key")
}

func Test_Config_VertexNeedsProjectAndRegion(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `
server:
  webhook_secret: from-file
db:
  connection_string: portal.db
ai:
  provider: vertex
storage:
  resume_dir: ./resumes
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_id")
	assert.Contains(t, err.Error(), "region")
}
