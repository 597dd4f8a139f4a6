package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: text
engine:
  maxConcurrentBranches: 4
  invokeTimeout: 30s
branch:
  keywords: [critical, fatal]
remotes:
  - name: RepairPlannerAgent
    url: http://localhost:8080
redis:
  address: localhost:6379
  db: 2
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Engine.MaxConcurrentBranches)
	assert.Equal(t, 30*time.Second, cfg.Engine.InvokeTimeout.Std())
	assert.Equal(t, []string{"critical", "fatal"}, cfg.Branch.Keywords)
	require.Len(t, cfg.Remotes, 1)
	assert.Equal(t, "http://localhost:8080", cfg.Remotes[0].URL)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadAppliesKeywordDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: warn\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultBranchKeywords, cfg.Branch.Keywords)
	assert.Nil(t, cfg.Redis)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := writeConfig(t, "engine:\n  invokeTimeout: nonsense\n")

	_, err := Load(path)

	assert.ErrorContains(t, err, "invalid duration")
}

func TestDefaultIsolatedKeywordSlice(t *testing.T) {
	cfg := Default()
	cfg.Branch.Keywords[0] = "mutated"

	assert.Equal(t, "critical", DefaultBranchKeywords[0])
}
