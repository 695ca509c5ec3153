package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"data_dir": "/var/lib/resume",
		"addr": ":9090",
		"settle_delay_ms": 500,
		"verbose": true,
		"s3": {"bucket": "resumes", "account_id": "abc"}
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/lib/resume", cfg.DataDir)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 500, cfg.SettleDelayMS)
	assert.Equal(t, 500*time.Millisecond, cfg.SettleDelay())
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "abc", cfg.S3.AccountID)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Addr: ":1234"}
	err := cfg.ApplyEnv(envMap(map[string]string{
		"RESUME_ADDR":            ":9999",
		"DATABASE_URL":           "postgres://localhost/resume",
		"CHROME_PATH":            "/usr/bin/chromium",
		"RESUME_SAVE_DELAY_MS":   "50",
		"RESUME_VERBOSE":         "true",
		"R2_ACCOUNT_ID":          "acct",
		"S3_BUCKET":              "bucket",
		"RESUME_SETTLE_DELAY_MS": "",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":1234", cfg.Addr, "file values win over the environment")
	assert.Equal(t, "postgres://localhost/resume", cfg.DatabaseURL)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
	assert.Equal(t, 50, cfg.SaveDelayMS)
	assert.Zero(t, cfg.SettleDelayMS)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "acct", cfg.S3.AccountID)
	assert.Equal(t, "bucket", cfg.S3.Bucket)
}

func TestApplyEnv_BadInteger(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{"RESUME_EXPORT_TIMEOUT_SECONDS": "soon"}))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESUME_EXPORT_TIMEOUT_SECONDS")
}

func TestValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "negative timeout", cfg: Config{ExportTimeoutSeconds: -1}, wantErr: "export_timeout_seconds"},
		{name: "negative settle", cfg: Config{SettleDelayMS: -5}, wantErr: "settle_delay_ms"},
		{name: "negative save delay", cfg: Config{SaveDelayMS: -5}, wantErr: "save_delay_ms"},
		{name: "bad log mode", cfg: Config{LogMode: "verbose"}, wantErr: "log_mode"},
		{name: "output dir is a file", cfg: Config{OutputDir: file}, wantErr: "not a directory"},
		{name: "missing chrome", cfg: Config{ChromePath: "/nonexistent/chrome"}, wantErr: "chrome binary not found"},
		{name: "half s3 credentials", cfg: Config{S3: S3{Bucket: "b", AccessKey: "k"}}, wantErr: "set together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Addr:        ":9090",
		SaveDelayMS: 100,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, ":9090", merged.Addr)
	assert.Equal(t, 100, merged.SaveDelayMS)
	assert.Equal(t, 250, merged.SettleDelayMS)
	assert.Equal(t, 60*time.Second, merged.ExportTimeout())
	assert.Equal(t, "resume_builder.v1", merged.StoreKey)
	assert.Equal(t, "development", merged.LogMode)
	assert.NotEmpty(t, merged.DataDir)
	assert.False(t, merged.S3.Enabled())

	// The receiver is not modified
	assert.Empty(t, cfg.LogMode)
}
