package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodePeacock/pdf-parser/internal/reference"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"skills_url": "https://example.com/skills",
		"reference_cache_dir": "cache",
		"fetch_timeout": "5s",
		"designation_poll_interval": 0.5,
		"designation_max_attempts": 3,
		"log_format": "json"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/skills", cfg.SkillsURL)
	assert.Equal(t, "cache", cfg.ReferenceCacheDir)
	assert.Equal(t, Duration(5*time.Second), cfg.FetchTimeout)
	assert.Equal(t, Duration(500*time.Millisecond), cfg.DesignationPollInterval)
	assert.Equal(t, 3, cfg.DesignationMaxAttempts)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_BadDuration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"fetch_timeout": "soon"}`), 0644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
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
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultSkillsURL, cfg.SkillsURL)
	assert.Equal(t, DefaultDesignationsURL, cfg.DesignationsURL)
	assert.Equal(t, Duration(30*time.Second), cfg.FetchTimeout)
	assert.Equal(t, Duration(2*time.Second), cfg.DesignationPollInterval)
	assert.Equal(t, 30, cfg.DesignationMaxAttempts)
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{SkillsURL: "https://file.example/skills"}
	err := cfg.ApplyEnv(envMap(map[string]string{
		"SKILLS_URL":                "https://env.example/skills",
		"REFERENCE_CACHE_DIR":       "/var/cache/refs",
		"FETCH_TIMEOUT":             "10s",
		"DESIGNATION_POLL_INTERVAL": "250ms",
		"DESIGNATION_MAX_ATTEMPTS":  "4",
		"DATABASE_URL":              "postgres://localhost/profiles",
		"LOG_LEVEL":                 "debug",
		"DESIGNATIONS_URL":          "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/skills", cfg.SkillsURL)
	assert.Empty(t, cfg.DesignationsURL)
	assert.Equal(t, "/var/cache/refs", cfg.ReferenceCacheDir)
	assert.Equal(t, Duration(10*time.Second), cfg.FetchTimeout)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.DesignationPollInterval)
	assert.Equal(t, 4, cfg.DesignationMaxAttempts)
	assert.Equal(t, "postgres://localhost/profiles", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(envMap(map[string]string{
		"FETCH_TIMEOUT":            "thirty",
		"DESIGNATION_MAX_ATTEMPTS": "many",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
	assert.Contains(t, err.Error(), "DESIGNATION_MAX_ATTEMPTS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad url", func(c *Config) { c.SkillsURL = "not a url" }, "SkillsURL"},
		{"zero attempts", func(c *Config) { c.DesignationMaxAttempts = 0 }, "DesignationMaxAttempts"},
		{"negative timeout", func(c *Config) { c.FetchTimeout = Duration(-time.Second) }, "FetchTimeout"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"port range", func(c *Config) { c.Port = 70000 }, "Port"},
		{"missing aliases", func(c *Config) { c.AliasesPath = "/nonexistent/aliases.yaml" }, "aliases file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
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
		SkillsURL:              "https://custom.example/skills",
		DesignationMaxAttempts: 5,
	}

	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "https://custom.example/skills", merged.SkillsURL)
	assert.Equal(t, DefaultDesignationsURL, merged.DesignationsURL)
	assert.Equal(t, 5, merged.DesignationMaxAttempts)
	assert.Equal(t, Duration(30*time.Second), merged.FetchTimeout)
	assert.Equal(t, "text", merged.LogFormat)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{SkillsURL: "https://custom.example/skills"}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "https://custom.example/skills", merged.SkillsURL)
	assert.Empty(t, merged.DesignationsURL)
	assert.Zero(t, merged.FetchTimeout)
}

func TestLoad_FileEnvAndDefaults(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"designation_max_attempts": 7, "log_level": "warn"}`), 0644))
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.DesignationMaxAttempts)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, DefaultSkillsURL, cfg.SkillsURL)
}

func TestSources(t *testing.T) {
	cfg := Default()
	cfg.ReferenceCacheDir = "/tmp/refs"

	skills := cfg.SkillsSource()
	assert.Equal(t, reference.Skills, skills.Kind)
	assert.Equal(t, DefaultSkillsURL, skills.URL)
	assert.Equal(t, filepath.Join("/tmp/refs", "skills-collection.json"), skills.CachePath)

	designations := cfg.DesignationsSource()
	assert.Equal(t, reference.Designations, designations.Kind)
	assert.Equal(t, filepath.Join("/tmp/refs", "designations-collection.json"), designations.CachePath)

	policy := cfg.RetryPolicy()
	assert.Equal(t, 2*time.Second, policy.Delay)
	assert.Equal(t, 30, policy.MaxAttempts)

	assert.Equal(t, 30*time.Second, cfg.FetchOptions().Timeout)
}
