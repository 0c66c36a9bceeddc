package shipnote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".shipnote.yaml")
	raw := `repo: acme/widget
source: prs
draft: true
exclude:
  - "docs/**"
  - "**/*.md"
retries: 2
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "acme/widget", cfg.Repo)
	assert.Equal(t, SourcePRs, cfg.Source)
	assert.True(t, cfg.Draft)
	assert.False(t, cfg.Prerelease)
	assert.Equal(t, []string{"docs/**", "**/*.md"}, cfg.Exclude)
	assert.EqualValues(t, 2, cfg.Retries)
	assert.Equal(t, ".", cfg.WorkDir, "defaults survive partial files")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults plus repo", mutate: func(c *Config) { c.Repo = "acme/widget" }},
		{name: "missing repo", mutate: func(c *Config) {}, wantErr: true},
		{name: "repo without slash", mutate: func(c *Config) { c.Repo = "widget" }, wantErr: true},
		{name: "repo with extra segment", mutate: func(c *Config) { c.Repo = "acme/widget/extra" }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.Repo = "acme/widget"; c.Source = "tickets" }, wantErr: true},
		{name: "prs source", mutate: func(c *Config) { c.Repo = "acme/widget"; c.Source = SourcePRs }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
