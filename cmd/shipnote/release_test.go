package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shipnote/pkg/shipnote"
)

// resetReleaseFlags restores the shared flag state after a test so runs
// stay independent.
func resetReleaseFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		relConfigPath, relRepo, relSource, relWorkDir, relToken = "", "", "", "", ""
		relDraft, relPrerelease, relDryRun, relTagLocal = false, false, false, false
		relRetries = 0
		for _, name := range []string{"config", "repo", "source", "workdir", "token", "draft", "prerelease", "dry-run", "tag-local", "retries"} {
			if f := releaseCmd.Flags().Lookup(name); f != nil {
				f.Changed = false
			}
		}
	})
}

func writeConfigFile(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".shipnote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func TestBuildConfig_MergeOrder(t *testing.T) {
	resetReleaseFlags(t)
	t.Setenv("GITHUB_TOKEN", "")

	relConfigPath = writeConfigFile(t, `repo: acme/widget
source: prs
draft: true
retries: 2
exclude:
  - "docs/**"
`)

	// A flag the user actually set beats the file; everything else keeps
	// the file's values (or the defaults the file never touched).
	require.NoError(t, releaseCmd.Flags().Set("source", "commits"))

	cfg, err := buildConfig(releaseCmd)
	require.NoError(t, err)

	assert.Equal(t, shipnote.SourceCommits, cfg.Source, "changed flag wins over file")
	assert.Equal(t, "acme/widget", cfg.Repo, "file value survives untouched flags")
	assert.True(t, cfg.Draft)
	assert.EqualValues(t, 2, cfg.Retries)
	assert.Equal(t, []string{"docs/**"}, cfg.Exclude)
	assert.Equal(t, ".", cfg.WorkDir, "defaults survive fields the file omits")
}

func TestBuildConfig_Defaults(t *testing.T) {
	resetReleaseFlags(t)
	t.Setenv("GITHUB_TOKEN", "")

	// Point at an empty directory so no repo-local file is picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := buildConfig(releaseCmd)
	require.NoError(t, err)

	want := shipnote.DefaultConfig()
	want.Token = ""
	assert.Equal(t, want, cfg)
}

func TestBuildConfig_TokenFallback(t *testing.T) {
	t.Run("env var fills missing token", func(t *testing.T) {
		resetReleaseFlags(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		relConfigPath = writeConfigFile(t, "repo: acme/widget\n")

		cfg, err := buildConfig(releaseCmd)
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.Token)
	})

	t.Run("token flag beats env var", func(t *testing.T) {
		resetReleaseFlags(t)
		t.Setenv("GITHUB_TOKEN", "env-token")
		relConfigPath = writeConfigFile(t, "repo: acme/widget\n")
		require.NoError(t, releaseCmd.Flags().Set("token", "flag-token"))

		cfg, err := buildConfig(releaseCmd)
		require.NoError(t, err)
		assert.Equal(t, "flag-token", cfg.Token)
	})
}
