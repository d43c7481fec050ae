package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talldan/revdiff/internal/core/revision"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, revision.SourceSnapshots, cfg.Source)
	assert.Equal(t, "*.yaml", cfg.SnapshotGlob)
	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 8, cfg.Navigation.HintMinHeight)
	assert.Equal(t, 100, cfg.Navigation.ScrollThrottleMS)
	assert.Equal(t, 500, cfg.Navigation.ResizeDebounceMS)
}

func TestLoadMergesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
revisions_dir: /tmp/revisions
source: patches
snapshot_glob: "*.patch"
theme: gruvbox
navigation:
  hint_min_height: 12
`), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/revisions", cfg.RevisionsDir)
	assert.Equal(t, revision.SourcePatches, cfg.Source)
	assert.Equal(t, "*.patch", cfg.SnapshotGlob)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 12, cfg.Navigation.HintMinHeight)
	// Unset nested values still get defaults.
	assert.Equal(t, 100, cfg.Navigation.ScrollThrottleMS)
}

func TestLoadFlagOverridesRevisionsDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("revisions_dir: /from/config\n"), 0o644))

	cfg, err := Load(path, "/from/flag")
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.RevisionsDir)
}

func TestLoadMergesKeybindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
revisions_dir: /tmp/revisions
keybindings:
  "n":
    action: next-change
    help: jump down
`), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)

	// User binding added, defaults preserved.
	assert.Equal(t, ActionNextChange, cfg.Keybindings["n"].Action)
	assert.Equal(t, ActionPrevChange, cfg.Keybindings["K"].Action)
}

func TestLoadRejectsMissingRevisionsDir(t *testing.T) {
	_, err := Load("", "")

	assert.ErrorContains(t, err, "revisions_dir")
}

func TestValidateRejectsBadSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RevisionsDir = "/tmp/x"
	cfg.Source = "carrier-pigeon"

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RevisionsDir = "/tmp/x"
	cfg.Theme = "neon-zebra"

	assert.ErrorContains(t, cfg.Validate(), "neon-zebra")
}

func TestValidateRejectsNegativeNavigationValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RevisionsDir = "/tmp/x"
	cfg.Navigation.HintMinHeight = -1

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownKeybindingAction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RevisionsDir = "/tmp/x"
	cfg.Keybindings = map[string]Keybinding{
		"x": {Action: "explode"},
	}

	assert.Error(t, cfg.Validate())
}

func TestValidateDeepChecksDirectory(t *testing.T) {
	cfg := DefaultConfig()

	dir := t.TempDir()
	cfg.RevisionsDir = dir
	assert.NoError(t, cfg.ValidateDeep())

	cfg.RevisionsDir = filepath.Join(dir, "missing")
	assert.Error(t, cfg.ValidateDeep())

	file := filepath.Join(dir, "file.yaml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.RevisionsDir = file
	assert.Error(t, cfg.ValidateDeep())
}

func TestDefaultPathsUnderXDGHomes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	assert.Equal(t, "/tmp/cfg/revdiff/config.yaml", DefaultConfigPath())
	assert.Equal(t, "/tmp/state/revdiff/revdiff.log", DefaultLogFile())
}
