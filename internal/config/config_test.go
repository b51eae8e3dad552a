package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/music/library/albums",
			expected: filepath.Join(home, "music", "library", "albums"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde with slash",
			input:    "~/",
			expected: filepath.Join(home, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	// Should have at least one path
	if len(paths) == 0 {
		t.Error("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	// If we have home dir, first path should be ~/.config/moodplayer/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "moodplayer", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

// isolate points HOME and the XDG directories at a temp dir so that no user
// config is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.DefaultSource)
	assert.InDelta(t, 80, cfg.Playback.Volume, 1e-9)
	assert.False(t, cfg.Playback.Shuffle)
	assert.False(t, cfg.Playback.Repeat)
	assert.Equal(t, 1000, cfg.Playback.SampleIntervalMs)
	assert.Equal(t, "file", cfg.Log.Output)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.True(t, cfg.State.Enabled)
	assert.True(t, cfg.MPRIS.Enabled)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, filepath.Join(dir, "state", "moodplayer", "moodplayer.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, "data", "moodplayer", "state.db"), cfg.State.Path)
}

func TestLoad_FilePriority(t *testing.T) {
	dir := isolate(t)

	writeConfig(t, filepath.Join(dir, ".config", "moodplayer", "config.toml"), `
default_source = "~/music"

[playback]
volume = 40
shuffle = true
`)
	writeConfig(t, filepath.Join(dir, "config.toml"), `
[playback]
volume = 55
`)
	explicit := filepath.Join(dir, "custom.toml")
	writeConfig(t, explicit, `
[playback]
repeat = true

[state]
enabled = false
path = "/tmp/moodplayer-test.db"

[mpris]
enabled = false
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "music"), cfg.DefaultSource)
	assert.InDelta(t, 55, cfg.Playback.Volume, 1e-9)
	assert.True(t, cfg.Playback.Shuffle)
	assert.True(t, cfg.Playback.Repeat)
	assert.False(t, cfg.State.Enabled)
	assert.Equal(t, "/tmp/moodplayer-test.db", cfg.State.Path)
	assert.False(t, cfg.MPRIS.Enabled)
}

func TestLoad_ExplicitZeroVolumeKept(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "zero.toml")
	writeConfig(t, path, "[playback]\nvolume = 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0, cfg.Playback.Volume, 1e-9)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"volume above range", "[playback]\nvolume = 120\n"},
		{"interval too short", "[playback]\nsample_interval_ms = 10\n"},
		{"unknown log level", "[log]\nlevel = \"chatty\"\n"},
		{"unknown log output", "[log]\noutput = \"syslog\"\n"},
		{"malformed toml", "[playback\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "bad.toml")
			writeConfig(t, path, tt.content)

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
