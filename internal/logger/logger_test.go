package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, zerolog.WarnLevel)

	l.Info().Msg("hidden")
	l.Warn().Str("path", "/music/a.mp3").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "/music/a.mp3", entry["path"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_ConsoleIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true, zerolog.InfoLevel)
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestInit_FileOutput(t *testing.T) {
	prev := zlog.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zlog.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "moodplayer.log")
	closer, err := Init(Config{Output: "file", Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	zlog.Info().Msg("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "caller")
}

func TestInit_FileOutputRequiresPath(t *testing.T) {
	_, err := Init(Config{Output: "file"})
	assert.Error(t, err)
}
