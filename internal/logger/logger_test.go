package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "json config", config: &Config{Level: "debug", Format: FormatJSON}},
		{name: "console config", config: &Config{Level: "info", Format: FormatConsole}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { New(tt.config) })
		})
	}
}

func TestJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: FormatJSON, Output: buf})

	log.Info().Str("file", "index.ts").Msg("write file")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "write file", entry["message"])
	assert.Equal(t, "index.ts", entry["file"])
	assert.NotEmpty(t, entry["time"])
}

func TestAutoFormatOnBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Format: FormatAuto, Output: buf})
	log.Info().Msg("hello")
	assert.True(t, json.Valid(buf.Bytes()), "non-terminal output is JSON")
}

func TestConsoleOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Format: FormatConsole, Output: buf})
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "warn", Format: FormatJSON, Output: buf})

	log.Debug().Msg("debug")
	log.Info().Msg("info")
	assert.Empty(t, buf.String())

	log.Warn().Msg("warn")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
