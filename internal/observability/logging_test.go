package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wildone/internal/config"
)

func TestNewLogger_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wildone.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("game saved")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "game saved", entry["msg"])
	assert.Equal(t, "wildone", entry["logger"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLogger_ConsoleToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wildone.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "console", Output: path})
	require.NoError(t, err)

	logger.Debug("rolled dice")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "rolled dice")
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.ErrorContains(t, err, `parsing log level "trace"`)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestNewLogger_UnwritableOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "wildone.log")
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: path})
	assert.Error(t, err)
}
