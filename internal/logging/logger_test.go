package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/allbin/mameduino/internal/config"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "warn", Format: "console"}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "DEBUG", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("write frame", zap.String("frame", "52 01 0A"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "write frame", entry["msg"])
	assert.Equal(t, "52 01 0A", entry["frame"])
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mameduino.log")
	cfg := config.LoggingConfig{
		Level:  "info",
		Format: "console",
		LogFileConfig: config.LogFileConfig{
			Filename:   path,
			MaxSizeMB:  1,
			MaxBackups: 1,
		},
	}

	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	require.NoError(t, err)
	logger.Info("device found", zap.String("port", "/dev/ttyACM0"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "device found")
	assert.Contains(t, buf.String(), "device found")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}
