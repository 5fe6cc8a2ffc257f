package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 200*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 10*time.Millisecond, cfg.Poll)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Log.Filename)
	require.Len(t, cfg.Detect.Candidates, 20)
	assert.Equal(t, "/dev/ttyACM0", cfg.Detect.Candidates[0])
	assert.Equal(t, "/dev/ttyUSB9", cfg.Detect.Candidates[19])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cabinet.yaml")
	content := `timeout: 1s
poll: 20ms
detect:
  candidates:
    - /dev/ttyACM3
log:
  level: debug
  file: /tmp/mameduino.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, 20*time.Millisecond, cfg.Poll)
	assert.Equal(t, []string{"/dev/ttyACM3"}, cfg.Detect.Candidates)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/mameduino.log", cfg.Log.Filename)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MAMEDUINO_TIMEOUT", "750ms")
	t.Setenv("MAMEDUINO_LOG_LEVEL", "info")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")

	chdir(t, t.TempDir())
	v := New()
	v.Set("poll", "1s")
	_, err = Load(v, "")
	assert.Error(t, err, "poll longer than timeout")

	v = New()
	v.Set("timeout", "0s")
	_, err = Load(v, "")
	assert.Error(t, err)
}
