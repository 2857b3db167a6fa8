package logs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zap.InfoLevel, parseLevel("info"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zap.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zap.InfoLevel, parseLevel("bogus"))
}

func TestSetup_FileCoreWrites(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "logs", "holster.log")

	cfg := DefaultConfig()
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.Filename = filename

	logger, err := Setup(cfg)
	require.NoError(t, err)

	logger.Info("file core smoke test", zap.String("key", "value"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file core smoke test")
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestSetup_LevelFiltersFileOutput(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "holster.log")

	cfg := DefaultConfig()
	cfg.Level = "error"
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.Filename = filename

	logger, err := Setup(cfg)
	require.NoError(t, err)

	logger.Info("below threshold")
	logger.Error("at threshold")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "below threshold")
	assert.Contains(t, string(data), "at threshold")
}

func TestSetup_NoOutputsYieldsNop(t *testing.T) {
	logger, err := Setup(&Config{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Equal(t, zapcore.InvalidLevel, logger.Level())
}
