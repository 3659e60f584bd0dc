package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartinfo/internal/config"
)

func reset(t *testing.T) {
	t.Helper()
	prev := LoggerInstance
	t.Cleanup(func() { LoggerInstance = prev })
}

func TestInitLoggerLevels(t *testing.T) {
	reset(t)

	lm, err := InitLogger(&config.LogConfig{Level: "debug", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lm.GetLogger().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, lm.GetLogger().Formatter)
	assert.Same(t, lm, LoggerInstance)
}

func TestInitLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	reset(t)

	lm, err := InitLogger(&config.LogConfig{Level: "loud", Format: "text"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lm.GetLogger().GetLevel())
}

func TestInitLoggerRejectsBadConfig(t *testing.T) {
	reset(t)

	_, err := InitLogger(nil)
	assert.Error(t, err)

	_, err = InitLogger(&config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)

	_, err = InitLogger(&config.LogConfig{Level: "info", Output: "file"})
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	reset(t)

	path := filepath.Join(t.TempDir(), "logs", "smartinfo.log")
	_, err := InitLogger(&config.LogConfig{Level: "info", Format: "text", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)

	WithField("device", "/dev/sda").Info("queried")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "device=/dev/sda")
	assert.Contains(t, string(data), "queried")
}

func TestHelpersWithoutInit(t *testing.T) {
	reset(t)
	LoggerInstance = nil

	assert.NotPanics(t, func() {
		Debugf("x %d", 1)
		Warnf("y")
		WithField("k", "v").Info("z")
	})
}

func TestHelpersWriteAtTheirLevel(t *testing.T) {
	reset(t)

	path := filepath.Join(t.TempDir(), "smartinfo.log")
	_, err := InitLogger(&config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	Debugf("hidden %d", 1)
	Infof("querying %s", "/dev/sda")
	Warnf("no devices")
	Errorf("exit %d", 3)
	WithFields(logrus.Fields{"device": "/dev/sda", "status": 4}).Info("non-zero")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"querying /dev/sda"`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, `"message":"exit 3"`)
	assert.Contains(t, out, `"status":4`)
}
