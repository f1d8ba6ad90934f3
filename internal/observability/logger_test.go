package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"boxwright/internal/config"
)

func initBuffer(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))
	return &buf
}

func TestInitialize(t *testing.T) {
	t.Run("console output is colorized", func(t *testing.T) {
		buf := initBuffer(t, config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "boxwright",
			Colors:      config.ColorConfig{Info: "green"},
		})
		GetLogger().Named("layout").Info("laid out", zap.Int("boxes", 3))

		out := buf.String()
		assert.Contains(t, out, colorGreen+"INFO"+colorReset)
		assert.Contains(t, out, "boxwright.layout.")
		assert.Contains(t, out, "laid out")
		assert.Contains(t, out, `"boxes": 3`)
	})

	t.Run("unknown color leaves the level plain", func(t *testing.T) {
		buf := initBuffer(t, config.LoggerConfig{Level: "info", Format: "console", Colors: config.ColorConfig{Warn: "ultraviolet"}})
		GetLogger().Warn("careful")
		assert.Contains(t, buf.String(), "\tWARN\t")
	})

	t.Run("json output", func(t *testing.T) {
		buf := initBuffer(t, config.LoggerConfig{Level: "info", Format: "json", ServiceName: "svc"})
		GetLogger().Info("hello", zap.String("k", "v"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "svc", entry["logger"])
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "v", entry["k"])
	})

	t.Run("level filters", func(t *testing.T) {
		buf := initBuffer(t, config.LoggerConfig{Level: "warn", Format: "json"})
		GetLogger().Info("dropped")
		GetLogger().Warn("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("bad level falls back to info", func(t *testing.T) {
		buf := initBuffer(t, config.LoggerConfig{Level: "loud", Format: "json"})
		GetLogger().Debug("dropped")
		GetLogger().Info("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("only the first initialization applies", func(t *testing.T) {
		first := initBuffer(t, config.LoggerConfig{Level: "info", Format: "json"})
		var second bytes.Buffer
		Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))
		GetLogger().Info("once")
		assert.Contains(t, first.String(), "once")
		assert.Empty(t, second.String())
	})
}

func TestInitialize_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxwright.log")
	buf := initBuffer(t, config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1})
	GetLogger().Info("to both")
	Sync()

	assert.Contains(t, buf.String(), "to both")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "file output is JSON: %s", line)
	assert.Contains(t, line, `"msg":"to both"`)
}

func TestGetLogger_Fallback(t *testing.T) {
	ResetForTest()
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Nil(t, globalLogger.Load(), "the fallback is not stored")
}
