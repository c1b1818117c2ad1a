// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/layoutcore/internal/config"
)

// -- Test Helper Functions --

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) Sync() error { return nil }

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// initForTest resets the global logger and initializes it against a buffer.
func initForTest(t *testing.T, cfg config.LoggerConfig) *syncBuffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)
	out := &syncBuffer{}
	Initialize(cfg, out)
	return out
}

// -- Test Cases --

func TestInitialize(t *testing.T) {
	t.Run("should initialize console logger with colors", func(t *testing.T) {
		out := initForTest(t, config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "TestService",
			Colors:      config.ColorConfig{Info: "green"},
		})
		GetLogger().Named("layout").Info("This is a test message.")
		Sync()

		output := out.String()
		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "This is a test message.")
		assert.Contains(t, output, "TestService.layout.", "component names carry a dot suffix")
		assert.Contains(t, output, colorGreen+"INFO"+colorReset, "Info level should be colorized green")
	})

	t.Run("uncolored levels stay plain", func(t *testing.T) {
		out := initForTest(t, config.LoggerConfig{Level: "debug", Format: "console"})
		GetLogger().Warn("plain")
		assert.Contains(t, out.String(), "WARN")
		assert.NotContains(t, out.String(), colorReset)
	})

	t.Run("should initialize json logger", func(t *testing.T) {
		out := initForTest(t, config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "JSONTest",
		})
		GetLogger().Warn("This is a JSON message.", zap.String("key", "value"))
		Sync()

		var logEntry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out.String()), &logEntry), "Log output should be valid JSON")

		assert.Equal(t, "WARN", logEntry["level"])
		assert.Equal(t, "JSONTest", logEntry["logger"])
		assert.Equal(t, "This is a JSON message.", logEntry["msg"])
		assert.Equal(t, "value", logEntry["key"])
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		out := initForTest(t, config.LoggerConfig{Level: "verbose", Format: "json"})
		GetLogger().Debug("hidden")
		GetLogger().Info("shown")
		assert.NotContains(t, out.String(), "hidden")
		assert.Contains(t, out.String(), "shown")
	})

	t.Run("should write to a log file if configured", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "layoutcore.log")
		initForTest(t, config.LoggerConfig{
			Level:   "debug",
			Format:  "console",
			LogFile: logFile,
			MaxSize: 1, // 1 MB
		})
		GetLogger().Error("This should go to the file.")
		Sync()

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"msg":"This should go to the file."`, "file output is JSON")
	})

	t.Run("should only initialize once", func(t *testing.T) {
		out := initForTest(t, config.LoggerConfig{Level: "info", ServiceName: "First"})
		logger1 := GetLogger()

		Initialize(config.LoggerConfig{Level: "debug", ServiceName: "Second"}, zapcore.AddSync(&bytes.Buffer{}))
		logger2 := GetLogger()

		assert.Same(t, logger1, logger2)
		logger2.Info("test")
		Sync()

		assert.True(t, strings.Contains(out.String(), "First"))
		assert.False(t, strings.Contains(out.String(), "Second"))
	})

	t.Run("defaults from configuration", func(t *testing.T) {
		cfg := config.NewDefaultConfig().Logger()
		out := initForTest(t, cfg)
		GetLogger().Info("ready")
		assert.Contains(t, out.String(), "layoutcore.")
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("should return a fallback logger if not initialized", func(t *testing.T) {
		ResetForTest()
		logger := GetLogger()
		require.NotNil(t, logger)
		assert.Nil(t, globalLogger.Load(), "the fallback is never stored")
		assert.False(t, IsInitialized())
	})

	t.Run("should return the global logger after initialization", func(t *testing.T) {
		initForTest(t, config.LoggerConfig{Level: "info", ServiceName: "GlobalTest"})
		assert.Same(t, globalLogger.Load(), GetLogger())
		assert.True(t, IsInitialized())
	})
}
