package mqttwire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()

	t.Run("methods do not panic", func(_ *testing.T) {
		logger.Debug("msg", nil)
		logger.Info("msg", LogFields{"k": "v"})
		logger.Warn("msg", nil)
		logger.Error("msg", nil)
	})

	t.Run("with fields returns same logger", func(t *testing.T) {
		assert.Same(t, logger, logger.WithFields(LogFields{"k": "v"}))
	})

	t.Run("level round trip", func(t *testing.T) {
		assert.Equal(t, LogLevelNone, logger.Level())
		logger.SetLevel(LogLevelDebug)
		assert.Equal(t, LogLevelDebug, logger.Level())
	})
}

func TestStdLogger(t *testing.T) {
	t.Run("debug level logs everything", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewStdLogger(buf, LogLevelDebug)

		logger.Debug("debug message", nil)
		logger.Info("info message", nil)
		logger.Warn("warn message", nil)
		logger.Error("error message", nil)

		out := buf.String()
		assert.Contains(t, out, "[DEBUG] debug message")
		assert.Contains(t, out, "[INFO] info message")
		assert.Contains(t, out, "[WARN] warn message")
		assert.Contains(t, out, "[ERROR] error message")
	})

	t.Run("warn level drops debug and info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewStdLogger(buf, LogLevelWarn)

		logger.Debug("quiet", nil)
		logger.Info("quiet", nil)
		logger.Warn("loud", nil)

		out := buf.String()
		assert.NotContains(t, out, "quiet")
		assert.Contains(t, out, "[WARN] loud")
	})

	t.Run("none level drops everything", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewStdLogger(buf, LogLevelNone)

		logger.Error("silent", nil)
		assert.Empty(t, buf.String())
	})

	t.Run("fields appear in output", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewStdLogger(buf, LogLevelInfo)

		logger.Info("connected", LogFields{LogFieldEndpoint: "tcp://localhost:1883"})
		assert.Contains(t, buf.String(), "tcp://localhost:1883")
	})

	t.Run("with fields merges into every message", func(t *testing.T) {
		buf := &bytes.Buffer{}
		base := NewStdLogger(buf, LogLevelInfo)

		scoped := base.WithFields(LogFields{LogFieldClientID: "bench-1"})
		scoped.Info("publish", LogFields{LogFieldTopic: "a/b"})

		out := buf.String()
		assert.Contains(t, out, "bench-1")
		assert.Contains(t, out, "a/b")

		// The base logger is unchanged.
		buf.Reset()
		base.Info("plain", nil)
		assert.NotContains(t, buf.String(), "bench-1")
	})

	t.Run("set level takes effect", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewStdLogger(buf, LogLevelError)

		logger.Info("hidden", nil)
		assert.Empty(t, buf.String())

		logger.SetLevel(LogLevelInfo)
		logger.Info("shown", nil)
		assert.True(t, strings.Contains(buf.String(), "[INFO] shown"))
	})
}
