package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "CAPTURE")
		logger.SetLevel(LevelDebug)

		logger.Info("attached %dx%d", 640, 480)

		output := buf.String()
		if !strings.Contains(output, "[INFO]") {
			t.Error("Missing log level")
		}
		if !strings.Contains(output, "[CAPTURE]") {
			t.Error("Missing prefix")
		}
		if !strings.Contains(output, "attached 640x480") {
			t.Error("Missing message")
		}
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "")
		logger.SetLevel(LevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "")
		logger.SetLevel(LevelOff)

		logger.Error("should not appear")

		if buf.Len() > 0 {
			t.Errorf("Expected no output, got %q", buf.String())
		}
	})

	t.Run("Newline", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "")
		logger.SetLevel(LevelDebug)

		logger.Info("no trailing newline")

		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("Log line should end with newline")
		}
	})
}
