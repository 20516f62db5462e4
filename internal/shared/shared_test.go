package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Errorf("expected unique IDs, got %s twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid uuid, got %s: %v", a, err)
	}
}

func TestConfigureLogger(t *testing.T) {
	t.Run("json format with level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		if err := ConfigureLogger(logger, LogConfig{Level: "warn", Format: "json"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		logger.Info("hidden")
		logger.Warn("visible", "key", "value")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("expected info message to be filtered, got %s", out)
		}
		if !strings.Contains(out, `"msg":"visible"`) {
			t.Errorf("expected JSON warn entry, got %s", out)
		}
		if logger.GetLevel() != log.WarnLevel {
			t.Errorf("expected warn level, got %v", logger.GetLevel())
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := ConfigureLogger(NewLogger(nil), LogConfig{Level: "loud"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		err := ConfigureLogger(NewLogger(nil), LogConfig{Format: "xml"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
