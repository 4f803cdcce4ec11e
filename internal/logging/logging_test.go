package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{name: "Debug level JSON format", level: LevelDebug, format: FormatJSON},
		{name: "Info level JSON format", level: LevelInfo, format: FormatJSON},
		{name: "Warn level JSON format", level: LevelWarn, format: FormatJSON},
		{name: "Error level JSON format", level: LevelError, format: FormatJSON},
		{name: "Info level Text format", level: LevelInfo, format: FormatText},
		{name: "Default level (invalid value)", level: Level(999), format: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if GetLogger() == nil {
				t.Error("expected logger to be initialized, got nil")
			}
		})
	}

	InitLogger(LevelInfo, FormatText)
}

func TestGetLoggerReturnsInitializedDefault(t *testing.T) {
	if GetLogger() == nil {
		t.Error("expected init() to have set a default logger")
	}
}

func TestSlogJSONHandlerOutputContainsMessageAndAttribute(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(handler)
	logger.Info("test message", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "test message") {
		t.Errorf("expected output to contain message, got %q", out)
	}
	if !strings.Contains(out, "\"key\":\"value\"") {
		t.Errorf("expected output to contain custom attribute, got %q", out)
	}
}

func TestLevelConstantsOrdered(t *testing.T) {
	if LevelDebug >= LevelInfo {
		t.Error("expected LevelDebug < LevelInfo")
	}
	if LevelInfo >= LevelWarn {
		t.Error("expected LevelInfo < LevelWarn")
	}
	if LevelWarn >= LevelError {
		t.Error("expected LevelWarn < LevelError")
	}
}

func TestFormatConstantsDistinct(t *testing.T) {
	if FormatJSON == FormatText {
		t.Error("expected FormatJSON != FormatText")
	}
}
