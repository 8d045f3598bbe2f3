package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("Expected default level to be info, got %s", cfg.Level)
	}
	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup_WritesToOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: "info", Output: buf})

	logger.Info().Msg("test info message")

	if !strings.Contains(buf.String(), "test info message") {
		t.Errorf("Output %q does not contain the message", buf.String())
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: "warn", Output: buf})

	logger.Info().Msg("filtered message")
	logger.Warn().Msg("visible message")

	output := buf.String()
	if strings.Contains(output, "filtered message") {
		t.Error("Info message logged at warn level")
	}
	if !strings.Contains(output, "visible message") {
		t.Error("Warn message missing at warn level")
	}
}

func TestSetup_FileOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "test.log")

	logger := Setup(Config{Level: "info", Output: buf, File: logFile})
	logger.Info().Msg("dual output message")

	// Console receives the entry.
	if !strings.Contains(buf.String(), "dual output message") {
		t.Error("Console output missing the message")
	}

	// The file receives it too.
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(content), "dual output message") {
		t.Error("Log file missing the message")
	}
}

func TestSetup_UnopenableFileFallsBackToConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "no-such-dir", "test.log")

	logger := Setup(Config{Level: "info", Output: buf, File: logFile})
	logger.Info().Msg("console only message")

	if !strings.Contains(buf.String(), "console only message") {
		t.Error("Console output missing the message")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"ERROR", "error"},
		{"unknown", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input).String(); got != tt.expected {
				t.Errorf("parseLevel(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
