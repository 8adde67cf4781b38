package logging

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"garbage", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFileLoggerText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")
	logger, err := NewFileLogger(path, FormatText, InfoLevel, false)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctx := context.Background()
	logger.Debug(ctx, "hidden by level", nil)
	logger.Info(ctx, "copied file", Fields{"file": "a.mov", "bytes": 1024})
	logger.Error(ctx, "transfer failed", errors.New("boom"), nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "hidden by level") {
		t.Error("debug entry should be filtered at info level")
	}
	for _, want := range []string{"[INFO] copied file", "file=a.mov", "bytes=1024", "[ERROR] transfer failed", `error="boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestFileLoggerJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")
	logger, err := NewFileLogger(path, FormatJSON, DebugLevel, false)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Info(context.Background(), "copied file", Fields{"file": "a.mov"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["message"] != "copied file" {
		t.Errorf("message = %v, want copied file", entry["message"])
	}
	if entry["file"] != "a.mov" {
		t.Errorf("file = %v, want a.mov", entry["file"])
	}
}

func TestWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")
	logger, err := NewFileLogger(path, FormatText, InfoLevel, false)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	child := logger.WithFields(Fields{"operation_id": "op-1"})
	child.Info(context.Background(), "scanning", Fields{"dir": "/camera"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "operation_id=op-1") || !strings.Contains(out, "dir=/camera") {
		t.Errorf("log missing inherited or call fields:\n%s", out)
	}
}
