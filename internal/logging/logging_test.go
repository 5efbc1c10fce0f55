package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Options{
		Level:  slog.LevelDebug,
		Output: &buf,
		JSON:   true,
	})
	l.Debug("hello", "path", "/a")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json.Unmarshal(%q): %v", buf.String(), err)
	}
	if got, want := rec["msg"], "hello"; got != want {
		t.Errorf("msg = %v, want %v", got, want)
	}
	if got, want := rec["path"], "/a"; got != want {
		t.Errorf("path = %v, want %v", got, want)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Options{Level: slog.LevelWarn, Output: &buf})
	l.Info("quiet")
	l.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info record logged at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=loud") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewLoggerNil(t *testing.T) {
	if NewLogger(nil) == nil {
		t.Fatal("NewLogger(nil) = nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"", slog.LevelInfo, true},
		{"debug", slog.LevelDebug, true},
		{"WARN", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"info+2", slog.LevelInfo + 2, true},
		{"loud", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) err = %v, want ok %v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		json bool
		ok   bool
	}{
		{"", false, true},
		{"text", false, true},
		{"JSON", true, true},
		{"xml", false, false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseFormat(%q) err = %v, want ok %v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.json {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.json)
		}
	}
}
