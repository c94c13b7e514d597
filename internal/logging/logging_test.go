package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"loud", log.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLogFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseLogFormatter(tt.in); got != tt.want {
			t.Errorf("ParseLogFormatter(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFromConfigFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "warn", "text", false, false)

	logger.Info("hidden")
	logger.Warn("shown", "path", "tasks.json")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "tasks.json") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "tsk") {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "debug", "json", false, false)
	logger.Debug("saved task file", "tasks", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["msg"] != "saved task file" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["tasks"] != float64(3) {
		t.Errorf("tasks: got %v", entry["tasks"])
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing to see")
}
