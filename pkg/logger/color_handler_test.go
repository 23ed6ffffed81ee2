package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestColorHandler(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		message  string
		wantCode string
	}{
		{
			name:     "error message has red color",
			level:    slog.LevelError,
			message:  "test error",
			wantCode: colorRed,
		},
		{
			name:     "warning message has yellow color",
			level:    slog.LevelWarn,
			message:  "test warning",
			wantCode: colorYellow,
		},
		{
			name:     "info message has no color",
			level:    slog.LevelInfo,
			message:  "upserting travellers",
			wantCode: "",
		},
		{
			name:     "step completion has green color",
			level:    slog.LevelInfo,
			message:  "traveller upserts complete",
			wantCode: colorGreen,
		},
		{
			name:     "run completion has green color",
			level:    slog.LevelInfo,
			message:  "Graph load completed",
			wantCode: colorGreen,
		},
		{
			name:     "debug message has no color",
			level:    slog.LevelDebug,
			message:  "test debug",
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, slog.LevelDebug)

			switch tt.level {
			case slog.LevelError:
				logger.Error(tt.message)
			case slog.LevelWarn:
				logger.Warn(tt.message)
			case slog.LevelInfo:
				logger.Info(tt.message)
			case slog.LevelDebug:
				logger.Debug(tt.message)
			}

			output := buf.String()

			if !strings.Contains(output, tt.message) {
				t.Errorf("output does not contain message %q, got: %s", tt.message, output)
			}

			if tt.wantCode != "" {
				if !strings.Contains(output, tt.wantCode) {
					t.Errorf("output does not contain color code %q, got: %s", tt.wantCode, output)
				}
				if !strings.Contains(output, colorReset) {
					t.Errorf("output does not contain reset code, got: %s", output)
				}
			} else {
				if strings.Contains(output, colorRed) || strings.Contains(output, colorYellow) || strings.Contains(output, colorGreen) {
					t.Errorf("output should not contain color codes, got: %s", output)
				}
			}
		})
	}
}

func TestColorHandlerAttrOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug).With("run_id", "r1")

	logger.Info("upserting hotels", "rows", 42)

	output := buf.String()
	runIdx := strings.Index(output, "run_id=r1")
	rowsIdx := strings.Index(output, "rows=42")
	if runIdx < 0 || rowsIdx < 0 {
		t.Fatalf("output missing attributes, got: %s", output)
	}
	if runIdx > rowsIdx {
		t.Errorf("handler attributes should precede record attributes, got: %s", output)
	}
}

func TestColorHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug).WithGroup("db")

	logger.Info("connected", "uri", "bolt://localhost:7687")

	output := buf.String()
	if !strings.Contains(output, "db.uri=bolt://localhost:7687") {
		t.Errorf("output does not contain group-prefixed attribute, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger(slog.LevelInfo)
	if logger == nil {
		t.Error("NewDefaultLogger returned nil")
	}

	logger.Info("test info")
	logger.Error("test error")
}
