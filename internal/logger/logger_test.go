package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/bakery/internal/config"
)

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewWithOutput_JSONLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	entries := jsonLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %s", len(entries), buf.String())
	}
	if entries[0]["message"] != "shown" {
		t.Errorf("message = %v", entries[0]["message"])
	}
	if _, ok := entries[0]["time"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestNewWithOutput_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LogConfig{Level: "nope", Format: "json"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	if entries := jsonLines(t, &buf); len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestNewWithOutput_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(config.LogConfig{Level: "info", Format: "console"}, &buf)
	log.Info().Str("bakery", "Happy Bakery").Msg("inserted")

	out := buf.String()
	if !strings.Contains(out, "inserted") || !strings.Contains(out, "Happy Bakery") {
		t.Errorf("unexpected console output: %q", out)
	}
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM `bakery`", 2 }

	tests := []struct {
		name      string
		traceSQL  bool
		begin     time.Time
		err       error
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "error is logged",
			begin:     time.Now(),
			err:       errors.New("no such table: bakery"),
			wantLevel: "error",
			wantMsg:   "query failed",
		},
		{
			name:  "record not found is not an error",
			begin: time.Now(),
			err:   gorm.ErrRecordNotFound,
		},
		{
			name:      "slow query warns",
			begin:     time.Now().Add(-time.Second),
			wantLevel: "warn",
			wantMsg:   "slow query",
		},
		{
			name:  "fast query is quiet without tracing",
			begin: time.Now(),
		},
		{
			name:      "fast query traced at debug",
			traceSQL:  true,
			begin:     time.Now(),
			wantLevel: "debug",
			wantMsg:   "query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := NewWithOutput(config.LogConfig{Level: "trace", Format: "json"}, &buf)
			gl := NewGormLogger(base, tt.traceSQL)

			gl.Trace(context.Background(), tt.begin, query, tt.err)

			entries := jsonLines(t, &buf)
			if tt.wantLevel == "" {
				if len(entries) != 0 {
					t.Errorf("expected no output, got %s", buf.String())
				}
				return
			}
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d: %s", len(entries), buf.String())
			}
			e := entries[0]
			if e["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", e["level"], tt.wantLevel)
			}
			if e["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %s", e["message"], tt.wantMsg)
			}
			if e["sql"] != "SELECT * FROM `bakery`" {
				t.Errorf("sql = %v", e["sql"])
			}
			if e["component"] != "gorm" {
				t.Errorf("component = %v", e["component"])
			}
		})
	}
}

func TestGormLogger_LogModeSilent(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithOutput(config.LogConfig{Level: "trace", Format: "json"}, &buf)
	gl := NewGormLogger(base, true).LogMode(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	gl.Error(context.Background(), "failed %s", "x")

	if buf.Len() != 0 {
		t.Errorf("silent logger wrote %q", buf.String())
	}
}

func TestGormLogger_InfoRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithOutput(config.LogConfig{Level: "trace", Format: "json"}, &buf)
	gl := NewGormLogger(base, false)

	gl.Info(context.Background(), "hidden %d", 1)
	gl.Warn(context.Background(), "shown %d", 2)

	entries := jsonLines(t, &buf)
	if len(entries) != 1 || entries[0]["message"] != "shown 2" {
		t.Errorf("unexpected entries: %s", buf.String())
	}
}
