package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"real-estate-system/internal/core/port"
	"strings"
	"testing"
)

func TestSlogAdapterJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("boom", errors.New("disk full"), port.Fields{"attempt": 2})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "boom" || record["component"] != "test" || record["error"] != "disk full" || record["attempt"] != float64(2) {
		t.Errorf("unexpected record %v", record)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	logger.Warn("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

type fakePoster struct {
	tags     []string
	messages []map[string]interface{}
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.tags = append(f.tags, tag)
	f.messages = append(f.messages, message.(port.Fields))
	return nil
}

func (f *fakePoster) Close() error { return nil }

func TestFluentAdapterPostsAboveMinLevel(t *testing.T) {
	poster := &fakePoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelInfo)
	if err != nil {
		t.Fatal(err)
	}

	logger := adapter.WithFields(port.Fields{"service_name": "property-service"})
	logger.Debug("dropped", nil)
	logger.Info("kept", port.Fields{"k": "v"})
	logger.Error("failed", errors.New("oops"), nil)

	if len(poster.tags) != 2 || poster.tags[0] != "info" || poster.tags[1] != "error" {
		t.Fatalf("unexpected tags %v", poster.tags)
	}
	first := poster.messages[0]
	if first["message"] != "kept" || first["k"] != "v" || first["service_name"] != "property-service" {
		t.Errorf("unexpected payload %v", first)
	}
	if poster.messages[1]["error"] != "oops" {
		t.Errorf("error text missing: %v", poster.messages[1])
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &fakePoster{}, &fakePoster{}
	la, _ := NewFluentLoggerAdapter(a, slog.LevelDebug)
	lb, _ := NewFluentLoggerAdapter(b, slog.LevelDebug)

	multi, err := NewMultiloggerAdapter(la, lb)
	if err != nil {
		t.Fatal(err)
	}
	multi.WithFields(port.Fields{"x": 1}).Warn("hello", nil)

	if len(a.tags) != 1 || len(b.tags) != 1 {
		t.Fatalf("expected one record per logger, got %d and %d", len(a.tags), len(b.tags))
	}
	if _, err := NewMultiloggerAdapter(); err == nil {
		t.Error("expected error for empty logger list")
	}
}
