package log

import (
	"encoding/json"
	"strings"
	"testing"
)

type captureOutput struct {
	entries [][]byte
}

func (c *captureOutput) Write(_ *Entry, formatted []byte) error {
	c.entries = append(c.entries, formatted)
	return nil
}
func (c *captureOutput) Close() error { return nil }

func TestLoggerWritesJSONByDefault(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithLevel(InfoLevel), WithOutput(out))
	l.Info("server started", Int("port", 6480))

	if len(out.entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(out.entries))
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(out.entries[0], &doc); err != nil {
		t.Fatalf("entry is not valid JSON: %v", err)
	}
	if doc["msg"] != "server started" {
		t.Fatalf("unexpected msg: %v", doc["msg"])
	}
	if doc["port"].(float64) != 6480 {
		t.Fatalf("unexpected port field: %v", doc["port"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithLevel(WarnLevel), WithOutput(out))
	l.Info("should be dropped")
	l.Warn("should appear")

	if len(out.entries) != 1 {
		t.Fatalf("want 1 entry after level filtering, got %d", len(out.entries))
	}
}

func TestWithAddsFieldsWithoutMutatingParent(t *testing.T) {
	out := &captureOutput{}
	base := NewLogger(WithLevel(InfoLevel), WithOutput(out))
	child := base.With(Component("server"))

	child.Info("hello")
	base.Info("hello again")

	if len(out.entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(out.entries))
	}
	var childDoc, baseDoc map[string]interface{}
	json.Unmarshal(out.entries[0], &childDoc)
	json.Unmarshal(out.entries[1], &baseDoc)

	if childDoc["component"] != "server" {
		t.Fatalf("expected component field on child logger, got %v", childDoc["component"])
	}
	if _, ok := baseDoc["component"]; ok {
		t.Fatalf("parent logger should be unaffected by child's With()")
	}
}

func TestTextFormatterIncludesKeyValuePairs(t *testing.T) {
	out := &captureOutput{}
	l := NewLogger(WithLevel(InfoLevel), WithFormatter(&TextFormatter{}), WithOutput(out))
	l.Error("append failed", Str("stream", "orders"))

	if len(out.entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(out.entries))
	}
	line := string(out.entries[0])
	if !strings.Contains(line, "append failed") || !strings.Contains(line, "stream=orders") {
		t.Fatalf("unexpected text line: %q", line)
	}
}

func TestApplyConfigUnknownFormatErrors(t *testing.T) {
	if _, err := ApplyConfig(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestApplyConfigDefaultsToConsoleJSON(t *testing.T) {
	l, err := ApplyConfig(Config{})
	if err != nil {
		t.Fatalf("apply config: %v", err)
	}
	if l.GetLevel() != InfoLevel {
		t.Fatalf("expected default level InfoLevel")
	}
	b, ok := l.(*BaseLogger)
	if !ok {
		t.Fatalf("expected *BaseLogger, got %T", l)
	}
	if _, ok := b.formatter.(*JSONFormatter); !ok {
		t.Fatalf("expected a JSON formatter by default, got %T", b.formatter)
	}
	if len(b.outputs) != 1 {
		t.Fatalf("want 1 output, got %d", len(b.outputs))
	}
	if _, ok := b.outputs[0].(*ConsoleOutput); !ok {
		t.Fatalf("expected a console output by default, got %T", b.outputs[0])
	}
}
