package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func TestLogStatementEmitsExpectedFields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)
	LogStatement(l, 42, "CreateTable", "CREATE TABLE t0 (...)", true)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not valid JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "statement" {
		t.Fatalf("msg = %v, want statement", rec["msg"])
	}
	if rec["kind"] != "CreateTable" {
		t.Fatalf("kind = %v, want CreateTable", rec["kind"])
	}
	if rec["accepted"] != true {
		t.Fatalf("accepted = %v, want true", rec["accepted"])
	}
}

func TestLogOracleEmitsExpectedFields(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)
	LogOracle(l, "correctness", 111, 222, false)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if rec["oracle"] != "correctness" {
		t.Fatalf("oracle = %v, want correctness", rec["oracle"])
	}
	if rec["match"] != false {
		t.Fatalf("match = %v, want false", rec["match"])
	}
}

func TestWithWorkerTagsSubsequentRecords(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)
	worker := WithWorker(l, 3)
	LogStatement(worker, 1, "Select", "SELECT 1", true)

	if !strings.Contains(buf.String(), `"worker":3`) {
		t.Fatalf("expected worker=3 in log line, got %s", buf.String())
	}
}

func TestNewWithEmptyPathDoesNotPanic(t *testing.T) {
	l := New(Options{Path: ""})
	if l == nil {
		t.Fatal("New returned nil logger")
	}
}

func TestOrDefaultFallsBackOnNonPositive(t *testing.T) {
	if got := orDefault(0, 7); got != 7 {
		t.Fatalf("orDefault(0, 7) = %d, want 7", got)
	}
	if got := orDefault(-1, 7); got != 7 {
		t.Fatalf("orDefault(-1, 7) = %d, want 7", got)
	}
	if got := orDefault(5, 7); got != 5 {
		t.Fatalf("orDefault(5, 7) = %d, want 5", got)
	}
}
