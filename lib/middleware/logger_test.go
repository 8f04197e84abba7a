package middleware

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ValentinKolb/gFlux/lib/store"
)

// TestParseLogLevel tests parsing of all accepted level strings
func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warning": LevelWarning,
		"warn":    LevelWarning,
		"error":   LevelError,
		"INFO":    LevelInfo,
	}

	for input, expected := range cases {
		level, err := ParseLogLevel(input)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", input, err)
			continue
		}
		if level != expected {
			t.Errorf("ParseLogLevel(%q) should be %d, got %d", input, expected, level)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("ParseLogLevel should reject unknown levels")
	}
}

// TestLoggerOutput tests that a successful dispatch produces an info line
// with the store name and the action type
func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	s, err := store.CreateStore(testReducer, 0, Apply(
		NewLogger[int]("test-store", LevelInfo, &buf),
	))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("log output should contain an info line, got %q", out)
	}
	if !strings.Contains(out, "test-store") {
		t.Errorf("log output should contain the store name, got %q", out)
	}
	if !strings.Contains(out, "dispatched test/increment") {
		t.Errorf("log output should name the dispatched action, got %q", out)
	}
}

// TestLoggerLevelFiltering tests that info lines are suppressed at error
// level and that debug level adds a dispatching line
func TestLoggerLevelFiltering(t *testing.T) {
	var quiet, verbose bytes.Buffer

	s, err := store.CreateStore(testReducer, 0, Apply(
		NewLogger[int]("quiet", LevelError, &quiet),
		NewLogger[int]("verbose", LevelDebug, &verbose),
	))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if quiet.Len() != 0 {
		t.Errorf("error-level logger should stay silent on success, got %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "dispatching test/increment") {
		t.Errorf("debug-level logger should log the dispatch start, got %q", verbose.String())
	}
}

// TestLoggerError tests that a failing downstream dispatch is logged at
// error level and the error is passed through
func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer

	failure := errors.New("downstream broken")
	failing := func(api API[int]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				return action, failure
			}
		}
	}

	s, err := store.CreateStore(testReducer, 0, Apply(
		NewLogger[int]("test-store", LevelError, &buf),
		failing,
	))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); !errors.Is(err, failure) {
		t.Errorf("Dispatch should pass the downstream error through, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "downstream broken") {
		t.Errorf("log output should contain the error line, got %q", out)
	}
}
