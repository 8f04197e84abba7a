package middleware

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/VictoriaMetrics/metrics"

	"github.com/ValentinKolb/gFlux/lib/store"
)

// TestMetricsCountsActions tests that every successful dispatch increments
// the per-type counter on the set
func TestMetricsCountsActions(t *testing.T) {
	set := metrics.NewSet()

	s, err := store.CreateStore(testReducer, 0, Apply(NewMetrics[int](set)))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := s.Dispatch(store.Action{Type: "test/increment"}); err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
	}
	if _, err := s.Dispatch(store.Action{Type: "test/other"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	out := buf.String()

	if !strings.Contains(out, `gflux_actions_total{type="test/increment"} 3`) {
		t.Errorf("expected counter line for test/increment with value 3, got:\n%s", out)
	}
	if !strings.Contains(out, `gflux_actions_total{type="test/other"} 1`) {
		t.Errorf("expected counter line for test/other with value 1, got:\n%s", out)
	}
}

// TestMetricsCountsErrors tests that failed dispatches increment the error
// counter and not the per-type counter
func TestMetricsCountsErrors(t *testing.T) {
	set := metrics.NewSet()

	failure := errors.New("downstream broken")
	failing := func(api API[int]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				return action, failure
			}
		}
	}

	s, err := store.CreateStore(testReducer, 0, Apply(NewMetrics[int](set), failing))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); !errors.Is(err, failure) {
		t.Errorf("Dispatch should pass the downstream error through, got %v", err)
	}

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	out := buf.String()

	if !strings.Contains(out, "gflux_dispatch_errors_total 1") {
		t.Errorf("expected error counter with value 1, got:\n%s", out)
	}
	if strings.Contains(out, "gflux_actions_total") {
		t.Errorf("failed dispatches should not count as actions, got:\n%s", out)
	}
}

// TestMetricsNilSet tests that a nil set is replaced by a private one
// instead of panicking
func TestMetricsNilSet(t *testing.T) {
	s, err := store.CreateStore(testReducer, 0, Apply(NewMetrics[int](nil)))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if s.GetState() != 1 {
		t.Errorf("state should be 1, got %d", s.GetState())
	}
}
