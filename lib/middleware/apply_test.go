package middleware

import (
	"testing"

	"github.com/ValentinKolb/gFlux/lib/store"
)

// testReducer increments the state on "test/increment" and leaves it alone
// otherwise
func testReducer(state int, action store.IAction) int {
	if action.ActionType() == "test/increment" {
		return state + 1
	}
	return state
}

// tagging creates a middleware that records its before/after lines into log
func tagging(tag string, log *[]string) Middleware[int] {
	return func(api API[int]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				*log = append(*log, tag+"-before")
				out, err := next(action)
				*log = append(*log, tag+"-after")
				return out, err
			}
		}
	}
}

// TestApplyWrappingOrder tests LIFO wrapping around the base dispatch: the
// first middleware sees the action first and returns last
func TestApplyWrappingOrder(t *testing.T) {
	var log []string

	s, err := store.CreateStore(testReducer, 0, Apply(
		tagging("mw1", &log),
		tagging("mw2", &log),
	))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	expected := []string{"mw1-before", "mw2-before", "mw2-after", "mw1-after"}
	if len(log) != len(expected) {
		t.Fatalf("expected log %v, got %v", expected, log)
	}
	for i, line := range expected {
		if log[i] != line {
			t.Errorf("log line %d should be %s, got %s", i, line, log[i])
		}
	}
}

// TestApplyReturnsActionUnchanged tests that the action passes through the
// whole chain unchanged
func TestApplyReturnsActionUnchanged(t *testing.T) {
	var log []string

	s, err := store.CreateStore(testReducer, 0, Apply(
		tagging("mw1", &log),
		tagging("mw2", &log),
	))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	action := store.Action{Type: "test/increment", Payload: 99}
	returned, err := s.Dispatch(action)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if returned != store.IAction(action) {
		t.Errorf("Dispatch should return the original action through the chain, got %v", returned)
	}
}

// TestApplyValidation tests that a nil middleware is rejected
func TestApplyValidation(t *testing.T) {
	if _, err := store.CreateStore(testReducer, 0, Apply[int](nil)); err == nil {
		t.Error("Apply with a nil middleware should fail at store construction")
	}
}

// TestApplyZeroMiddlewares tests that an empty chain behaves like the bare
// store
func TestApplyZeroMiddlewares(t *testing.T) {
	s, err := store.CreateStore(testReducer, 0, Apply[int]())
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

// TestApplyGetState tests that middlewares observe the state transition of
// the dispatch they wrap
func TestApplyGetState(t *testing.T) {
	var before, after int

	observer := func(api API[int]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				before = api.GetState()
				out, err := next(action)
				after = api.GetState()
				return out, err
			}
		}
	}

	s, err := store.CreateStore(testReducer, 5, Apply(observer))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/increment"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if before != 5 || after != 6 {
		t.Errorf("middleware should see state 5 before and 6 after, got %d and %d", before, after)
	}
}

// TestApplyLateBoundDispatch tests that api.Dispatch refers to the final
// composed chain, not the bare store dispatch
func TestApplyLateBoundDispatch(t *testing.T) {
	var log []string

	// after "test/outer" completes, dispatches a follow-up action through
	// the API object - which must pass the full chain again
	redispatch := func(api API[int]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (store.IAction, error) {
				out, err := next(action)
				if err == nil && action.ActionType() == "test/outer" {
					if _, derr := api.Dispatch(store.Action{Type: "test/increment"}); derr != nil {
						return out, derr
					}
				}
				return out, err
			}
		}
	}

	s, err := store.CreateStore(testReducer, 0, Apply(
		tagging("outer", &log),
		redispatch,
	))
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	if _, err := s.Dispatch(store.Action{Type: "test/outer"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	// the follow-up dispatch must have passed the outer middleware as well
	expected := []string{"outer-before", "outer-before", "outer-after", "outer-after"}
	if len(log) != len(expected) {
		t.Fatalf("expected log %v, got %v", expected, log)
	}
	for i, line := range expected {
		if log[i] != line {
			t.Errorf("log line %d should be %s, got %s", i, line, log[i])
		}
	}

	if s.GetState() != 1 {
		t.Errorf("state should reflect the follow-up increment, got %d", s.GetState())
	}
}
