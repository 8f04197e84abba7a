package store

import (
	"fmt"
	"reflect"
	"sort"
)

// CombineReducers builds a single reducer out of a mapping of named
// sub-reducers. The combined reducer operates on a map-shaped state keyed
// the same way: for every key the corresponding sub-reducer is called with
// the sub-state under that key (nil on the first call) and the action.
//
// If no sub-reducer produced a changed value - compared by identity, not by
// deep equality - the combined reducer returns the original state map
// unchanged, so upstream change detection stays cheap.
//
// Go maps are unordered, therefore keys are iterated in sorted order; the
// order is deterministic across calls.
//
// A nil entry in the mapping is rejected with RetCInvalidArgument at
// construction time rather than skipped silently: a nil Reducer in Go is a
// bug, not a shape variant.
func CombineReducers(reducers map[string]Reducer[any]) (Reducer[map[string]any], error) {
	if len(reducers) == 0 {
		return nil, NewError(RetCInvalidArgument, "at least one reducer is required")
	}

	keys := make([]string, 0, len(reducers))
	for key, reducer := range reducers {
		if reducer == nil {
			return nil, NewError(RetCInvalidArgument, fmt.Sprintf("reducer for key %q must not be nil", key))
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return func(state map[string]any, action IAction) map[string]any {
		// A nil state (bootstrap) always produces a fresh map.
		changed := state == nil

		nextState := make(map[string]any, len(keys))
		for _, key := range keys {
			prev := state[key]
			next := reducers[key](prev, action)
			nextState[key] = next
			if !sameIdentity(prev, next) {
				changed = true
			}
		}

		if !changed {
			return state
		}
		return nextState
	}, nil
}

// sameIdentity reports whether two sub-state values are identical in the
// reference sense. Pointer-like kinds compare by data pointer (plus length
// for slices), comparable values compare with ==. Incomparable
// non-reference values are conservatively treated as changed; the cost of a
// false negative is a fresh map allocation, never a missed update.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		if !va.Comparable() {
			return false
		}
		return a == b
	}
}
