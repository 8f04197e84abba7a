// Package store implements a minimal, single-threaded state container: a
// single state value that is updated only through pure transition functions
// (reducers), observed through a subscription mechanism, and optionally
// wrapped by composable interception layers (see the middleware package).
//
// The package focuses on:
//   - A single owner of state (IStore) that sequences all updates
//   - Copy-on-write listener snapshots, so reentrant subscribe/unsubscribe
//     calls never corrupt an in-progress notification pass
//   - Input validation with typed errors at the public boundary only
//
// Key Components:
//
//   - IStore Interface: The store engine. Created with CreateStore from a
//     reducer, an optional preloaded state and an optional enhancer. The
//     engine owns the current state, invokes the reducer on every Dispatch,
//     replaces the state wholesale with the result and then notifies the
//     listener snapshot captured at the start of that dispatch.
//
//   - Error System: A structured error reporting mechanism using typed error
//     codes and descriptive messages. Every contract violation (nil reducer,
//     nil listener, typeless action, ...) is reported synchronously as a
//     *Error with RetCInvalidArgument; errors raised by caller code
//     (reducers, listeners) are never intercepted by the engine.
//
//   - CombineReducers: Builds one reducer out of a mapping of named
//     sub-reducers over a map-shaped state, preserving the state reference
//     when no sub-reducer produced a change.
//
//   - Compose: Generic right-to-left function composition, used by the
//     middleware package to chain dispatch interceptors.
//
//   - BindActionCreator / BindActionCreators: Wrap action-creator functions
//     so callers can invoke them without an explicit dispatch call.
//
// The store is deliberately synchronous and lock-free: every operation runs
// to completion on the calling goroutine, there is exactly one owner of state
// per store instance, and nothing in this package starts a goroutine. Nested
// dispatches are allowed and unguarded; a reducer or listener that dispatches
// recursively without a base case is a caller defect.
package store
