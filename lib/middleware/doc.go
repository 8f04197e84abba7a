// Package middleware implements the interception layer of the gFlux store:
// an enhancer that wraps a store's dispatch operation with an ordered chain
// of interceptor functions, plus a small set of shipped interceptors.
//
// The package focuses on:
//   - Apply: the enhancer that composes middlewares around the base dispatch
//   - A fixed-shape API object ({GetState, Dispatch}) handed to every
//     middleware, whose Dispatch always refers to the final composed chain
//   - Shipped middlewares for logging, metrics and panic recovery
//
// Composition order follows the registration order: for Apply(mw1, mw2) a
// dispatched action passes mw1 first, then mw2, then the base dispatch, and
// the return values unwind in reverse (LIFO around the base dispatch).
//
// Each middleware is a factory invoked exactly once at store construction
// time with the API object. It produces a wrapper of shape
//
//	func(next store.Dispatcher) store.Dispatcher
//
// The API object's Dispatch field goes through an indirection that is
// assigned only after the whole chain is composed, so closures a middleware
// hands out call the final composed dispatch and not the bare one. Calling
// API.Dispatch while middlewares are still being constructed is a protocol
// violation and is not guarded against.
//
// Thread-safety: like the store itself, the dispatch path is single-threaded.
// The shipped Metrics middleware uses concurrency-safe counters internally so
// that its metrics set may be scraped from another goroutine.
package middleware
