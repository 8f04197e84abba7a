package middleware

import (
	"github.com/ValentinKolb/gFlux/lib/store"
)

// API is the fixed view of the store handed to every middleware factory.
type API[S any] struct {
	// GetState returns the store's current state.
	GetState func() S

	// Dispatch forwards to the final composed dispatch chain. It is wired up
	// only after all middlewares have been constructed; it must be called at
	// action-handling time, never while the chain is still being set up.
	Dispatch store.Dispatcher
}

// Middleware is a factory invoked once at store construction time with the
// API object. It returns a wrapper around the downstream dispatcher.
type Middleware[S any] func(api API[S]) func(next store.Dispatcher) store.Dispatcher
