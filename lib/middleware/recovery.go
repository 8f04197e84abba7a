package middleware

import (
	"fmt"

	"github.com/ValentinKolb/gFlux/lib/store"
)

// NewRecovery creates a middleware that converts panics escaping the
// downstream dispatch - a panicking reducer or listener - into an error
// returned to the dispatch caller.
//
// The engine itself never intercepts caller-code failures; this middleware
// is the opt-in stance on that extension point. Note that a recovered panic
// does not resume the notification pass: listeners that would have run after
// the panicking one are skipped for that dispatch.
func NewRecovery[S any]() Middleware[S] {
	return func(api API[S]) func(next store.Dispatcher) store.Dispatcher {
		return func(next store.Dispatcher) store.Dispatcher {
			return func(action store.IAction) (out store.IAction, err error) {
				actionType := describeAction(action)

				defer func() {
					if r := recover(); r != nil {
						out = nil
						err = fmt.Errorf("dispatch of %s panicked: %v", actionType, r)
					}
				}()

				return next(action)
			}
		}
	}
}
