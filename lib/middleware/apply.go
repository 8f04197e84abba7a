package middleware

import (
	"github.com/ValentinKolb/gFlux/lib/store"
)

// dispatchCell is the mutable indirection behind API.Dispatch. It holds nil
// until the chain is composed; middlewares must only call through it at
// action-handling time.
type dispatchCell struct {
	dispatch store.Dispatcher
}

// enhancedStore exposes the base store with the dispatch operation replaced
// by the composed middleware chain.
type enhancedStore[S any] struct {
	store.IStore[S]
	dispatch store.Dispatcher
}

func (s *enhancedStore[S]) Dispatch(action store.IAction) (store.IAction, error) {
	return s.dispatch(action)
}

// Apply returns an enhancer that wraps a store's dispatch operation with the
// given middlewares. The first middleware is the outermost interceptor: it
// sees the action first and its return value unwinds last.
//
// Construction order: the base store is created first, then every middleware
// factory is invoked once with the API object, then the produced wrappers
// are composed right-to-left terminating in the base dispatch. Only after
// composition is API.Dispatch wired to the final chain.
func Apply[S any](middlewares ...Middleware[S]) store.Enhancer[S] {
	return func(next store.StoreCreator[S]) store.StoreCreator[S] {
		return func(reducer store.Reducer[S], preloaded S) (store.IStore[S], error) {
			for _, mw := range middlewares {
				if mw == nil {
					return nil, store.NewError(store.RetCInvalidArgument, "middleware must not be nil")
				}
			}

			base, err := next(reducer, preloaded)
			if err != nil {
				return nil, err
			}

			cell := &dispatchCell{}
			api := API[S]{
				GetState: base.GetState,
				Dispatch: func(action store.IAction) (store.IAction, error) {
					return cell.dispatch(action)
				},
			}

			wrappers := make([]func(store.Dispatcher) store.Dispatcher, len(middlewares))
			for i, mw := range middlewares {
				wrappers[i] = mw(api)
			}

			cell.dispatch = store.Compose(wrappers...)(base.Dispatch)

			return &enhancedStore[S]{
				IStore:   base,
				dispatch: cell.dispatch,
			}, nil
		}
	}
}

// describeAction returns the action's type for log and error messages,
// tolerating a nil action on its way to the engine's validation.
func describeAction(action store.IAction) string {
	if action == nil {
		return "<nil>"
	}
	return action.ActionType()
}
