package store

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Action Types
// --------------------------------------------------------------------------

// IAction is the interface all dispatchable actions must implement.
// The string returned by ActionType is the discriminant that reducers
// switch on; it must not be empty.
type IAction interface {
	// ActionType returns the discriminant identifying the kind of action.
	ActionType() string
}

// Action is the basic IAction implementation shipped with the package.
// Type carries the discriminant, Payload carries arbitrary data.
type Action struct {
	Type    string
	Payload any
}

// ActionType implements the IAction interface.
func (a Action) ActionType() string { return a.Type }

// Reserved action types dispatched by the store itself. The "@@gFlux/"
// namespace must not be used for caller-defined actions.
const (
	// ActionTypeInit is dispatched once when a store is created to seed the
	// initial state from the reducer's default branch.
	ActionTypeInit = "@@gFlux/INIT"

	// ActionTypeReplace is dispatched after ReplaceReducer so the state shape
	// is consistent with the new reducer.
	ActionTypeReplace = "@@gFlux/REPLACE"
)

// --------------------------------------------------------------------------
// Function Types
// --------------------------------------------------------------------------

// Reducer is a pure function mapping the current state and an action to the
// next state. The store never mutates state itself, it replaces it wholesale
// with the reducer's return value on every dispatch.
type Reducer[S any] func(state S, action IAction) S

// Listener is a zero-argument callback invoked after every completed
// dispatch. Listeners read state via the store's GetState method.
type Listener func()

// UnsubscribeFunc removes the listener it was created for. Calling it more
// than once is a no-op after the first effective removal.
type UnsubscribeFunc func()

// Dispatcher is the signature of the store's dispatch operation. It returns
// the dispatched action unchanged so interceptor chains can compose return
// values, and a *Error on contract violations.
type Dispatcher func(action IAction) (IAction, error)

// StoreCreator is the engine construction function handed to enhancers.
type StoreCreator[S any] func(reducer Reducer[S], preloaded S) (IStore[S], error)

// Enhancer wraps the engine construction function to add cross-cutting
// behavior (e.g. middleware support). When an enhancer is passed to
// CreateStore, construction is delegated to it entirely.
type Enhancer[S any] func(next StoreCreator[S]) StoreCreator[S]

// ActionCreator builds an action from its arguments. Used together with
// BindActionCreator / BindActionCreators.
type ActionCreator func(args ...any) IAction

// BoundActionCreator is an ActionCreator that dispatches its result
// immediately.
type BoundActionCreator func(args ...any) (IAction, error)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface of the store engine: the single owner of state,
// the active reducer and the listener registry.
//
// Thread-safety: a store is single-threaded by design. All operations run
// synchronously to completion on the calling goroutine; the only supported
// form of "concurrency" is reentrancy (a listener or middleware may call
// Dispatch or Subscribe while a dispatch is in flight).
type IStore[S any] interface {
	// GetState returns the current state. No side effects.
	GetState() S

	// Dispatch runs the reducer with the given action, replaces the state
	// with the result and notifies all listeners subscribed at the start of
	// the call. It returns the original action on success. It returns a
	// *Error with RetCInvalidArgument if the action is nil or carries an
	// empty type; in that case the state is left untouched.
	Dispatch(action IAction) (IAction, error)

	// Subscribe registers a listener to be invoked after every dispatch.
	// The returned UnsubscribeFunc removes exactly this registration and is
	// idempotent. Subscribing or unsubscribing during a notification pass
	// never affects which listeners are called in that pass.
	Subscribe(listener Listener) (UnsubscribeFunc, error)

	// ReplaceReducer swaps the active reducer and redispatches the bootstrap
	// action so derived state is consistent with the new reducer.
	ReplaceReducer(reducer Reducer[S]) error
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message. All contract violations reported by this package
// are of this type.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInvalidArgument:
		errorCode = "InvalidArgument"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("StoreError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new StoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess         RetCode = iota // 0: Operation executed successfully.
	RetCInvalidArgument                // 1: A caller-supplied argument violated the contract.
)
