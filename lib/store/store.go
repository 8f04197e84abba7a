package store

// CreateStore creates a new store engine holding a state of type S.
//
// The reducer computes the next state for every dispatched action and must
// not be nil. The preloaded value is the state the first reducer call sees;
// pass the zero value of S to let the reducer's default branch seed the
// state. If enhancer is non-nil, construction is delegated to it entirely:
// the enhancer receives the plain construction function and must return a
// fully formed store.
//
// On the plain construction path the bootstrap action ActionTypeInit is
// dispatched exactly once before the store is returned.
func CreateStore[S any](reducer Reducer[S], preloaded S, enhancer Enhancer[S]) (IStore[S], error) {
	if reducer == nil {
		return nil, NewError(RetCInvalidArgument, "reducer must not be nil")
	}

	if enhancer != nil {
		return enhancer(newStoreCreator[S]())(reducer, preloaded)
	}

	return newStoreCreator[S]()(reducer, preloaded)
}

// newStoreCreator returns the engine construction function without any
// enhancer applied. This is the function handed to enhancers.
func newStoreCreator[S any]() StoreCreator[S] {
	return func(reducer Reducer[S], preloaded S) (IStore[S], error) {
		if reducer == nil {
			return nil, NewError(RetCInvalidArgument, "reducer must not be nil")
		}

		s := &storeImpl[S]{
			reducer: reducer,
			state:   preloaded,
		}

		// Seed the initial state from the reducer's default branch.
		if _, err := s.Dispatch(Action{Type: ActionTypeInit}); err != nil {
			return nil, err
		}

		return s, nil
	}
}

// subscription is the registration handle for a single listener. Listener
// functions are not comparable in Go, so unsubscription works on the handle
// pointer instead of the function value.
type subscription struct {
	fn     Listener
	active bool
}

// storeImpl implements the IStore interface.
//
// The listener registry keeps two views: current is the slice an in-flight
// notification pass iterates over, next is the slice subscribe/unsubscribe
// mutate. next is copy-on-write relative to current: once a dispatch has
// captured current = next, the first registry mutation afterwards clones
// next before touching it.
type storeImpl[S any] struct {
	reducer Reducer[S]
	state   S

	current []*subscription // snapshot in effect for the in-flight dispatch
	next    []*subscription // view mutated by subscribe/unsubscribe
	shared  bool            // next is (still) the slice current points at
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store.IStore)
// --------------------------------------------------------------------------

func (s *storeImpl[S]) GetState() S {
	return s.state
}

func (s *storeImpl[S]) Dispatch(action IAction) (IAction, error) {
	if action == nil {
		return nil, NewError(RetCInvalidArgument, "action must not be nil")
	}
	if action.ActionType() == "" {
		return nil, NewError(RetCInvalidArgument, "action must carry a non-empty type")
	}

	// Replacement, not merge. If the reducer panics the assignment is never
	// reached and the previous state stays in effect.
	s.state = s.reducer(s.state, action)

	// Capture the listener snapshot for this pass. Reentrant subscribe or
	// unsubscribe calls clone next first, so the local slice is stable even
	// while listeners mutate the registry.
	s.current = s.next
	s.shared = true
	listeners := s.current

	for _, sub := range listeners {
		sub.fn()
	}

	return action, nil
}

func (s *storeImpl[S]) Subscribe(listener Listener) (UnsubscribeFunc, error) {
	if listener == nil {
		return nil, NewError(RetCInvalidArgument, "listener must not be nil")
	}

	sub := &subscription{fn: listener, active: true}

	s.ensureCanMutateNext()
	s.next = append(s.next, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false

		s.ensureCanMutateNext()
		for i, candidate := range s.next {
			if candidate == sub {
				s.next = append(s.next[:i], s.next[i+1:]...)
				break
			}
		}
	}, nil
}

func (s *storeImpl[S]) ReplaceReducer(reducer Reducer[S]) error {
	if reducer == nil {
		return NewError(RetCInvalidArgument, "reducer must not be nil")
	}

	s.reducer = reducer

	// Redispatch the bootstrap action so the state shape is consistent with
	// the new reducer.
	_, err := s.Dispatch(Action{Type: ActionTypeReplace})
	return err
}

// --------------------------------------------------------------------------
// Internal Helpers
// --------------------------------------------------------------------------

// ensureCanMutateNext clones the next view if it is still the slice an
// in-flight (or the most recent) notification pass iterates over.
func (s *storeImpl[S]) ensureCanMutateNext() {
	if !s.shared {
		return
	}
	s.next = append([]*subscription(nil), s.next...)
	s.shared = false
}
