package store

// BindActionCreator wraps a single action creator so that invoking the
// returned function builds the action and dispatches it immediately.
func BindActionCreator(creator ActionCreator, dispatch Dispatcher) (BoundActionCreator, error) {
	if creator == nil {
		return nil, NewError(RetCInvalidArgument, "action creator must not be nil")
	}
	if dispatch == nil {
		return nil, NewError(RetCInvalidArgument, "dispatch must not be nil")
	}

	return func(args ...any) (IAction, error) {
		return dispatch(creator(args...))
	}, nil
}

// BindActionCreators wraps a keyed mapping of action creators, returning a
// same-shaped mapping where every entry dispatches its result immediately.
// Nil entries are omitted from the output mapping.
func BindActionCreators(creators map[string]ActionCreator, dispatch Dispatcher) (map[string]BoundActionCreator, error) {
	if creators == nil {
		return nil, NewError(RetCInvalidArgument, "action creator map must not be nil")
	}
	if dispatch == nil {
		return nil, NewError(RetCInvalidArgument, "dispatch must not be nil")
	}

	bound := make(map[string]BoundActionCreator, len(creators))
	for key, creator := range creators {
		if creator == nil {
			continue
		}
		c := creator
		bound[key] = func(args ...any) (IAction, error) {
			return dispatch(c(args...))
		}
	}

	return bound, nil
}
