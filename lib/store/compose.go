package store

// Compose chains single-argument functions from right to left:
// Compose(f, g, h)(x) == f(g(h(x))).
//
// With no arguments it returns the identity function, with one argument it
// returns that function as-is. Pure, no side effects, no state.
func Compose[T any](fns ...func(T) T) func(T) T {
	switch len(fns) {
	case 0:
		return func(v T) T { return v }
	case 1:
		return fns[0]
	}

	return func(v T) T {
		for i := len(fns) - 1; i >= 0; i-- {
			v = fns[i](v)
		}
		return v
	}
}
