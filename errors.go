package cl

// Error reports a failed discovery query. Facade accessors panic with
// it; use errors.As on the recovered value to reach the native status.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "cl: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// must unwraps a discovery result, panicking with a *Error on failure.
// It is curried so a call's results can be passed directly:
//
//	name := must(rt.PlatformInfo(id, ll.PlatformName))("platform name")
func must[T any](v T, err error) func(op string) T {
	return func(op string) T {
		if err != nil {
			panic(&Error{Op: op, Err: err})
		}
		return v
	}
}
