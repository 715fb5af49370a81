package errorutils

// Returns the value passed in if there is no error, otherwise it will panic.
// Only for calls that cannot fail in practice.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}

	return value
}
