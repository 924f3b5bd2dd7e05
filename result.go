package parsco

// Result represents the outcome of a parse: either a value or an error.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates a failed Result.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether the result holds a value.
func (r Result[T]) Ok() bool {
	return r.err == nil
}

// Value returns the held value, or the zero value of T on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the held error, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the value and error as a pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// OrElse returns the value on success and fallback otherwise.
func (r Result[T]) OrElse(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Map applies f to the value of a successful result.
func (r Result[T]) Map(f func(T) T) Result[T] {
	if r.err != nil {
		return r
	}
	return Ok(f(r.value))
}

// Bind chains Result operations while handling potential errors
func (r Result[T]) Bind(f func(T) Result[T]) Result[T] {
	if r.err != nil {
		return r
	}
	return f(r.value)
}
