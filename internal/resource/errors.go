package resource

import "errors"

// ErrNotFound is the sentinel for a missing record. It is an expected outcome,
// not a fault: lookups on unknown ids return it so the HTTP layer can answer
// 404 without logging anything.
var ErrNotFound = errors.New("not found")

// ValidationError carries a message that names the offending fields. It maps
// to a 400 and is always correctable by the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Fault wraps an internal failure (storage unreachable, unexpected DB error).
// Its message is safe to log alongside the cause; clients only ever see the
// generic 500 body.
type Fault struct {
	Op  string
	Err error
}

func (f *Fault) Error() string { return "could not " + f.Op }

func (f *Fault) Unwrap() error { return f.Err }
