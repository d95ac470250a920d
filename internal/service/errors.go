package service

import "fmt"

// The game engine reports failures as typed errors so the transport layer can
// map them to status codes without string matching. None of these are retried
// by the engine itself; PersistenceError is the only kind a caller might
// reasonably retry.

// NotFoundError means a referenced resource (user, session, review) does not
// exist.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError means the operation is not valid in the session's current
// state: an active session already exists, no review is pending, the answered
// review does not match the pending one, the session has ended, or a
// concurrent writer won the commit race.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return e.Reason
}

// ExhaustedError means the review selector could not draw an unseen review
// within its retry budget.
type ExhaustedError struct {
	Attempts int
}

func (e ExhaustedError) Error() string {
	return fmt.Sprintf("review corpus exhausted after %d draws", e.Attempts)
}

// PersistenceError wraps a storage failure. The failed operation is recorded
// for logging; the underlying error is reachable via Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

// storeErr wraps a raw repository error as a PersistenceError, passing typed
// game errors through untouched so transaction callbacks can surface them.
func storeErr(op string, err error) error {
	switch err.(type) {
	case NotFoundError, ConflictError, ExhaustedError, PersistenceError:
		return err
	}
	return PersistenceError{Op: op, Err: err}
}
