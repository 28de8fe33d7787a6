package scaffold

import (
	"errors"
	"fmt"
)

// Standard sentinel errors shared by the generator and the runtime store.
var (
	// ErrUsedAbstract is returned when an operation is invoked on an
	// unbound base type (a data-access object without a table, a
	// generator without a language).
	ErrUsedAbstract = errors.New("scaffold: abstract type used directly")

	// ErrNotConnected is returned by storage operations while the backend
	// has not (yet) established a connection.
	ErrNotConnected = errors.New("scaffold: storage not connected")

	// ErrMissingConnection is returned when a storage backend has no
	// connection target configured. It is raised before any connection
	// attempt and is not retryable.
	ErrMissingConnection = errors.New("scaffold: missing storage connection target")
)

// UsedAbstractError reports the abstract type and the operation that was
// invoked on it.
type UsedAbstractError struct {
	Type string // Abstract type name
	Op   string // Operation that was invoked
}

// Error returns the error string.
func (e *UsedAbstractError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("scaffold: %s invoked on abstract %s", e.Op, e.Type)
	}
	return fmt.Sprintf("scaffold: abstract %s used directly", e.Type)
}

// Is reports whether the target error matches UsedAbstractError.
// This allows errors.Is(err, ErrUsedAbstract) to return true.
func (e *UsedAbstractError) Is(err error) bool {
	return err == ErrUsedAbstract
}

// NewUsedAbstractError returns a new UsedAbstractError.
func NewUsedAbstractError(typ, op string) *UsedAbstractError {
	return &UsedAbstractError{Type: typ, Op: op}
}

// IsUsedAbstract returns true if the error is a UsedAbstractError.
func IsUsedAbstract(err error) bool {
	if err == nil {
		return false
	}
	var e *UsedAbstractError
	return errors.As(err, &e) || errors.Is(err, ErrUsedAbstract)
}

// MissingConnectionError reports the backend whose connection target is
// missing.
type MissingConnectionError struct {
	Backend string
}

// Error returns the error string.
func (e *MissingConnectionError) Error() string {
	return fmt.Sprintf("scaffold: missing connection target for %s backend", e.Backend)
}

// Is reports whether the target error matches MissingConnectionError.
func (e *MissingConnectionError) Is(err error) bool {
	return err == ErrMissingConnection
}

// NewMissingConnectionError returns a new MissingConnectionError.
func NewMissingConnectionError(backend string) *MissingConnectionError {
	return &MissingConnectionError{Backend: backend}
}

// IsMissingConnection returns true if the error is a MissingConnectionError.
func IsMissingConnection(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingConnectionError
	return errors.As(err, &e) || errors.Is(err, ErrMissingConnection)
}

// IsNotConnected returns true if the error reports a not-connected backend.
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// QueryError wraps a storage error with the table and operation it
// occurred in.
type QueryError struct {
	Table string // Table being operated on
	Op    string // Operation (e.g., "insert", "find", "update")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("scaffold: %s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("scaffold: querying %s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}
