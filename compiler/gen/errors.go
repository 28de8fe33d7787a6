package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMissingConfig    = errors.New("scaffold: missing configuration")
	ErrGenerationFailed = errors.New("scaffold: generation failed")
	ErrInvalidTable     = errors.New("scaffold: invalid table")
)

// message joins the non-empty parts of an error message with ": ".
func message(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ": ")
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ConfigError reports an option that cannot be applied or a reference the
// configuration cannot resolve, e.g. an unknown user table.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	subject := "option " + e.Option
	if e.Value != nil {
		subject = fmt.Sprintf("option %s = %v", e.Option, e.Value)
	}
	return message("scaffold", subject, e.Message)
}

// Is matches ErrMissingConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError returns a ConfigError for option.
func NewConfigError(option string, value any, msg string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: msg}
}

// TableError reports a structural problem of a table definition: empty or
// duplicate names and keys, untyped fields, unresolvable links.
type TableError struct {
	Table   string
	Field   string // schema key, if the problem is a single field
	Message string
	Cause   error
}

func (e *TableError) Error() string {
	subject := "table " + e.Table
	if e.Table == "" {
		subject = "table"
	}
	if e.Field != "" {
		subject += "." + e.Field
	}
	return message("scaffold", subject, e.Message, causeText(e.Cause))
}

func (e *TableError) Unwrap() error { return e.Cause }

// Is matches ErrInvalidTable.
func (e *TableError) Is(target error) bool {
	return target == ErrInvalidTable
}

// NewTableError returns a TableError for table and, optionally, one of its
// fields.
func NewTableError(table, field, msg string, cause error) *TableError {
	return &TableError{Table: table, Field: field, Message: msg, Cause: cause}
}

// GenerationError reports a failure while writing the output tree. Phase is
// the emitter step that failed: descend, create, render, write or close.
type GenerationError struct {
	Phase   string
	File    string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	subject := strings.TrimSpace(e.Phase + " " + e.File)
	return message("scaffold", subject, e.Message, causeText(e.Cause))
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// Is matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError returns a GenerationError of phase on file.
func NewGenerationError(phase, file, msg string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, File: file, Message: msg, Cause: cause}
}

// IsConfigError reports whether err wraps a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsTableError reports whether err wraps a TableError.
func IsTableError(err error) bool {
	var e *TableError
	return errors.As(err, &e)
}

// IsGenerationError reports whether err wraps a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
