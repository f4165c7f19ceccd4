package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLayout   Phase = "layout"   // descriptor construction
	PhaseCreate   Phase = "create"   // table creation
	PhaseOpen     Phase = "open"     // table open
	PhaseAppend   Phase = "append"   // record append
	PhaseRead     Phase = "read"     // record read
	PhaseAttr     Phase = "attr"     // attribute access
	PhaseValidate Phase = "validate" // handle validation
	PhaseClose    Phase = "close"    // handle release
	PhaseDecode   Phase = "decode"   // schema decoding
)

// Kind categorizes the error
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindNameEncoding  Kind = "name_encoding"
	KindEngine        Kind = "engine"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindInvalidHandle Kind = "invalid_handle"
	KindNotFound      Kind = "not_found"
	KindExists        Kind = "already_exists"
	KindTypeMismatch  Kind = "type_mismatch"
	KindInvalidData   Kind = "invalid_data"
	KindClosed        Kind = "closed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Table    string
	MemType  string
	FileType string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Table != "" {
		b.WriteString(" at ")
		b.WriteString(e.Table)
	}

	if e.MemType != "" || e.FileType != "" {
		b.WriteString(": ")
		if e.MemType != "" && e.FileType != "" {
			b.WriteString("memory type ")
			b.WriteString(e.MemType)
			b.WriteString(", file type ")
			b.WriteString(e.FileType)
		} else if e.MemType != "" {
			b.WriteString("memory type ")
			b.WriteString(e.MemType)
		} else {
			b.WriteString("file type ")
			b.WriteString(e.FileType)
		}
	}

	if e.Detail != "" {
		if e.MemType != "" || e.FileType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Table sets the table name
func (b *Builder) Table(name string) *Builder {
	b.err.Table = name
	return b
}

// MemType sets the in-memory type name
func (b *Builder) MemType(t string) *Builder {
	b.err.MemType = t
	return b
}

// FileType sets the declared (on-file) type name
func (b *Builder) FileType(t string) *Builder {
	b.err.FileType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Configuration creates a configuration error for invalid creation parameters
func Configuration(detail string) *Error {
	return &Error{
		Phase:  PhaseCreate,
		Kind:   KindConfiguration,
		Detail: detail,
	}
}

// NameEncoding creates an error for a name the engine's path encoding cannot hold
func NameEncoding(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNameEncoding,
		Detail: fmt.Sprintf("name %q cannot be encoded as an engine path string", name),
	}
}

// Engine wraps a failure returned by the storage engine
func Engine(phase Phase, table string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindEngine,
		Table: table,
		Cause: cause,
	}
}

// OutOfBounds creates an error for a read past the table's record count
func OutOfBounds(phase Phase, start uint64, count int, length uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("records [%d, %d) out of bounds (table holds %d)", start, start+uint64(count), length),
	}
}

// InvalidHandle creates an error for an identifier that no longer names a live table
func InvalidHandle(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: "handle does not refer to a live table",
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Table:  name,
		Detail: "no such object",
	}
}

// TypeMismatch creates an error for a memory/file type disagreement
func TypeMismatch(phase Phase, table, memType, fileType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Table:    table,
		MemType:  memType,
		FileType: fileType,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Closed creates an error for an operation on a released handle
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s already closed", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
