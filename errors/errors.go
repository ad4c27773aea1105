package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // value model to wire bytes
	PhaseDecode Phase = "decode" // wire bytes to value model
)

// Kind categorizes the error
type Kind string

const (
	KindIO          Kind = "io"          // source or sink failure
	KindFormat      Kind = "format"      // malformed or truncated wire data
	KindUnsupported Kind = "unsupported" // wire data that is valid but not reconstructible
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Hint   string
	Path   []string
	Offset int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(JoinPath(e.Path))
	}

	if e.Phase == PhaseDecode {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	if e.Hint != "" {
		b.WriteString("; ")
		b.WriteString(e.Hint)
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

// JoinPath renders a breadcrumb trail. Index segments ("[3]") attach to the
// preceding segment without a dot.
func JoinPath(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
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

// Path sets the breadcrumb trail
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset where decoding failed
func (b *Builder) Offset(n int64) *Builder {
	b.err.Offset = n
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Hint sets a remediation hint appended after the detail and cause
func (b *Builder) Hint(msg string) *Builder {
	b.err.Hint = msg
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Format creates a malformed-data error at a wire position
func Format(path []string, offset int64, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: detail,
	}
}

// UnexpectedEOF creates a truncation error
func UnexpectedEOF(path []string, offset int64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: "unexpected end of input",
	}
}

// UnknownTag creates an error for a tag byte outside the registry
func UnknownTag(path []string, offset int64, tag byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("unknown tag 0x%02x", tag),
		Value:  tag,
	}
}

// ShortEnvelope creates an error for an envelope with too few fields
func ShortEnvelope(path []string, offset int64, what string, got, min int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("%s envelope has %d fields, needs at least %d", what, got, min),
		Value:  got,
	}
}

// BlankIdentity creates an error for an empty class name or module URI
func BlankIdentity(path []string, offset int64, what string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("%s is blank", what),
	}
}

// BadUnit creates an error for an unrecognized duration or data size unit
func BadUnit(path []string, offset int64, what, unit string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("unknown %s unit %q", what, unit),
		Value:  unit,
	}
}

// UnresolvedImport creates an error for a module the importer cannot supply
func UnresolvedImport(path []string, offset int64, moduleURI string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Path:   path,
		Offset: offset,
		Detail: fmt.Sprintf("unable to resolve module %q", moduleURI),
		Cause:  cause,
		Hint:   "ensure the module is registered with the decoder's importer",
	}
}

// FunctionNotDecodable creates an error for the function tag, which encodes
// but cannot be reconstructed
func FunctionNotDecodable(path []string, offset int64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnsupported,
		Path:   path,
		Offset: offset,
		Detail: "function values cannot be decoded",
	}
}

// ReadFailed creates a source failure error
func ReadFailed(offset int64, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindIO,
		Offset: offset,
		Detail: "read from input",
		Cause:  cause,
	}
}

// WriteFailed creates a sink failure error
func WriteFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindIO,
		Detail: "write to output",
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
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

// Classification helpers

// IsFormat reports whether err is a malformed-data error
func IsFormat(err error) bool {
	return isKind(err, KindFormat)
}

// IsIO reports whether err is a source or sink failure
func IsIO(err error) bool {
	return isKind(err, KindIO)
}

// IsUnsupported reports whether err is an unsupported-data error
func IsUnsupported(err error) bool {
	return isKind(err, KindUnsupported)
}

func isKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
