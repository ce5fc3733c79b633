package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // chunk stream framing
	PhaseDecode   Phase = "decode"   // scanline reconstruction
	PhaseEncode   Phase = "encode"   // filtering and chunk assembly
	PhaseValidate Phase = "validate" // header constraint checks
	PhaseInflate  Phase = "inflate"  // IDAT decompression
	PhaseDeflate  Phase = "deflate"  // IDAT compression
)

// Kind categorizes the error
type Kind string

const (
	KindBadSignature      Kind = "bad_signature"
	KindTruncated         Kind = "truncated"
	KindMissingTerminator Kind = "missing_terminator"
	KindChecksumMismatch  Kind = "checksum_mismatch"
	KindUnsupportedHeader Kind = "unsupported_header"
	KindUnknownFilter     Kind = "unknown_filter"
	KindCorruptStream     Kind = "corrupt_stream"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Chunk  string // chunk type tag, when the error concerns one chunk
	Field  string // header field name, for unsupported header errors
	Want   any
	Got    any
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Chunk != "" {
		b.WriteString(" in chunk ")
		b.WriteString(e.Chunk)
	}
	if e.Field != "" {
		b.WriteString(" at field ")
		b.WriteString(e.Field)
	}

	if e.Want != nil || e.Got != nil {
		b.WriteString(": ")
		if e.Want != nil && e.Got != nil {
			fmt.Fprintf(&b, "want %v, got %v", e.Want, e.Got)
		} else if e.Want != nil {
			fmt.Fprintf(&b, "want %v", e.Want)
		} else {
			fmt.Fprintf(&b, "got %v", e.Got)
		}
	}

	if e.Detail != "" {
		if e.Want != nil || e.Got != nil {
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

// Chunk sets the chunk type tag
func (b *Builder) Chunk(tag string) *Builder {
	b.err.Chunk = tag
	return b
}

// Field sets the header field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Want sets the expected value
func (b *Builder) Want(v any) *Builder {
	b.err.Want = v
	return b
}

// Got sets the actual value
func (b *Builder) Got(v any) *Builder {
	b.err.Got = v
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

// BadSignature creates an error for a datastream that does not start with the
// PNG signature bytes.
func BadSignature(got []byte) *Error {
	preview := got
	if len(preview) > 8 {
		preview = preview[:8]
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindBadSignature,
		Detail: fmt.Sprintf("first bytes % x do not match the PNG signature", preview),
	}
}

// Truncated creates an error for a chunk whose declared length reads past the
// end of the datastream.
func Truncated(tag string, declared uint32, remaining int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindTruncated,
		Chunk:  tag,
		Detail: fmt.Sprintf("declared length %d exceeds %d remaining bytes", declared, remaining),
	}
}

// MissingTerminator creates an error for a chunk stream that ends without IEND.
func MissingTerminator() *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMissingTerminator,
		Detail: "datastream fully read without an IEND chunk",
	}
}

// ChecksumMismatch creates an error for a chunk whose stored CRC does not match
// the CRC computed over its type tag and payload.
func ChecksumMismatch(tag string, length uint32, want, got uint32) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindChecksumMismatch,
		Chunk:  tag,
		Want:   fmt.Sprintf("%#08x", want),
		Got:    fmt.Sprintf("%#08x", got),
		Detail: fmt.Sprintf("chunk length %d", length),
	}
}

// UnsupportedHeader creates an error for an IHDR field outside the supported subset.
func UnsupportedHeader(field string, want, got any) *Error {
	return &Error{
		Phase: PhaseValidate,
		Kind:  KindUnsupportedHeader,
		Field: field,
		Want:  want,
		Got:   got,
	}
}

// UnknownFilter creates an error for a scanline filter tag outside 0..4.
func UnknownFilter(row int, tag byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownFilter,
		Got:    tag,
		Detail: fmt.Sprintf("row %d", row),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
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
