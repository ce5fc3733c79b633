package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortRead is returned when a read would pass the end of the buffer.
var ErrShortRead = errors.New("unexpected end of datastream")

// Reader walks a fully materialized datastream with position tracking and
// PNG-specific read methods. All multi-byte integers are big-endian.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over the given buffer.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.wrapError(ErrShortRead)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The returned slice is a fresh copy, so
// callers may retain it without aliasing the datastream.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, r.wrapError(ErrShortRead)
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n
	return buf, nil
}

// ReadU32 reads a big-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, r.wrapError(ErrShortRead)
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadTag reads a 4-byte ASCII chunk type tag.
func (r *Reader) ReadTag() (string, error) {
	if r.pos+4 > len(r.data) {
		return "", r.wrapError(ErrShortRead)
	}
	tag := string(r.data[r.pos : r.pos+4])
	r.pos += 4
	return tag, nil
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// ParseError represents an error during datastream parsing with position information.
type ParseError struct {
	Err      error
	Section  string
	Position int
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("png: %s at position %d: %v", e.Section, e.Position, e.Err)
	}
	return fmt.Sprintf("png: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position.
func (r *Reader) WrapError(section string, err error) error {
	return &ParseError{
		Position: r.pos,
		Section:  section,
		Err:      err,
	}
}
