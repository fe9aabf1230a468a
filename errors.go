// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import "fmt"

// ErrKind enumerates the taxonomy of spec.md §7. The zero value, KOk,
// never appears on a returned error; it exists so ErrKind has a defined
// zero value like any other Go enum.
type ErrKind int

const (
	KOk ErrKind = iota
	KErrInvalidKind
	KErrInvalidKey
	KErrInvalidUtf8
	KErrInvalidHeader
	KErrTagUnknown
	KErrTruncated
	KErrTrailingBytes
	KErrOverflow
	KErrDepthExceeded
	KErrOutOfMemory
	KErrSyntax
	KErrStream
	KErrInternal
)

func (k ErrKind) String() string {
	switch k {
	case KOk:
		return "Ok"
	case KErrInvalidKind:
		return "InvalidKind"
	case KErrInvalidKey:
		return "InvalidKey"
	case KErrInvalidUtf8:
		return "InvalidUtf8"
	case KErrInvalidHeader:
		return "InvalidHeader"
	case KErrTagUnknown:
		return "TagUnknown"
	case KErrTruncated:
		return "Truncated"
	case KErrTrailingBytes:
		return "TrailingBytes"
	case KErrOverflow:
		return "Overflow"
	case KErrDepthExceeded:
		return "DepthExceeded"
	case KErrOutOfMemory:
		return "OutOfMemory"
	case KErrSyntax:
		return "SyntaxError"
	case KErrStream:
		return "StreamError"
	case KErrInternal:
		return "Internal"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// kindError is the low-level error value produced inside the writer,
// reader, encoder, and decoder. It is never returned to a caller of the
// public API directly: Encode/Decode wrap it in EncodeError/DecodeError so
// callers only ever need to catch those two types (spec.md §7,
// "Both derive from a common base so callers can catch either").
type kindError struct {
	kind ErrKind
	msg  string
}

func newKindError(k ErrKind, format string, args ...interface{}) *kindError {
	return &kindError{kind: k, msg: fmt.Sprintf(format, args...)}
}

func (e *kindError) Error() string { return fmt.Sprintf("%s: %s", e.kind, e.msg) }

func (e *kindError) Kind() ErrKind { return e.kind }

// A CodecError is the common base of EncodeError and DecodeError, letting
// callers catch either with a single check:
//
//	var ce crous.CodecError
//	if errors.As(err, &ce) {
//		...
//	}
type CodecError interface {
	error
	Kind() ErrKind
}

// EncodeError is returned by Encode, EncodeToSink, and host→value
// conversion failures. It carries no byte offset; Path, when non-empty,
// names the path of dict keys and list indices (for example "$.tags[1]")
// to the host value that failed to convert.
type EncodeError struct {
	kind ErrKind
	msg  string
	Path string
}

func (e *EncodeError) Kind() ErrKind { return e.kind }

func (e *EncodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("encode: %s: %s (at %s)", e.kind, e.msg, e.Path)
	}
	return fmt.Sprintf("encode: %s: %s", e.kind, e.msg)
}

func (e *EncodeError) Unwrap() error { return &kindError{kind: e.kind, msg: e.msg} }

func newEncodeError(k ErrKind, format string, args ...interface{}) *EncodeError {
	return &EncodeError{kind: k, msg: fmt.Sprintf(format, args...)}
}

func wrapEncodeError(err error) *EncodeError {
	if ke, ok := err.(*kindError); ok {
		return &EncodeError{kind: ke.kind, msg: ke.msg}
	}
	if ee, ok := err.(*EncodeError); ok {
		return ee
	}
	return &EncodeError{kind: KErrInternal, msg: err.Error()}
}

// DecodeError is returned by Decode, DecodeFromSource, and value→host
// conversion failures. Offset, when non-zero or explicitly set, is the
// byte offset within the input where the failure was detected.
type DecodeError struct {
	kind   ErrKind
	msg    string
	Offset int
}

func (e *DecodeError) Kind() ErrKind { return e.kind }

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %s (at offset %d)", e.kind, e.msg, e.Offset)
}

func (e *DecodeError) Unwrap() error { return &kindError{kind: e.kind, msg: e.msg} }

func newDecodeError(k ErrKind, offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{kind: k, msg: fmt.Sprintf(format, args...), Offset: offset}
}

func wrapDecodeError(err error, offset int) *DecodeError {
	if ke, ok := err.(*kindError); ok {
		return &DecodeError{kind: ke.kind, msg: ke.msg, Offset: offset}
	}
	if de, ok := err.(*DecodeError); ok {
		return de
	}
	return &DecodeError{kind: KErrInternal, msg: err.Error(), Offset: offset}
}
