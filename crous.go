// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import "io"

// A Sink accepts the bytes of an encoded frame as they become available.
// *bytes.Buffer, *os.File, and any other io.Writer satisfy Sink; SinkFunc
// adapts a plain function.
type Sink interface {
	Write(p []byte) (n int, err error)
}

// SinkFunc adapts a plain func([]byte) error into a Sink.
type SinkFunc func(p []byte) error

func (f SinkFunc) Write(p []byte) (int, error) {
	if err := f(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// EncodeToSink encodes host and writes the resulting frame to sink in a
// single call (spec.md §6). It is a convenience over Encode +
// ValueFromHost for callers that already have an io.Writer, matching the
// shape of the teacher's Encoder writing into a caller-owned
// *bytes.Buffer.
func EncodeToSink(host interface{}, sink Sink) error {
	return EncodeToSinkWithOptions(host, sink, Options{})
}

// EncodeToSinkWithOptions is EncodeToSink with explicit Options.
func EncodeToSinkWithOptions(host interface{}, sink Sink, opts Options) error {
	v, err := valueFromHost(host, "$")
	if err != nil {
		return err
	}
	data, err := EncodeWithOptions(v, opts)
	if err != nil {
		return err
	}
	if _, err := sink.Write(data); err != nil {
		return &EncodeError{kind: KErrStream, msg: err.Error()}
	}
	return nil
}

// DecodeFromSource reads a complete frame from source, decodes it, and
// converts the result to a host value via HostFromValue (spec.md §6). If
// transform is non-nil, it is applied to the decoded Value tree before
// the host conversion, letting a caller intercept or rewrite the tree
// (for example to implement a custom Tagged interpretation without a
// process-wide RegisterTagDecoder entry).
func DecodeFromSource(source io.Reader, transform func(*Value) (*Value, error)) (interface{}, error) {
	return DecodeFromSourceWithOptions(source, transform, Options{})
}

// DecodeFromSourceWithOptions is DecodeFromSource with explicit Options.
func DecodeFromSourceWithOptions(source io.Reader, transform func(*Value) (*Value, error), opts Options) (interface{}, error) {
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, &DecodeError{kind: KErrStream, msg: err.Error()}
	}
	v, err := DecodeWithOptions(data, opts)
	if err != nil {
		return nil, err
	}
	if transform != nil {
		v, err = transform(v)
		if err != nil {
			return nil, wrapDecodeError(err, len(data))
		}
	}
	return HostFromValue(v, opts)
}
