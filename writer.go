// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import (
	"bytes"
	"encoding/binary"
	"math"
)

// initialBufferSize is the smallest capacity a fresh byteWriter allocates,
// matching spec.md §4.1's "at least 64 bytes" requirement.
const initialBufferSize = 64

// A byteWriter accumulates the bytes of an encoded frame. It owns a single
// contiguous buffer that grows by doubling (bytes.Buffer's own growth
// policy), never truncates, and never exposes a partial result: callers
// only see Bytes() after a complete, error-free encode (see EncodeWithOptions).
type byteWriter struct {
	buf bytes.Buffer
}

func newByteWriter() *byteWriter {
	w := &byteWriter{}
	w.buf.Grow(initialBufferSize)
	return w
}

// Bytes returns the accumulated buffer contents. The caller must not write
// to the returned slice.
func (w *byteWriter) Bytes() []byte { return w.buf.Bytes() }

// Len reports the number of bytes written so far.
func (w *byteWriter) Len() int { return w.buf.Len() }

// WriteRaw appends p verbatim.
func (w *byteWriter) WriteRaw(p []byte) { w.buf.Write(p) }

// WriteU8 appends a single byte.
func (w *byteWriter) WriteU8(b byte) { w.buf.WriteByte(b) }

// WriteI64LE appends i as 8 bytes, two's complement, little-endian. The
// wire format never emits this form for Int itself (spec.md §4.3 picks
// zig-zag varint, per open question 1), but spec.md §4.1 specifies it as
// a required fixed-width writer primitive alongside u8 and f64, so it is
// implemented here for a caller that needs a raw fixed-width integer
// (for instance a future Tagged payload convention).
func (w *byteWriter) WriteI64LE(i int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	w.buf.Write(buf[:])
}

// WriteF64LE appends f as 8 bytes, IEEE 754 binary64, little-endian.
func (w *byteWriter) WriteF64LE(f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	w.buf.Write(buf[:])
}

// WriteUvarint appends v as an unsigned LEB128 varint: 7 data bits per
// byte, continuation bit (0x80) set on every byte but the last.
func (w *byteWriter) WriteUvarint(v uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	w.buf.Write(buf[:n])
}

// WriteVarint appends the zig-zag encoding of v as an unsigned varint:
// (v << 1) ^ (v >> 63), so small-magnitude negatives cost as little as
// small-magnitude positives (spec.md §4.1, confirmed against the same
// transform in the teacher's PackInt64 and in wirepb.PutInt64).
func (w *byteWriter) WriteVarint(v int64) {
	w.WriteUvarint(zigZagEncode(v))
}

func zigZagEncode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

func zigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
