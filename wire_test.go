// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import (
	"math"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, 1 << 35, math.MaxUint64}
	for _, v := range values {
		w := newByteWriter()
		w.WriteUvarint(v)
		r := newByteReader(w.Bytes())
		got, err := r.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d): unexpected error: %v", v, err)
		}
		if got != v {
			t.Errorf("ReadUvarint round-trip: got %d, want %d", got, v)
		}
		if r.Remaining() != 0 {
			t.Errorf("ReadUvarint left %d unread bytes", r.Remaining())
		}
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, math.MinInt64, math.MaxInt64, -33, 29, 30, -32, 28}
	for _, v := range values {
		w := newByteWriter()
		w.WriteVarint(v)
		r := newByteReader(w.Bytes())
		got, err := r.ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint(%d): unexpected error: %v", v, err)
		}
		if got != v {
			t.Errorf("ReadVarint round-trip: got %d, want %d", got, v)
		}
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	// 10 bytes, all with the continuation bit set: never terminates.
	data := make([]byte, 10)
	for i := range data {
		data[i] = 0xFF
	}
	r := newByteReader(data)
	if _, err := r.ReadUvarint(); err == nil {
		t.Fatal("ReadUvarint on a non-terminating varint should fail")
	} else if ke, ok := err.(*kindError); !ok || ke.Kind() != KErrOverflow {
		t.Errorf("ReadUvarint error = %v, want Overflow", err)
	}
}

func TestReadUvarintTruncated(t *testing.T) {
	// High bit set, but no further bytes: truncated mid-varint.
	r := newByteReader([]byte{0x80})
	if _, err := r.ReadUvarint(); err == nil {
		t.Fatal("ReadUvarint on a truncated varint should fail")
	} else if ke, ok := err.(*kindError); !ok || ke.Kind() != KErrTruncated {
		t.Errorf("ReadUvarint error = %v, want Truncated", err)
	}
}

func TestReadRawBoundsCheck(t *testing.T) {
	r := newByteReader([]byte{1, 2, 3})
	if _, err := r.ReadRaw(4); err == nil {
		t.Fatal("ReadRaw beyond the buffer should fail")
	} else if ke, ok := err.(*kindError); !ok || ke.Kind() != KErrTruncated {
		t.Errorf("ReadRaw error = %v, want Truncated", err)
	}
	if _, err := r.ReadRaw(3); err != nil {
		t.Fatalf("ReadRaw within bounds failed: %v", err)
	}
}

func TestF64RoundTrip(t *testing.T) {
	values := []float64{0, 1, -1, math.Inf(1), math.Inf(-1), math.NaN(), math.SmallestNonzeroFloat64}
	for _, v := range values {
		w := newByteWriter()
		w.WriteF64LE(v)
		r := newByteReader(w.Bytes())
		got, err := r.ReadF64LE()
		if err != nil {
			t.Fatalf("ReadF64LE: unexpected error: %v", err)
		}
		if got != v && !(math.IsNaN(got) && math.IsNaN(v)) {
			t.Errorf("ReadF64LE round-trip: got %v, want %v", got, v)
		}
	}
}

func TestI64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, math.MinInt64, math.MaxInt64, 1 << 40, -(1 << 40)}
	for _, v := range values {
		w := newByteWriter()
		w.WriteI64LE(v)
		r := newByteReader(w.Bytes())
		got, err := r.ReadI64LE()
		if err != nil {
			t.Fatalf("ReadI64LE(%d): unexpected error: %v", v, err)
		}
		if got != v {
			t.Errorf("ReadI64LE round-trip: got %d, want %d", got, v)
		}
		if r.Remaining() != 0 {
			t.Errorf("ReadI64LE left %d unread bytes", r.Remaining())
		}
	}
}

func TestInitialBufferSize(t *testing.T) {
	w := newByteWriter()
	if w.buf.Cap() < initialBufferSize {
		t.Errorf("initial buffer capacity = %d, want >= %d", w.buf.Cap(), initialBufferSize)
	}
}
