// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import "unicode/utf8"

// Decode parses a complete frame (magic, version, and exactly one value)
// from data and returns the decoded value tree. Decode is all-or-nothing:
// on any error the partially-built tree is discarded and only the error is
// returned (spec.md §4.4 "Recovery: None").
func Decode(data []byte) (*Value, error) {
	return DecodeWithOptions(data, Options{})
}

// DecodeWithOptions is Decode with an explicit depth bound. Tagged values
// are always kept as Tagged in the returned tree; opts.SurfaceTagged takes
// effect only when the tree is converted with HostFromValue.
func DecodeWithOptions(data []byte, opts Options) (*Value, error) {
	r := newByteReader(data)

	if r.Remaining() < 4 {
		return nil, wrapDecodeError(newKindError(KErrTruncated, "frame shorter than magic"), r.Offset())
	}
	hdr, err := r.ReadRaw(4)
	if err != nil {
		return nil, wrapDecodeError(err, r.Offset())
	}
	if hdr[0] != magicByte0 || hdr[1] != magicByte1 || hdr[2] != magicByte2 || hdr[3] != magicByte3 {
		return nil, wrapDecodeError(newKindError(KErrInvalidHeader, "bad magic"), 0)
	}
	ver, err := r.ReadU8()
	if err != nil {
		return nil, wrapDecodeError(err, r.Offset())
	}
	if ver != wireVersion {
		return nil, wrapDecodeError(newKindError(KErrInvalidHeader, "unsupported version %d", ver), 4)
	}

	dec := &decoder{r: r, depthBound: opts.depthBound()}
	v, err := dec.decodeValue(0)
	if err != nil {
		return nil, wrapDecodeError(err, r.Offset())
	}
	if r.Remaining() != 0 {
		return nil, wrapDecodeError(newKindError(KErrTrailingBytes, "%d trailing bytes", r.Remaining()), r.Offset())
	}
	return v, nil
}

// Loads is an alias for Decode (spec.md §6).
func Loads(data []byte) (*Value, error) { return Decode(data) }

type decoder struct {
	r          *byteReader
	depthBound int
}

func (d *decoder) decodeValue(depth int) (*Value, error) {
	tag, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}
	// See the matching comment in encoder.encodeValue: depth counts the
	// containers enclosing this value, so this mirrors the encoder's bound
	// check exactly and accepts the same frames it produces.
	switch tag {
	case tagList, tagTuple, tagDict, tagTagged:
		if depth+1 > d.depthBound {
			return nil, newKindError(KErrDepthExceeded, "depth %d exceeds bound %d", depth+1, d.depthBound)
		}
	}
	switch tag {
	case tagNull:
		return NewNull(), nil
	case tagBoolFalse:
		return NewBool(false), nil
	case tagBoolTrue:
		return NewBool(true), nil
	case tagInt:
		n, err := d.r.ReadVarint()
		if err != nil {
			return nil, err
		}
		return NewInt(n), nil
	case tagFloat:
		f, err := d.r.ReadF64LE()
		if err != nil {
			return nil, err
		}
		return NewFloat(f), nil
	case tagStr:
		b, err := d.readLenPrefixed()
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, newKindError(KErrInvalidUtf8, "Str payload is not valid UTF-8")
		}
		return NewStr(string(b)), nil
	case tagBytes:
		b, err := d.readLenPrefixed()
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(b))
		copy(cp, b)
		return NewBytes(cp), nil
	case tagList:
		return d.decodeSeq(KindList, depth)
	case tagTuple:
		return d.decodeSeq(KindTuple, depth)
	case tagDict:
		return d.decodeDict(depth)
	case tagTagged:
		t, err := d.r.ReadUvarint()
		if err != nil {
			return nil, err
		}
		if t > 0xFFFFFFFF {
			return nil, newKindError(KErrOverflow, "tag %d exceeds 32 bits", t)
		}
		inner, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		return NewTagged(uint32(t), inner), nil
	default:
		return nil, newKindError(KErrTagUnknown, "unknown type tag 0x%02X", tag)
	}
}

// readLenPrefixed reads an unsigned varint length L followed by L raw
// bytes, validating L against the remaining input before allocating
// (spec.md §5 "adversarial 10-byte input cannot force a 10-GiB allocation").
func (d *decoder) readLenPrefixed() ([]byte, error) {
	n, err := d.r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(d.r.Remaining()) {
		return nil, newKindError(KErrTruncated, "declared length %d exceeds remaining %d bytes", n, d.r.Remaining())
	}
	return d.r.ReadRaw(int(n))
}

func (d *decoder) decodeSeq(kind Kind, depth int) (*Value, error) {
	n, err := d.r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	// A well-formed element is at least one byte (its tag), so this check
	// rejects a hostile count before allocating a worst-case slice.
	if n > uint64(d.r.Remaining()) {
		return nil, newKindError(KErrTruncated, "declared length %d exceeds remaining %d bytes", n, d.r.Remaining())
	}
	elems := make([]*Value, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if kind == KindTuple {
		return NewTuple(elems), nil
	}
	return NewList(elems), nil
}

func (d *decoder) decodeDict(depth int) (*Value, error) {
	n, err := d.r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(d.r.Remaining()) {
		return nil, newKindError(KErrTruncated, "declared length %d exceeds remaining %d bytes", n, d.r.Remaining())
	}
	entries := make([]DictEntry, 0, n)
	for i := uint64(0); i < n; i++ {
		key, err := d.readLenPrefixed()
		if err != nil {
			return nil, err
		}
		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)
		val, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DictEntry{Key: keyCopy, Value: val})
	}
	return NewDict(entries), nil
}
