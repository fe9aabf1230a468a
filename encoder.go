// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

const (
	magicByte0 = 0x43
	magicByte1 = 0x52
	magicByte2 = 0x4F
	magicByte3 = 0x55
	wireVersion = 0x02
)

// Magic is the four-byte identifier that begins every frame.
var Magic = [4]byte{magicByte0, magicByte1, magicByte2, magicByte3}

// Wire tags, spec.md §4.3.
const (
	tagNull      = 0x00
	tagBoolFalse = 0x01
	tagBoolTrue  = 0x02
	tagInt       = 0x03
	tagFloat     = 0x04
	tagStr       = 0x05
	tagBytes     = 0x06
	tagList      = 0x07
	tagTuple     = 0x08
	tagDict      = 0x09
	tagTagged    = 0x0A
)

// DefaultDepthBound is the depth bound used when an Options value does not
// set one explicitly (spec.md §9, "256 is a reasonable starting point").
const DefaultDepthBound = 256

// Options configures a single Encode or Decode call. The zero value is
// usable: DepthBound is treated as DefaultDepthBound, and SurfaceTagged is
// false (unregistered Tagged values are unwrapped to their inner value,
// matching the source's historical behavior per spec.md §9 quirk 2).
type Options struct {
	// DepthBound caps container nesting depth. Zero means
	// DefaultDepthBound.
	DepthBound int

	// SurfaceTagged, when true, causes the bridge to return
	// TaggedValue{Tag, Inner} for Tagged values with no registered
	// decoder, instead of silently unwrapping to Inner.
	SurfaceTagged bool
}

func (o Options) depthBound() int {
	if o.DepthBound <= 0 {
		return DefaultDepthBound
	}
	return o.DepthBound
}

// Encode serializes v into a complete frame: magic, version, and the
// encoding of v per spec.md §4.3. It never returns a partial frame: on
// error the returned slice is nil.
func Encode(v *Value) ([]byte, error) {
	return EncodeWithOptions(v, Options{})
}

// EncodeWithOptions is Encode with an explicit depth bound.
func EncodeWithOptions(v *Value, opts Options) ([]byte, error) {
	w := newByteWriter()
	w.WriteU8(magicByte0)
	w.WriteU8(magicByte1)
	w.WriteU8(magicByte2)
	w.WriteU8(magicByte3)
	w.WriteU8(wireVersion)

	enc := &encoder{w: w, depthBound: opts.depthBound()}
	if err := enc.encodeValue(v, 0); err != nil {
		return nil, wrapEncodeError(err)
	}
	return w.Bytes(), nil
}

// Dumps is an alias for Encode (spec.md §6).
func Dumps(v *Value) ([]byte, error) { return Encode(v) }

type encoder struct {
	w          *byteWriter
	depthBound int
}

func (e *encoder) encodeValue(v *Value, depth int) error {
	// depth is the number of containers (List, Tuple, Dict, Tagged)
	// enclosing v. Entering a container raises the nesting level to
	// depth+1, which must not exceed the bound, so a tree is rejected
	// exactly when its Depth() is greater than the bound.
	switch v.Kind() {
	case KindList, KindTuple, KindDict, KindTagged:
		if depth+1 > e.depthBound {
			return newKindError(KErrDepthExceeded, "depth %d exceeds bound %d", depth+1, e.depthBound)
		}
	}
	switch v.Kind() {
	case KindNull:
		e.w.WriteU8(tagNull)
		return nil
	case KindBool:
		if v.AsBool() {
			e.w.WriteU8(tagBoolTrue)
		} else {
			e.w.WriteU8(tagBoolFalse)
		}
		return nil
	case KindInt:
		e.w.WriteU8(tagInt)
		e.w.WriteVarint(v.AsInt())
		return nil
	case KindFloat:
		e.w.WriteU8(tagFloat)
		e.w.WriteF64LE(v.AsFloat())
		return nil
	case KindStr:
		s := v.AsStr()
		e.w.WriteU8(tagStr)
		e.w.WriteUvarint(uint64(len(s)))
		e.w.WriteRaw([]byte(s))
		return nil
	case KindBytes:
		b := v.AsBytes()
		e.w.WriteU8(tagBytes)
		e.w.WriteUvarint(uint64(len(b)))
		e.w.WriteRaw(b)
		return nil
	case KindList:
		return e.encodeSeq(tagList, v.AsList(), depth)
	case KindTuple:
		return e.encodeSeq(tagTuple, v.AsList(), depth)
	case KindDict:
		return e.encodeDict(v.AsDict(), depth)
	case KindTagged:
		t, inner := v.AsTagged()
		e.w.WriteU8(tagTagged)
		e.w.WriteUvarint(uint64(t))
		return e.encodeValue(inner, depth+1)
	default:
		return newKindError(KErrInvalidKind, "unrepresentable value kind %s", v.Kind())
	}
}

func (e *encoder) encodeSeq(tag byte, elems []*Value, depth int) error {
	e.w.WriteU8(tag)
	e.w.WriteUvarint(uint64(len(elems)))
	for _, c := range elems {
		if err := e.encodeValue(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeDict(entries []DictEntry, depth int) error {
	e.w.WriteU8(tagDict)
	e.w.WriteUvarint(uint64(len(entries)))
	for _, ent := range entries {
		e.w.WriteUvarint(uint64(len(ent.Key)))
		e.w.WriteRaw(ent.Key)
		if err := e.encodeValue(ent.Value, depth+1); err != nil {
			return err
		}
	}
	return nil
}
