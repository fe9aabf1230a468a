// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Package crous implements a compact, self-describing binary encoding for a
// restricted tree of dynamically-typed values.
//
// A crous frame is a magic number, a version byte, and exactly one encoded
// value. Values are one of ten kinds: Null, Bool, Int, Float, Str, Bytes,
// List, Tuple, Dict, and Tagged. Unlike a text format, a crous frame
// distinguishes Int from Float, Str from Bytes, and List from Tuple on the
// wire, so a round trip through Encode/Decode never has to guess which of
// two compatible representations the caller meant.
package crous

import "fmt"

// Kind identifies which payload of a Value is populated.
type Kind int

// The ten value kinds understood by the codec.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindBytes
	KindList
	KindTuple
	KindDict
	KindTagged
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindBytes:
		return "Bytes"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindDict:
		return "Dict"
	case KindTagged:
		return "Tagged"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A DictEntry is one key/value pair of a Dict value. Keys are opaque byte
// sequences, typically but not necessarily UTF-8 text; the codec does not
// require uniqueness (spec.md §3), and a decoder preserves every entry in
// the order it appeared on the wire.
type DictEntry struct {
	Key   []byte
	Value *Value
}

// A Value is a node of the value tree. Exactly one payload field is valid,
// selected by Kind. Values form a strict tree: a *Value must not be
// referenced from more than one parent's List/Tuple/Dict. Because the Go
// runtime garbage collects unreachable values, there is no explicit
// teardown operation; the invariant exists purely to keep Equal, depth
// accounting, and the encoder's traversal well defined.
type Value struct {
	kind Kind

	b       bool
	i       int64
	f       float64
	s       string // Str payload; authoritative length is len(s) in bytes
	bytes   []byte
	list    []*Value // List or Tuple
	dict    []DictEntry
	tag     uint32
	tagInn  *Value
}

// Kind reports the variant of v.
func (v *Value) Kind() Kind { return v.kind }

// NewNull returns a Null value. Each call allocates a new *Value.
func NewNull() *Value { return &Value{kind: KindNull} }

// NewBool returns a Bool value.
func NewBool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// NewInt returns an Int value.
func NewInt(i int64) *Value { return &Value{kind: KindInt, i: i} }

// NewFloat returns a Float value. NaN and infinities are permitted.
func NewFloat(f float64) *Value { return &Value{kind: KindFloat, f: f} }

// NewStr returns a Str value. s is stored as-is; callers that need to
// reject non-UTF-8 text should validate before constructing the value (the
// decoder performs this validation itself on every Str it parses).
func NewStr(s string) *Value { return &Value{kind: KindStr, s: s} }

// NewBytes returns a Bytes value. The slice is not copied; callers must not
// mutate it after handing it to the codec.
func NewBytes(b []byte) *Value { return &Value{kind: KindBytes, bytes: b} }

// NewList returns a List value over elems. The slice is copied into a new
// backing array, but the *Value elements it points to are not; they must
// not be shared with any other container.
func NewList(elems []*Value) *Value {
	cp := make([]*Value, len(elems))
	copy(cp, elems)
	return &Value{kind: KindList, list: cp}
}

// NewTuple returns a Tuple value over elems, semantically distinct from
// List on the wire (spec.md §3).
func NewTuple(elems []*Value) *Value {
	cp := make([]*Value, len(elems))
	copy(cp, elems)
	return &Value{kind: KindTuple, list: cp}
}

// NewDict returns a Dict value over entries, preserving their order.
func NewDict(entries []DictEntry) *Value {
	cp := make([]DictEntry, len(entries))
	copy(cp, entries)
	return &Value{kind: KindDict, dict: cp}
}

// NewTagged returns a Tagged value wrapping inner under the 32-bit tag t.
func NewTagged(t uint32, inner *Value) *Value {
	return &Value{kind: KindTagged, tag: t, tagInn: inner}
}

// AsBool returns the Bool payload of v. It panics if v.Kind() != KindBool.
func (v *Value) AsBool() bool { v.mustBe(KindBool); return v.b }

// AsInt returns the Int payload of v. It panics if v.Kind() != KindInt.
func (v *Value) AsInt() int64 { v.mustBe(KindInt); return v.i }

// AsFloat returns the Float payload of v. It panics if v.Kind() != KindFloat.
func (v *Value) AsFloat() float64 { v.mustBe(KindFloat); return v.f }

// AsStr returns the Str payload of v. It panics if v.Kind() != KindStr.
func (v *Value) AsStr() string { v.mustBe(KindStr); return v.s }

// AsBytes returns the Bytes payload of v. It panics if v.Kind() != KindBytes.
func (v *Value) AsBytes() []byte { v.mustBe(KindBytes); return v.bytes }

// AsList returns the element slice of a List or Tuple value. It panics for
// any other kind.
func (v *Value) AsList() []*Value {
	if v.kind != KindList && v.kind != KindTuple {
		panic(fmt.Sprintf("crous: AsList on %s value", v.kind))
	}
	return v.list
}

// AsDict returns the entry slice of a Dict value. It panics if
// v.Kind() != KindDict.
func (v *Value) AsDict() []DictEntry { v.mustBe(KindDict); return v.dict }

// AsTagged returns the tag and inner value of a Tagged value. It panics if
// v.Kind() != KindTagged.
func (v *Value) AsTagged() (uint32, *Value) {
	v.mustBe(KindTagged)
	return v.tag, v.tagInn
}

func (v *Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("crous: expected %s value, got %s", k, v.kind))
	}
}

// Depth reports the nesting depth of v: 0 for a leaf, 1 + max(child depth)
// for a container. An empty container has depth 1. Encode and Decode
// reject a tree whose Depth is greater than the configured depth bound;
// they do not call Depth but check the bound incrementally during
// traversal. Depth is provided for tests and for callers that want to
// pre-flight a tree built outside the decoder.
func (v *Value) Depth() int {
	switch v.kind {
	case KindList, KindTuple:
		max := 0
		for _, c := range v.list {
			if d := c.Depth(); d > max {
				max = d
			}
		}
		return max + 1
	case KindDict:
		max := 0
		for _, e := range v.dict {
			if d := e.Value.Depth(); d > max {
				max = d
			}
		}
		return max + 1
	case KindTagged:
		return v.tagInn.Depth() + 1
	default:
		return 0
	}
}

// Equal reports whether v and other encode the same value tree. Any Float
// NaN compares equal to any other NaN (so Equal is reflexive even for
// values that fail IEEE equality); other floats use ==, matching the
// round-trip property tests of
// spec.md §8.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f || (isNaN(v.f) && isNaN(other.f))
	case KindStr:
		return v.s == other.s
	case KindBytes:
		return bytesEqual(v.bytes, other.bytes)
	case KindList, KindTuple:
		if len(v.list) != len(other.list) {
			return false
		}
		for i, c := range v.list {
			if !c.Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.dict) != len(other.dict) {
			return false
		}
		for i, e := range v.dict {
			o := other.dict[i]
			if !bytesEqual(e.Key, o.Key) || !e.Value.Equal(o.Value) {
				return false
			}
		}
		return true
	case KindTagged:
		return v.tag == other.tag && v.tagInn.Equal(other.tagInn)
	default:
		return false
	}
}

func isNaN(f float64) bool { return f != f }

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
