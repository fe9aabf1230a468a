// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// Tuple marks a Go slice as an ordered, fixed sequence that must be
// encoded as a wire Tuple rather than a List (spec.md §4.5, "ordered
// immutable fixed sequence"). Go has no immutable-slice type, so Tuple is
// a distinguished named type the bridge recognizes by reflection; callers
// opt in by converting a []interface{} to crous.Tuple before calling
// ValueFromHost/Encode.
type Tuple []interface{}

// TaggedValue is the host-side representation of a Tagged value whose tag
// has no registered decoder, when Options.SurfaceTagged is true. When
// SurfaceTagged is false (the default), such a value is unwrapped to
// Inner instead (spec.md §9 quirk 2).
type TaggedValue struct {
	Tag   uint32
	Inner interface{}
}

// ValueFromHost converts a Go value into a Value tree, the host→value half
// of the bridge (spec.md §4.5). Supported kinds are nil, bool, every
// built-in signed/unsigned integer kind (must fit in int64), float32/
// float64, string, []byte, crous.Tuple, any other slice or array kind
// (encoded as List), any map kind (encoded as Dict; keys MUST be text —
// a string, or a type whose underlying kind is string, per spec.md §4.5
// table), crous.TaggedValue, and *Value (passed through unchanged). Any
// other kind returns InvalidKind naming the Go type.
func ValueFromHost(v interface{}) (*Value, error) {
	return valueFromHost(v, "$")
}

func valueFromHost(v interface{}, path string) (*Value, error) {
	switch t := v.(type) {
	case nil:
		return NewNull(), nil
	case *Value:
		return t, nil
	case bool:
		return NewBool(t), nil
	case string:
		if !utf8.ValidString(t) {
			return nil, newEncodeError(KErrInvalidUtf8, "string at %s is not valid UTF-8", path).withPath(path)
		}
		return NewStr(t), nil
	case []byte:
		return NewBytes(t), nil
	case TaggedValue:
		inner, err := valueFromHost(t.Inner, path)
		if err != nil {
			return nil, err
		}
		return NewTagged(t.Tag, inner), nil
	}

	if ok, iv, err := tryMarshalInt(v); ok {
		if err != nil {
			return nil, newEncodeError(KErrOverflow, "%s: %v", path, err).withPath(path)
		}
		return NewInt(iv), nil
	}
	if ok, fv := tryMarshalFloat(v); ok {
		return NewFloat(fv), nil
	}

	if fn, ok := lookupSerializer(v); ok {
		val, err := fn(v)
		if err != nil {
			return nil, newEncodeError(KErrInvalidKind, "custom serializer for %T failed: %v", v, err).withPath(path)
		}
		return val, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if _, isTuple := v.(Tuple); isTuple {
			return marshalSeq(rv, path, true)
		}
		return marshalSeq(rv, path, false)
	case reflect.Map:
		return marshalMap(rv, path)
	case reflect.Ptr:
		if rv.IsNil() {
			return NewNull(), nil
		}
		return valueFromHost(rv.Elem().Interface(), path)
	}

	return nil, newEncodeError(KErrInvalidKind, "value of type %T cannot be encoded", v).withPath(path)
}

func tryMarshalInt(v interface{}) (ok bool, n int64, err error) {
	switch t := v.(type) {
	case int:
		return true, int64(t), nil
	case int8:
		return true, int64(t), nil
	case int16:
		return true, int64(t), nil
	case int32:
		return true, int64(t), nil
	case int64:
		return true, t, nil
	case uint:
		if uint64(t) > 1<<63-1 {
			return true, 0, fmt.Errorf("uint value %d overflows int64", t)
		}
		return true, int64(t), nil
	case uint8:
		return true, int64(t), nil
	case uint16:
		return true, int64(t), nil
	case uint32:
		return true, int64(t), nil
	case uint64:
		if t > 1<<63-1 {
			return true, 0, fmt.Errorf("uint64 value %d overflows int64", t)
		}
		return true, int64(t), nil
	}
	return false, 0, nil
}

func tryMarshalFloat(v interface{}) (ok bool, f float64) {
	switch t := v.(type) {
	case float32:
		return true, float64(t)
	case float64:
		return true, t
	}
	return false, 0
}

func marshalSeq(rv reflect.Value, path string, tuple bool) (*Value, error) {
	elems := make([]*Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ev, err := valueFromHost(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		elems[i] = ev
	}
	if tuple {
		return NewTuple(elems), nil
	}
	return NewList(elems), nil
}

func marshalMap(rv reflect.Value, path string) (*Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, newEncodeError(KErrInvalidKey, "map key type %s is not text", rv.Type().Key()).withPath(path)
	}
	keys := rv.MapKeys()
	entries := make([]DictEntry, 0, len(keys))
	for _, k := range keys {
		keyStr := k.String()
		vv, err := valueFromHost(rv.MapIndex(k).Interface(), fmt.Sprintf("%s.%s", path, keyStr))
		if err != nil {
			return nil, err
		}
		entries = append(entries, DictEntry{Key: []byte(keyStr), Value: vv})
	}
	return NewDict(entries), nil
}

// HostFromValue converts a Value tree into a Go value, the value→host
// half of the bridge (spec.md §4.5). Null becomes nil, Bool a bool, Int
// an int64, Float a float64, Str a string, Bytes a []byte, List a
// []interface{}, Tuple a crous.Tuple, and Dict a map[string]interface{}
// with keys UTF-8-decoded from their wire bytes. A Tagged value with a
// registered tag decoder is converted by that decoder; otherwise it is
// unwrapped to its inner value, or surfaced as a TaggedValue when
// opts.SurfaceTagged is true.
func HostFromValue(v *Value, opts Options) (interface{}, error) {
	return hostFromValue(v, opts, 0)
}

func hostFromValue(v *Value, opts Options, offset int) (interface{}, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.AsBool(), nil
	case KindInt:
		return v.AsInt(), nil
	case KindFloat:
		return v.AsFloat(), nil
	case KindStr:
		return v.AsStr(), nil
	case KindBytes:
		return v.AsBytes(), nil
	case KindList:
		elems := v.AsList()
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			hv, err := hostFromValue(e, opts, offset)
			if err != nil {
				return nil, err
			}
			out[i] = hv
		}
		return out, nil
	case KindTuple:
		elems := v.AsList()
		out := make(Tuple, len(elems))
		for i, e := range elems {
			hv, err := hostFromValue(e, opts, offset)
			if err != nil {
				return nil, err
			}
			out[i] = hv
		}
		return out, nil
	case KindDict:
		entries := v.AsDict()
		out := make(map[string]interface{}, len(entries))
		for _, e := range entries {
			if !utf8.Valid(e.Key) {
				return nil, newDecodeError(KErrInvalidUtf8, offset, "dict key is not valid UTF-8")
			}
			hv, err := hostFromValue(e.Value, opts, offset)
			if err != nil {
				return nil, err
			}
			out[string(e.Key)] = hv
		}
		return out, nil
	case KindTagged:
		tag, inner := v.AsTagged()
		if fn, ok := lookupTagDecoder(tag); ok {
			hv, err := fn(inner)
			if err != nil {
				return nil, newDecodeError(KErrInvalidKind, offset, "custom tag decoder for %d failed: %v", tag, err)
			}
			return hv, nil
		}
		if opts.SurfaceTagged {
			innerHost, err := hostFromValue(inner, opts, offset)
			if err != nil {
				return nil, err
			}
			return TaggedValue{Tag: tag, Inner: innerHost}, nil
		}
		return hostFromValue(inner, opts, offset)
	default:
		return nil, newDecodeError(KErrInternal, offset, "unhandled value kind %s", v.Kind())
	}
}

func (e *EncodeError) withPath(path string) *EncodeError {
	e.Path = path
	return e
}
