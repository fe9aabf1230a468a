// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous

import (
	"fmt"
	"sync"
)

// SerializerFunc converts a host value of some registered kind into a
// Value. The bridge looks it up after its built-in cases for nil, *Value,
// bool, string, []byte, TaggedValue, integers, and floats fail to match v,
// but before its reflection-based handling of slices, arrays, maps, and
// pointers, so a registered serializer takes precedence for those kinds
// (spec.md §9 design notes: "the codec hot path does a single lookup per
// unknown kind").
type SerializerFunc func(v interface{}) (*Value, error)

// TagDecoderFunc converts the inner value of a Tagged value with a known
// tag into a host value, bypassing the bridge's default unwrap-or-surface
// behavior for that tag.
type TagDecoderFunc func(inner *Value) (interface{}, error)

var registryMu sync.RWMutex
var serializers = map[string]SerializerFunc{}
var tagDecoders = map[uint32]TagDecoderFunc{}

// RegisterSerializer installs fn as the conversion callback for host
// values whose Go type name (as produced by fmt.Sprintf("%T", v)) equals
// kind. Registration replaces any existing entry for kind. Safe to call
// concurrently with Encode/ValueFromHost (spec.md §5: registration
// mutates, hot-path encoding only reads, both under a single RWMutex).
func RegisterSerializer(kind string, fn SerializerFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	serializers[kind] = fn
}

// UnregisterSerializer removes the conversion callback for kind, if any.
func UnregisterSerializer(kind string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(serializers, kind)
}

// RegisterTagDecoder installs fn as the conversion callback for Tagged
// values carrying the 32-bit tag t. Registration replaces any existing
// entry for t.
func RegisterTagDecoder(t uint32, fn TagDecoderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	tagDecoders[t] = fn
}

// UnregisterTagDecoder removes the conversion callback for tag t, if any.
func UnregisterTagDecoder(t uint32) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(tagDecoders, t)
}

func lookupSerializer(v interface{}) (SerializerFunc, bool) {
	kind := fmt.Sprintf("%T", v)
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := serializers[kind]
	return fn, ok
}

func lookupTagDecoder(t uint32) (TagDecoderFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := tagDecoders[t]
	return fn, ok
}
