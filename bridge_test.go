// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous_test

import (
	"testing"

	"github.com/axiomchronicles/crous"
	"github.com/stretchr/testify/require"
)

func TestValueFromHostBuiltinKinds(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want crous.Kind
	}{
		{"nil", nil, crous.KindNull},
		{"bool", true, crous.KindBool},
		{"int", 42, crous.KindInt},
		{"int64", int64(-9), crous.KindInt},
		{"uint32", uint32(9), crous.KindInt},
		{"float64", 3.5, crous.KindFloat},
		{"string", "hi", crous.KindStr},
		{"bytes", []byte("hi"), crous.KindBytes},
		{"slice", []interface{}{1, 2}, crous.KindList},
		{"tuple", crous.Tuple{1, 2}, crous.KindTuple},
		{"map", map[string]interface{}{"a": 1}, crous.KindDict},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := crous.ValueFromHost(c.in)
			require.NoError(t, err)
			require.Equal(t, c.want, v.Kind())
		})
	}
}

func TestValueFromHostUnsupportedKind(t *testing.T) {
	_, err := crous.ValueFromHost(make(chan int))
	require.Error(t, err)
	ee, ok := err.(*crous.EncodeError)
	require.True(t, ok, "error should be *crous.EncodeError")
	require.Equal(t, crous.KErrInvalidKind, ee.Kind())
}

func TestValueFromHostNonTextMapKey(t *testing.T) {
	_, err := crous.ValueFromHost(map[int]interface{}{1: "x"})
	require.Error(t, err)
	ee, ok := err.(*crous.EncodeError)
	require.True(t, ok)
	require.Equal(t, crous.KErrInvalidKey, ee.Kind())
}

func TestValueFromHostIntOverflow(t *testing.T) {
	_, err := crous.ValueFromHost(uint64(1) << 63)
	require.Error(t, err)
	ee, ok := err.(*crous.EncodeError)
	require.True(t, ok)
	require.Equal(t, crous.KErrOverflow, ee.Kind())
}

func TestHostRoundTrip(t *testing.T) {
	in := map[string]interface{}{
		"name":   "Alice",
		"age":    int64(30),
		"active": true,
		"tags":   []interface{}{int64(1), int64(2)},
	}
	v, err := crous.ValueFromHost(in)
	require.NoError(t, err)
	data, err := crous.Encode(v)
	require.NoError(t, err)
	decoded, err := crous.Decode(data)
	require.NoError(t, err)
	out, err := crous.HostFromValue(decoded, crous.Options{})
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestTaggedDefaultUnwrap(t *testing.T) {
	v := crous.NewTagged(99, crous.NewInt(7))
	out, err := crous.HostFromValue(v, crous.Options{})
	require.NoError(t, err)
	require.Equal(t, int64(7), out)
}

func TestTaggedSurfaced(t *testing.T) {
	v := crous.NewTagged(99, crous.NewInt(7))
	out, err := crous.HostFromValue(v, crous.Options{SurfaceTagged: true})
	require.NoError(t, err)
	require.Equal(t, crous.TaggedValue{Tag: 99, Inner: int64(7)}, out)
}

func TestTupleDistinctFromListOnHost(t *testing.T) {
	v := crous.NewTuple([]*crous.Value{crous.NewInt(1)})
	out, err := crous.HostFromValue(v, crous.Options{})
	require.NoError(t, err)
	_, ok := out.(crous.Tuple)
	require.True(t, ok, "Tuple value should decode to crous.Tuple, got %T", out)
}
