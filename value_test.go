// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package crous_test

import (
	"math"
	"testing"

	"github.com/axiomchronicles/crous"
)

func TestValueAccessorsPanicOnMismatch(t *testing.T) {
	v := crous.NewInt(5)
	defer func() {
		if recover() == nil {
			t.Error("AsStr on an Int value should have panicked")
		}
	}()
	_ = v.AsStr()
}

func TestValueDepth(t *testing.T) {
	tests := []struct {
		name string
		v    *crous.Value
		want int
	}{
		{"leaf", crous.NewInt(1), 0},
		{"empty list", crous.NewList(nil), 1},
		{"nested list", crous.NewList([]*crous.Value{
			crous.NewList([]*crous.Value{crous.NewInt(1)}),
		}), 2},
		{"dict", crous.NewDict([]crous.DictEntry{
			{Key: []byte("a"), Value: crous.NewList([]*crous.Value{crous.NewInt(1)})},
		}), 2},
		{"tagged", crous.NewTagged(7, crous.NewInt(1)), 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.v.Depth(); got != test.want {
				t.Errorf("Depth() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	a := crous.NewDict([]crous.DictEntry{
		{Key: []byte("x"), Value: crous.NewFloat(math.NaN())},
	})
	b := crous.NewDict([]crous.DictEntry{
		{Key: []byte("x"), Value: crous.NewFloat(math.NaN())},
	})
	if !a.Equal(b) {
		t.Error("NaN-containing trees should compare Equal to themselves")
	}

	c := crous.NewList([]*crous.Value{crous.NewInt(1), crous.NewInt(2)})
	d := crous.NewTuple([]*crous.Value{crous.NewInt(1), crous.NewInt(2)})
	if c.Equal(d) {
		t.Error("List and Tuple with identical elements must not be Equal")
	}
}
