// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestIntegerFromBytes(t *testing.T) {
	if got := integerFromBytes(0xFFFFFFFF); got.Value != -1 {
		t.Fatalf("integerFromBytes(0xFFFFFFFF).Value = %d, want -1", got.Value)
	}
	if got := integerFromBytes(42); got.Value != 42 {
		t.Fatalf("integerFromBytes(42).Value = %d, want 42", got.Value)
	}
}

func TestFloatFromBytes(t *testing.T) {
	// 1.0f is 0x3F800000 in IEEE 754 single precision.
	if got := floatFromBytes(0x3F800000); got.Value != 1.0 {
		t.Fatalf("floatFromBytes(0x3F800000).Value = %v, want 1.0", got.Value)
	}
}

func TestLongFromBytes(t *testing.T) {
	got := longFromBytes(0x00000001, 0x00000002)
	if got.Value != 4294967298 {
		t.Fatalf("longFromBytes(1, 2).Value = %d, want 4294967298", got.Value)
	}
}

func TestDoubleFromBytes(t *testing.T) {
	// 1.0 is 0x3FF0000000000000 in IEEE 754 double precision.
	got := doubleFromBytes(0x3FF00000, 0x00000000)
	if got.Value != 1.0 {
		t.Fatalf("doubleFromBytes(0x3FF00000, 0).Value = %v, want 1.0", got.Value)
	}
}
