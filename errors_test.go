// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapCollapsesNestedContext(t *testing.T) {
	inner := notEnoughBytes("utf8 bytes")
	outer := wrap("constant pool - entry 1", inner)

	var pe *ParseError
	if !errors.As(outer, &pe) {
		t.Fatalf("wrap() result is not a *ParseError")
	}
	want := "constant pool - entry 1 - utf8 bytes: not enough bytes"
	if pe.Error() != want {
		t.Fatalf("Error() = %q, want %q", pe.Error(), want)
	}
	if !errors.Is(outer, ErrNotEnoughBytes) {
		t.Fatalf("errors.Is(outer, ErrNotEnoughBytes) = false, want true")
	}
}

func TestWrapCollapsesThreeLevels(t *testing.T) {
	err := wrap("c", wrap("b", notEnoughBytes("a")))
	if !strings.Contains(err.Error(), "c - b - a: not enough bytes") {
		t.Fatalf("Error() = %q, want collapsed single-chain message", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if wrap("context", nil) != nil {
		t.Fatalf("wrap(ctx, nil) != nil")
	}
}

func TestWrapPlainSentinelStillMatchesErrorsIs(t *testing.T) {
	err := wrap("this_class", fmt.Errorf("%w: got 0xDEADBEEF", ErrBadMagic))
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("errors.Is(err, ErrBadMagic) = false, want true")
	}
}
