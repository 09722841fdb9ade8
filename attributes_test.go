// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

// poolWithOneUtf8 builds a single-entry constant pool whose slot 1 is the
// Utf8 text given, for attribute-family tests that only need to resolve an
// attribute name.
func poolWithOneUtf8(text string) *ConstantPool {
	data := append([]byte{0x00, 0x02, 0x01}, 0, byte(len(text)))
	data = append(data, []byte(text)...)
	pool, err := parseConstantPool(NewReader(data), false)
	if err != nil {
		panic(err)
	}
	return pool
}

// ctxWithOneUtf8 builds an attrContext around a single-entry pool whose
// slot 1 is the Utf8 text given, for attribute-family tests.
func ctxWithOneUtf8(text string) *attrContext {
	return newAttrContext(poolWithOneUtf8(text), nil, 0)
}

func TestParseOneAttributeRawFallback(t *testing.T) {
	ctx := ctxWithOneUtf8("MadeUpAttribute")
	// name_index=1, length=2, body=[0xAA, 0xBB]
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB}
	entry, err := parseOneAttribute(NewReader(data), ctx, map[string]attributeParser{})
	if err != nil {
		t.Fatalf("parseOneAttribute() failed, reason: %v", err)
	}
	if entry.Name != "MadeUpAttribute" {
		t.Fatalf("Name = %q, want %q", entry.Name, "MadeUpAttribute")
	}
	raw, ok := entry.Value.(RawAttribute)
	if !ok {
		t.Fatalf("Value is %T, want RawAttribute", entry.Value)
	}
	if len(raw.Info) != 2 || raw.Info[0] != 0xAA || raw.Info[1] != 0xBB {
		t.Fatalf("Info = % x, want [aa bb]", raw.Info)
	}
}

func TestParseOneAttributeLengthMismatch(t *testing.T) {
	ctx := ctxWithOneUtf8("Deprecated")
	// Deprecated carries zero bytes of body, but declares length=1.
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00}
	known := map[string]attributeParser{AttrDeprecated: parseDeprecated}
	_, err := parseOneAttribute(NewReader(data), ctx, known)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("parseOneAttribute() = %v, want ErrMalformed", err)
	}
}

func TestParseOneAttributeLengthOverLimit(t *testing.T) {
	ctx := ctxWithOneUtf8("MadeUpAttribute")
	ctx.maxLength = 4
	// declared length=5, over the 4-byte cap; the check fires before the
	// body is even read, so no body bytes are needed.
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x05}
	_, err := parseOneAttribute(NewReader(data), ctx, map[string]attributeParser{})
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("parseOneAttribute() = %v, want ErrAllocation", err)
	}
}

func TestParseAttributesCount(t *testing.T) {
	ctx := ctxWithOneUtf8("Deprecated")
	// attributes_count=1, then one Deprecated attribute (length=0).
	data := []byte{0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}
	known := map[string]attributeParser{AttrDeprecated: parseDeprecated}
	entries, err := parseAttributes(NewReader(data), ctx, known)
	if err != nil {
		t.Fatalf("parseAttributes() failed, reason: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Name != "Deprecated" {
		t.Fatalf("entries[0].Name = %q, want %q", entries[0].Name, "Deprecated")
	}
}

func TestParseAttributesDuplicateOverwrites(t *testing.T) {
	ctx := ctxWithOneUtf8("Deprecated")
	// attributes_count=2: two Deprecated entries back to back. The
	// documented policy is overwrite-and-warn, not a hard parse failure.
	data := []byte{
		0x00, 0x02,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
	}
	known := map[string]attributeParser{AttrDeprecated: parseDeprecated}
	entries, err := parseAttributes(NewReader(data), ctx, known)
	if err != nil {
		t.Fatalf("parseAttributes() failed, reason: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (second occurrence overwrites the first)", len(entries))
	}
	if entries[0].Name != "Deprecated" {
		t.Fatalf("entries[0].Name = %q, want %q", entries[0].Name, "Deprecated")
	}
}
