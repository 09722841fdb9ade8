// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestParseCodeMinimal(t *testing.T) {
	// max_stack=1, max_locals=1, code_length=1, code=[0xB1 (return)],
	// exception_table_length=0, attributes_count=0.
	data := []byte{
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01, 0xB1,
		0x00, 0x00,
		0x00, 0x00,
	}
	attr, err := parseCode(NewReader(data), nil)
	if err != nil {
		t.Fatalf("parseCode() failed, reason: %v", err)
	}
	code := attr.(Code)
	if code.MaxStack != 1 || code.MaxLocals != 1 {
		t.Fatalf("MaxStack/MaxLocals = %d/%d, want 1/1", code.MaxStack, code.MaxLocals)
	}
	if len(code.CodeBytes) != 1 || code.CodeBytes[0] != 0xB1 {
		t.Fatalf("CodeBytes = % x, want [b1]", code.CodeBytes)
	}
	if len(code.ExceptionTable) != 0 {
		t.Fatalf("len(ExceptionTable) = %d, want 0", len(code.ExceptionTable))
	}
	if _, ok := code.StackMapTable(); ok {
		t.Fatalf("StackMapTable() ok = true, want false (none attached)")
	}
}

func TestParseCodeExceptionTable(t *testing.T) {
	data := []byte{
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01, 0xB1,
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x02, 0x00, 0x03, // start=0 end=1 handler=2 catch=3
		0x00, 0x00,
	}
	attr, err := parseCode(NewReader(data), nil)
	if err != nil {
		t.Fatalf("parseCode() failed, reason: %v", err)
	}
	code := attr.(Code)
	if len(code.ExceptionTable) != 1 {
		t.Fatalf("len(ExceptionTable) = %d, want 1", len(code.ExceptionTable))
	}
	h := code.ExceptionTable[0]
	if h.StartPC != 0 || h.EndPC != 1 || h.HandlerPC != 2 || h.CatchType != 3 {
		t.Fatalf("ExceptionHandler = %+v, want {0 1 2 3}", h)
	}
}

func TestParseCodeDuplicateStackMapTableOverwrites(t *testing.T) {
	ctx := ctxWithOneUtf8("StackMapTable")
	// max_stack=0, max_locals=0, code_length=1, code=[0x00], no exceptions,
	// attributes_count=2, both named StackMapTable (name_index=1): the
	// first carries one frame (a 0x00 same_frame), the second is empty.
	// The second occurrence must win.
	data := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01, 0x00,
		0x00, 0x00,
		0x00, 0x02,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x03, 0x00, 0x01, 0x00,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00,
	}
	attr, err := parseCode(NewReader(data), ctx)
	if err != nil {
		t.Fatalf("parseCode() failed, reason: %v", err)
	}
	code := attr.(Code)
	if len(code.Attributes) != 1 {
		t.Fatalf("len(Attributes) = %d, want 1 (second StackMapTable overwrites the first)", len(code.Attributes))
	}
	smt, ok := code.StackMapTable()
	if !ok {
		t.Fatalf("StackMapTable() ok = false, want true")
	}
	if len(smt.Frames) != 0 {
		t.Fatalf("len(Frames) = %d, want 0 (the surviving occurrence is the empty second one)", len(smt.Frames))
	}
}
