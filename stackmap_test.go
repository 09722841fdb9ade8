// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStackMapFrameShapes(t *testing.T) {
	tests := []struct {
		name       string
		in         []byte
		wantType   byte
		wantDelta  uint16
		wantStack  int
		wantLocals int
	}{
		{"same frame (0-63)", []byte{10}, 10, 0, 0, 0},
		{"same locals one stack item (64-127)", []byte{65, 1 /*Integer*/}, 65, 0, 1, 0},
		{"same locals one stack item extended (247)", []byte{247, 0x00, 0x05, 1}, 247, 5, 1, 0},
		{"chop (248-250)", []byte{249, 0x00, 0x07}, 249, 7, 0, 0},
		{"same frame extended (251)", []byte{251, 0x00, 0x09}, 251, 9, 0, 0},
		{"append (252-254)", []byte{252, 0x00, 0x02, 1}, 252, 2, 0, 1},
		{"full frame (255)", []byte{255, 0x00, 0x03, 0x00, 0x01, 1, 0x00, 0x01, 1}, 255, 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.in)
			f, err := parseStackMapFrame(r)
			if err != nil {
				t.Fatalf("parseStackMapFrame() failed, reason: %v", err)
			}
			if f.FrameType != tt.wantType {
				t.Fatalf("FrameType = %d, want %d", f.FrameType, tt.wantType)
			}
			if f.OffsetDelta != tt.wantDelta {
				t.Fatalf("OffsetDelta = %d, want %d", f.OffsetDelta, tt.wantDelta)
			}
			if len(f.Stack) != tt.wantStack {
				t.Fatalf("len(Stack) = %d, want %d", len(f.Stack), tt.wantStack)
			}
			if len(f.Locals) != tt.wantLocals {
				t.Fatalf("len(Locals) = %d, want %d", len(f.Locals), tt.wantLocals)
			}
			if !r.Empty() {
				t.Fatalf("Remaining() = %d, want 0 (frame must consume exactly its payload)", r.Remaining())
			}
		})
	}
}

func TestParseStackMapFrameReservedRange(t *testing.T) {
	r := NewReader([]byte{200})
	_, err := parseStackMapFrame(r)
	if !errors.Is(err, ErrBadTag) {
		t.Fatalf("parseStackMapFrame() = %v, want ErrBadTag", err)
	}
	if !strings.Contains(err.Error(), "invalid frame type 200") {
		t.Fatalf("Error() = %q, want it to mention %q", err.Error(), "invalid frame type 200")
	}
}

func TestParseVerificationTypeObjectAndUninitialized(t *testing.T) {
	v, err := parseVerificationType(NewReader([]byte{VerificationObject, 0x00, 0x07}))
	if err != nil {
		t.Fatalf("parseVerificationType() failed, reason: %v", err)
	}
	if v.Tag != VerificationObject || v.PoolIndex != 7 {
		t.Fatalf("VerificationType = %+v, want {Tag: Object, PoolIndex: 7}", v)
	}

	v, err = parseVerificationType(NewReader([]byte{VerificationUninitialized, 0x00, 0x0A}))
	if err != nil {
		t.Fatalf("parseVerificationType() failed, reason: %v", err)
	}
	if v.Tag != VerificationUninitialized || v.Offset != 10 {
		t.Fatalf("VerificationType = %+v, want {Tag: Uninitialized, Offset: 10}", v)
	}
}

func TestParseStackMapTable(t *testing.T) {
	// count=2, then two "same frame" entries (frame_type 3 and 5).
	data := []byte{0x00, 0x02, 0x03, 0x05}
	attr, err := parseStackMapTable(NewReader(data), nil)
	if err != nil {
		t.Fatalf("parseStackMapTable() failed, reason: %v", err)
	}
	smt := attr.(StackMapTable)
	if len(smt.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(smt.Frames))
	}
	if smt.Frames[0].FrameType != 3 || smt.Frames[1].FrameType != 5 {
		t.Fatalf("Frames = %+v, want frame types [3 5]", smt.Frames)
	}
}
