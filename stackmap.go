// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// Verification type tags, JVMS §4.7.4.
const (
	VerificationTop               = 0
	VerificationInteger           = 1
	VerificationFloat             = 2
	VerificationDouble            = 3
	VerificationLong              = 4
	VerificationNull              = 5
	VerificationUninitializedThis = 6
	VerificationObject            = 7
	VerificationUninitialized     = 8
)

// VerificationType is a single stack-map slot's type. Tags Object and
// Uninitialized carry a 2-byte payload (a pool index or a bytecode
// offset respectively); every other tag is atomic.
type VerificationType struct {
	Tag byte

	// PoolIndex is set only when Tag == VerificationObject.
	PoolIndex Index

	// Offset is set only when Tag == VerificationUninitialized: the
	// bytecode offset of the 'new' instruction that created the object.
	Offset uint16
}

func parseVerificationType(r *Reader) (VerificationType, error) {
	tag, err := r.U8("stack map verification type")
	if err != nil {
		return VerificationType{}, err
	}
	switch tag {
	case VerificationTop, VerificationInteger, VerificationFloat, VerificationDouble,
		VerificationLong, VerificationNull, VerificationUninitializedThis:
		return VerificationType{Tag: tag}, nil
	case VerificationObject:
		idx, err := r.U16("stack map verification type - object")
		if err != nil {
			return VerificationType{}, err
		}
		return VerificationType{Tag: tag, PoolIndex: idx}, nil
	case VerificationUninitialized:
		off, err := r.U16("stack map verification type - uninitialized")
		if err != nil {
			return VerificationType{}, err
		}
		return VerificationType{Tag: tag, Offset: off}, nil
	default:
		return VerificationType{}, fmt.Errorf("%w: invalid verification type tag %d", ErrBadTag, tag)
	}
}

// StackMapFrame is one entry of a StackMapTable, dispatched on a leading
// frame-type byte per the table in §4.6. FrameType always holds the byte
// actually read off the wire (not a synthesized canonical one).
type StackMapFrame struct {
	FrameType byte

	// OffsetDelta is set for every kind except Same and
	// SameLocalsOneStackItem, where it is implied by FrameType itself.
	OffsetDelta uint16

	// Stack holds the single verification type for
	// SameLocalsOneStackItem/Extended, and the full operand stack for
	// Full. Unused otherwise.
	Stack []VerificationType

	// Locals holds the appended locals for Append, and the full local
	// variable list for Full. Unused otherwise.
	Locals []VerificationType
}

// parseStackMapFrame decodes one frame, advancing the cursor by exactly
// the payload size the table in §4.6 implies for the frame type read.
func parseStackMapFrame(r *Reader) (StackMapFrame, error) {
	frameType, err := r.U8("stack map frame")
	if err != nil {
		return StackMapFrame{}, err
	}

	if frameType > 127 && frameType < 247 {
		return StackMapFrame{}, fmt.Errorf("%w: stack map frame - invalid frame type %d", ErrBadTag, frameType)
	}

	switch {
	case frameType <= 63:
		return StackMapFrame{FrameType: frameType}, nil

	case frameType <= 127:
		stack, err := parseVerificationType(r)
		if err != nil {
			return StackMapFrame{}, wrap("same locals one stack item", err)
		}
		return StackMapFrame{FrameType: frameType, Stack: []VerificationType{stack}}, nil

	case frameType == 247:
		delta, err := r.U16("same locals one stack item extended")
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := parseVerificationType(r)
		if err != nil {
			return StackMapFrame{}, wrap("same locals one stack item extended", err)
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: delta, Stack: []VerificationType{stack}}, nil

	case frameType <= 250:
		delta, err := r.U16("chop")
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: delta}, nil

	case frameType == 251:
		delta, err := r.U16("same frame extended")
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: delta}, nil

	case frameType <= 254:
		delta, err := r.U16("append")
		if err != nil {
			return StackMapFrame{}, err
		}
		numLocals := int(frameType) - 251
		locals := make([]VerificationType, numLocals)
		for i := 0; i < numLocals; i++ {
			locals[i], err = parseVerificationType(r)
			if err != nil {
				return StackMapFrame{}, wrap(fmt.Sprintf("append - local[%d]", i), err)
			}
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: delta, Locals: locals}, nil

	default: // 255: Full
		if err := r.Check(4, "full frame"); err != nil {
			return StackMapFrame{}, err
		}
		delta := r.u16()
		numLocals := int(r.u16())
		locals := make([]VerificationType, numLocals)
		for i := 0; i < numLocals; i++ {
			v, err := parseVerificationType(r)
			if err != nil {
				return StackMapFrame{}, wrap(fmt.Sprintf("full - local[%d]", i), err)
			}
			locals[i] = v
		}

		numStack, err := r.U16("full frame stack count")
		if err != nil {
			return StackMapFrame{}, err
		}
		stack := make([]VerificationType, numStack)
		for i := 0; i < int(numStack); i++ {
			v, err := parseVerificationType(r)
			if err != nil {
				return StackMapFrame{}, wrap(fmt.Sprintf("full - stack[%d]", i), err)
			}
			stack[i] = v
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: delta, Locals: locals, Stack: stack}, nil
	}
}

// StackMapTable is the ordered sequence of stack-map frames attached to
// a Code attribute, describing verifier state at each recorded bytecode
// offset.
type StackMapTable struct {
	Frames []StackMapFrame
}

func (StackMapTable) isAttribute() {}

func parseStackMapTable(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("stack map table length")
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, count)
	for i := 0; i < int(count); i++ {
		f, err := parseStackMapFrame(r)
		if err != nil {
			return nil, wrap(fmt.Sprintf("frame[%d]", i), err)
		}
		frames[i] = f
	}
	return StackMapTable{Frames: frames}, nil
}
