// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "errors"

// Errors
var (
	// ErrNotEnoughBytes is returned when a read would run past the end of
	// the buffer.
	ErrNotEnoughBytes = errors.New("not enough bytes")

	// ErrBadMagic is returned when the first four bytes of the file are not
	// the classfile magic number 0xCAFEBABE.
	ErrBadMagic = errors.New("bad magic, not a class file")

	// ErrUnsupportedVersion is returned when the major version is outside
	// the supported window, or the minor version violates the preview rule.
	ErrUnsupportedVersion = errors.New("unsupported class file version")

	// ErrBadPoolIndex is returned when a constant pool index is zero where
	// forbidden, out of range, or does not carry the expected tag.
	ErrBadPoolIndex = errors.New("bad constant pool index")

	// ErrBadTag is returned for an unrecognised constant pool tag, element
	// value tag, verification type tag, type annotation target type, or a
	// stack map frame type in the reserved range.
	ErrBadTag = errors.New("bad tag")

	// ErrBadReferenceKind is returned when a MethodHandle's reference_kind
	// falls outside 1..9.
	ErrBadReferenceKind = errors.New("bad method handle reference kind")

	// ErrAllocation is returned when a fixed-size table's declared count
	// cannot be honored.
	ErrAllocation = errors.New("allocation failed")

	// ErrMalformed is returned when a nested structure did not consume the
	// number of bytes its own length prefix declared.
	ErrMalformed = errors.New("malformed class file")
)

// ParseError carries a human readable context chain around a sentinel
// cause, so callers can both read a message and errors.Is against the
// taxonomy in errors.go.
type ParseError struct {
	context string
	cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.context == "" {
		return e.cause.Error()
	}
	return e.context + ": " + e.cause.Error()
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As keep working
// through a chain of wrap calls.
func (e *ParseError) Unwrap() error {
	return e.cause
}

// wrap prepends context to err, collapsing nested *ParseError chains into
// a single "a - b - c: cause" message instead of "a: b: c: cause".
func wrap(context string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return &ParseError{context: context + " - " + pe.context, cause: pe.cause}
	}
	return &ParseError{context: context, cause: err}
}

// notEnoughBytes builds the single NotEnoughBytes failure mode the byte
// reader ever produces, naming what was being read when it ran out.
func notEnoughBytes(context string) error {
	return &ParseError{context: context, cause: ErrNotEnoughBytes}
}
