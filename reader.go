// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "encoding/binary"

// Reader is a cursor over a borrowed byte range. It decodes unaligned
// big-endian values and never grows or copies the underlying buffer except
// on explicit Bytes reads. The cursor is monotonically non-decreasing and
// never exceeds len(buf) after a successful operation.
//
// Every decode comes in a safe/fast pair: the safe form bounds-checks and
// returns ErrNotEnoughBytes on failure, the fast form assumes a matching
// Check already ran. Parsers call Check once per logical record, then use
// the fast reads for the fields that record declares.
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps buf for sequential big-endian decoding starting at
// offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Check verifies n more bytes are available, returning a NotEnoughBytes
// error naming context on failure. It has no side effect on the cursor.
func (r *Reader) Check(n int, context string) error {
	if n < 0 || n > len(r.buf)-r.off {
		return notEnoughBytes(context)
	}
	return nil
}

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Empty reports whether the cursor has reached the end of the buffer.
func (r *Reader) Empty() bool {
	return r.Remaining() == 0
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.off
}

// U8 reads one byte, bounds-checked.
func (r *Reader) U8(context string) (uint8, error) {
	if err := r.Check(1, context); err != nil {
		return 0, err
	}
	return r.u8(), nil
}

// u8 reads one byte assuming the caller already checked bounds.
func (r *Reader) u8() uint8 {
	v := r.buf[r.off]
	r.off++
	return v
}

// U16 reads a big-endian u16, bounds-checked.
func (r *Reader) U16(context string) (uint16, error) {
	if err := r.Check(2, context); err != nil {
		return 0, err
	}
	return r.u16(), nil
}

// u16 reads a big-endian u16 assuming the caller already checked bounds.
func (r *Reader) u16() uint16 {
	v := binary.BigEndian.Uint16(r.buf[r.off : r.off+2])
	r.off += 2
	return v
}

// U32 reads a big-endian u32, bounds-checked. This always reads the full
// four bytes; a known bug in the reference decoder this reader is modeled
// after only guarantees three.
func (r *Reader) U32(context string) (uint32, error) {
	if err := r.Check(4, context); err != nil {
		return 0, err
	}
	return r.u32(), nil
}

// u32 reads a big-endian u32 assuming the caller already checked bounds.
func (r *Reader) u32() uint32 {
	v := binary.BigEndian.Uint32(r.buf[r.off : r.off+4])
	r.off += 4
	return v
}

// U16Slice reads n big-endian u16 words into an ordered slice, bounds
// checked as a single region.
func (r *Reader) U16Slice(n int, context string) ([]uint16, error) {
	if err := r.Check(n*2, context); err != nil {
		return nil, err
	}
	return r.u16Slice(n), nil
}

// u16Slice reads n u16 words assuming the caller already checked bounds.
func (r *Reader) u16Slice(n int) []uint16 {
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = r.u16()
	}
	return out
}

// Bytes copies n raw bytes, bounds-checked.
func (r *Reader) Bytes(n int, context string) ([]byte, error) {
	if err := r.Check(n, context); err != nil {
		return nil, err
	}
	return r.bytes(n), nil
}

// bytes copies n raw bytes assuming the caller already checked bounds.
func (r *Reader) bytes(n int) []byte {
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out
}
