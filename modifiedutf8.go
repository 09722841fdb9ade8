// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "unicode/utf16"

// DecodeModifiedUTF8 decodes the JVMS §4.4.7 Modified UTF-8 (CESU-8)
// encoding used by every Utf8 constant pool entry. This differs from
// plain UTF-8 in two ways that a byte-for-byte UTF-8 decode gets wrong:
// U+0000 is encoded as the two bytes 0xC0 0x80 instead of a single zero
// byte, and supplementary plane code points (≥ U+10000) are encoded as a
// CESU-8 surrogate pair - two three-byte sequences - instead of a single
// four-byte UTF-8 sequence. Decoding raw bytes as ordinary UTF-8 silently
// mishandles both cases; this decoder must not take that shortcut.
func DecodeModifiedUTF8(b []byte) string {
	out := make([]rune, 0, len(b))
	i := 0
	for i < len(b) {
		c0 := b[i]
		switch {
		case c0&0x80 == 0:
			// 0xxxxxxx, one byte, U+0001..U+007F.
			out = append(out, rune(c0))
			i++
		case c0&0xE0 == 0xC0 && i+1 < len(b):
			// 110xxxxx 10xxxxxx, two bytes. Covers both the ordinary
			// U+0080..U+07FF range and the special 0xC0 0x80 NUL encoding.
			c1 := b[i+1]
			r := (rune(c0&0x1F) << 6) | rune(c1&0x3F)
			out = append(out, r)
			i += 2
		case c0&0xF0 == 0xE0 && i+2 < len(b):
			// 1110xxxx 10xxxxxx 10xxxxxx, three bytes.
			c1, c2 := b[i+1], b[i+2]
			r := (rune(c0&0x0F) << 12) | (rune(c1&0x3F) << 6) | rune(c2&0x3F)
			i += 3
			if utf16.IsSurrogate(r) && i+2 < len(b) && b[i] == 0xED {
				// CESU-8 surrogate pair: a low surrogate three-byte
				// sequence immediately follows a high surrogate one.
				c3, c4 := b[i+1], b[i+2]
				r2 := (rune(0xED&0x0F) << 12) | (rune(c3&0x3F) << 6) | rune(c4&0x3F)
				if combined := utf16.DecodeRune(r, r2); combined != 0xFFFD {
					out = append(out, combined)
					i += 3
					continue
				}
			}
			out = append(out, r)
		default:
			// Malformed lead byte or truncated sequence: emit the
			// replacement character for this byte and resync.
			out = append(out, 0xFFFD)
			i++
		}
	}
	return string(out)
}
