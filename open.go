// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Open memory-maps the file at path read-only and parses the mapped
// bytes as a classfile, mirroring how the collaborator that feeds this
// core a byte buffer is expected to avoid a full read-into-heap copy for
// files it only needs to scan once.
func Open(path string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()

	return ParseBytes(data, opts)
}
