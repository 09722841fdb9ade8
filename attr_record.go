// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// RecordComponent describes one component of a record class.
type RecordComponent struct {
	NameIndex       Index
	DescriptorIndex Index
	Attributes      []AttributeEntry
}

// Record lists the components of a record class, in declaration order.
type Record struct {
	Components []RecordComponent
}

func (Record) isAttribute() {}

// recordComponentAttributeParsers are the attribute names recognised on
// a record component: generic signature and the annotation family. Unlike
// a field, ConstantValue, Synthetic and Deprecated are not recognised.
func recordComponentAttributeParsers() map[string]attributeParser {
	return map[string]attributeParser{
		AttrSignature:                           parseSignature,
		AttrRuntimeVisibleAnnotations:            parseRuntimeVisibleAnnotations,
		AttrRuntimeInvisibleAnnotations:          parseRuntimeInvisibleAnnotations,
		AttrRuntimeVisibleTypeAnnotations:        parseRuntimeVisibleTypeAnnotations,
		AttrRuntimeInvisibleTypeAnnotations:      parseRuntimeInvisibleTypeAnnotations,
	}
}

func parseRecord(r *Reader, ctx *attrContext) (Attribute, error) {
	count, err := r.U16("record components count")
	if err != nil {
		return nil, err
	}
	known := recordComponentAttributeParsers()
	components := make([]RecordComponent, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(4, fmt.Sprintf("record component[%d]", i)); err != nil {
			return nil, err
		}
		nameIdx := r.u16()
		descIdx := r.u16()
		attrs, err := parseAttributes(r, ctx, known)
		if err != nil {
			return nil, wrap(fmt.Sprintf("record component[%d]", i), err)
		}
		components[i] = RecordComponent{NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs}
	}
	return Record{Components: components}, nil
}
