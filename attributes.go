// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"

	"github.com/saferwall/jclass/log"
)

// Recognised attribute names, §6.2.
const (
	AttrConstantValue                        = "ConstantValue"
	AttrCode                                 = "Code"
	AttrStackMapTable                        = "StackMapTable"
	AttrExceptions                           = "Exceptions"
	AttrInnerClasses                         = "InnerClasses"
	AttrEnclosingMethod                      = "EnclosingMethod"
	AttrSynthetic                            = "Synthetic"
	AttrSignature                            = "Signature"
	AttrSourceFile                           = "SourceFile"
	AttrLineNumberTable                      = "LineNumberTable"
	AttrLocalVariableTable                   = "LocalVariableTable"
	AttrLocalVariableTypeTable               = "LocalVariableTypeTable"
	AttrDeprecated                           = "Deprecated"
	AttrRuntimeVisibleAnnotations             = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations           = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleParameterAnnotations    = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParameterAnnotations  = "RuntimeInvisibleParameterAnnotations"
	AttrRuntimeVisibleTypeAnnotations         = "RuntimeVisibleTypeAnnotations"
	AttrRuntimeInvisibleTypeAnnotations       = "RuntimeInvisibleTypeAnnotations"
	AttrAnnotationDefault                     = "AnnotationDefault"
	AttrBootstrapMethods                      = "BootstrapMethods"
	AttrMethodParameters                      = "MethodParameters"
	AttrModule                                = "Module"
	AttrModulePackages                        = "ModulePackages"
	AttrModuleMainClass                       = "ModuleMainClass"
	AttrNestHost                              = "NestHost"
	AttrNestMembers                           = "NestMembers"
	AttrRecord                                = "Record"
	AttrPermittedSubclasses                   = "PermittedSubclasses"
)

// Attribute is implemented by every parsed attribute body. It carries no
// behavior of its own; it exists so AttributeEntry.Value can hold any of
// the concrete attribute structs as a sum type.
type Attribute interface {
	isAttribute()
}

// RawAttribute is the fallback for an attribute name the enclosing
// structure does not recognise (or a name this reader does not
// implement); the envelope is still consumed exactly per §4.7, just kept
// uninterpreted.
type RawAttribute struct {
	Info []byte
}

func (RawAttribute) isAttribute() {}

// AttributeEntry pairs a resolved attribute name with its parsed value,
// preserving source order the way §4.9 requires.
type AttributeEntry struct {
	Name  string
	Value Attribute
}

// attributeParser decodes one attribute body from a reader scoped to
// exactly attribute_length bytes.
type attributeParser func(r *Reader, ctx *attrContext) (Attribute, error)

// attrContext bundles the state every nested attribute parser shares -
// the constant pool for name/constant resolution, the logger for
// non-fatal findings, and the declared-length cap - so that threading it
// through a recognised attribute's own nested attribute table (Code,
// Record) doesn't require widening attributeParser's signature per call
// site.
type attrContext struct {
	pool      *ConstantPool
	logger    *log.Helper
	maxLength uint32
}

// newAttrContext builds an attrContext for a fresh top-level parse.
func newAttrContext(pool *ConstantPool, logger *log.Helper, maxLength uint32) *attrContext {
	if maxLength == 0 {
		maxLength = DefaultMaxAttributeLength
	}
	return &attrContext{pool: pool, logger: logger, maxLength: maxLength}
}

// parseAttributes reads an attributes_count followed by that many
// attribute_info envelopes: name_index, length, then exactly length bytes
// of body. known maps a recognised name to its parser; names absent from
// known fall back to RawAttribute.
//
// A name repeated within the same table is treated as a singleton
// attribute being overwritten: the later occurrence replaces the earlier
// one in place and a Warn is logged, rather than the parse failing.
func parseAttributes(r *Reader, ctx *attrContext, known map[string]attributeParser) ([]AttributeEntry, error) {
	count, err := r.U16("attributes count")
	if err != nil {
		return nil, err
	}

	entries := make([]AttributeEntry, 0, count)
	seen := make(map[string]int, count)
	for i := 0; i < int(count); i++ {
		entry, err := parseOneAttribute(r, ctx, known)
		if err != nil {
			return nil, wrap(fmt.Sprintf("attribute[%d]", i), err)
		}
		if pos, dup := seen[entry.Name]; dup {
			ctx.logger.Warnf("attribute %q occurs more than once, overwriting the earlier occurrence", entry.Name)
			entries[pos] = entry
			continue
		}
		seen[entry.Name] = len(entries)
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseOneAttribute(r *Reader, ctx *attrContext, known map[string]attributeParser) (AttributeEntry, error) {
	nameIdx, err := r.U16("attribute name index")
	if err != nil {
		return AttributeEntry{}, err
	}
	length, err := r.U32("attribute length")
	if err != nil {
		return AttributeEntry{}, err
	}

	resolved, ok := ctx.pool.ResolveUtf8(nameIdx)
	if !ok {
		return AttributeEntry{}, fmt.Errorf("%w: attribute name index %d", ErrBadPoolIndex, nameIdx)
	}
	name := resolved.Text

	if length > ctx.maxLength {
		return AttributeEntry{}, fmt.Errorf(
			"%w: attribute %q declared length %d exceeds limit %d",
			ErrAllocation, name, length, ctx.maxLength)
	}

	body, err := r.Bytes(int(length), fmt.Sprintf("attribute %q body", name))
	if err != nil {
		return AttributeEntry{}, err
	}
	sub := NewReader(body)

	parse, recognised := known[name]
	if !recognised {
		return AttributeEntry{Name: name, Value: RawAttribute{Info: body}}, nil
	}

	value, err := parse(sub, ctx)
	if err != nil {
		return AttributeEntry{}, wrap(fmt.Sprintf("%s attribute", name), err)
	}
	if !sub.Empty() {
		return AttributeEntry{}, fmt.Errorf(
			"%w: %s attribute declared length %d but consumed %d bytes",
			ErrMalformed, name, length, int(length)-sub.Remaining())
	}
	return AttributeEntry{Name: name, Value: value}, nil
}

