// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// ConstantValue gives a field's compile-time constant value as a pool
// index; the tag at that index determines the value's type.
type ConstantValue struct {
	ValueIndex Index
}

func (ConstantValue) isAttribute() {}

func parseConstantValue(r *Reader, _ *attrContext) (Attribute, error) {
	idx, err := r.U16("constant value index")
	if err != nil {
		return nil, err
	}
	return ConstantValue{ValueIndex: idx}, nil
}

// Synthetic marks a member as compiler-generated, not present in source.
type Synthetic struct{}

func (Synthetic) isAttribute() {}

func parseSynthetic(_ *Reader, _ *attrContext) (Attribute, error) {
	return Synthetic{}, nil
}

// Deprecated marks a member as deprecated by the author.
type Deprecated struct{}

func (Deprecated) isAttribute() {}

func parseDeprecated(_ *Reader, _ *attrContext) (Attribute, error) {
	return Deprecated{}, nil
}

// Signature carries a generic type signature, richer than the erased
// descriptor.
type Signature struct {
	SignatureIndex Index
}

func (Signature) isAttribute() {}

func parseSignature(r *Reader, _ *attrContext) (Attribute, error) {
	idx, err := r.U16("signature index")
	if err != nil {
		return nil, err
	}
	return Signature{SignatureIndex: idx}, nil
}

// SourceFile names the source file this classfile was compiled from.
type SourceFile struct {
	SourceFileIndex Index
}

func (SourceFile) isAttribute() {}

func parseSourceFile(r *Reader, _ *attrContext) (Attribute, error) {
	idx, err := r.U16("source file index")
	if err != nil {
		return nil, err
	}
	return SourceFile{SourceFileIndex: idx}, nil
}

// Exceptions lists the checked exception classes a method may throw.
type Exceptions struct {
	ExceptionIndices []Index
}

func (Exceptions) isAttribute() {}

func parseExceptions(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("exceptions count")
	if err != nil {
		return nil, err
	}
	idx, err := r.U16Slice(int(count), "exception index table")
	if err != nil {
		return nil, err
	}
	return Exceptions{ExceptionIndices: idx}, nil
}

// MethodParameter names and flags one formal parameter.
type MethodParameter struct {
	NameIndex   Index // 0 if the parameter has no name
	AccessFlags AccessFlags
}

// MethodParameters records each formal parameter's name and flags, in
// declaration order.
type MethodParameters struct {
	Parameters []MethodParameter
}

func (MethodParameters) isAttribute() {}

func parseMethodParameters(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U8("method parameters count")
	if err != nil {
		return nil, err
	}
	params := make([]MethodParameter, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(4, fmt.Sprintf("method parameter[%d]", i)); err != nil {
			return nil, err
		}
		params[i] = MethodParameter{NameIndex: r.u16(), AccessFlags: AccessFlags(r.u16())}
	}
	return MethodParameters{Parameters: params}, nil
}

// AnnotationDefault gives an annotation interface element's default
// value.
type AnnotationDefault struct {
	Value ElementValue
}

func (AnnotationDefault) isAttribute() {}

func parseAnnotationDefault(r *Reader, _ *attrContext) (Attribute, error) {
	v, err := parseElementValue(r)
	if err != nil {
		return nil, wrap("annotation default", err)
	}
	return AnnotationDefault{Value: v}, nil
}

// LineNumberEntry maps one bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTable maps Code bytecode offsets to source line numbers, for
// debuggers and stack traces.
type LineNumberTable struct {
	Entries []LineNumberEntry
}

func (LineNumberTable) isAttribute() {}

func parseLineNumberTable(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("line number table length")
	if err != nil {
		return nil, err
	}
	entries := make([]LineNumberEntry, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(4, fmt.Sprintf("line number[%d]", i)); err != nil {
			return nil, err
		}
		entries[i] = LineNumberEntry{StartPC: r.u16(), LineNumber: r.u16()}
	}
	return LineNumberTable{Entries: entries}, nil
}

// LocalVariableEntry describes a local variable's live range and type.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       Index
	DescriptorIndex Index
	Index           uint16
}

// LocalVariableTable maps local variable slots to names and descriptors
// over bytecode ranges, for debuggers.
type LocalVariableTable struct {
	Entries []LocalVariableEntry
}

func (LocalVariableTable) isAttribute() {}

func parseLocalVariableTable(r *Reader, _ *attrContext) (Attribute, error) {
	entries, err := parseLocalVariableEntries(r, "local variable table")
	if err != nil {
		return nil, err
	}
	return LocalVariableTable{Entries: entries}, nil
}

// LocalVariableTypeEntry is LocalVariableEntry's generic-signature
// counterpart: DescriptorIndex names a Signature rather than a
// descriptor.
type LocalVariableTypeEntry = LocalVariableEntry

// LocalVariableTypeTable is LocalVariableTable's generic-signature
// counterpart.
type LocalVariableTypeTable struct {
	Entries []LocalVariableTypeEntry
}

func (LocalVariableTypeTable) isAttribute() {}

func parseLocalVariableTypeTable(r *Reader, _ *attrContext) (Attribute, error) {
	entries, err := parseLocalVariableEntries(r, "local variable type table")
	if err != nil {
		return nil, err
	}
	return LocalVariableTypeTable{Entries: entries}, nil
}

func parseLocalVariableEntries(r *Reader, context string) ([]LocalVariableEntry, error) {
	count, err := r.U16(context + " length")
	if err != nil {
		return nil, err
	}
	entries := make([]LocalVariableEntry, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(10, fmt.Sprintf("%s[%d]", context, i)); err != nil {
			return nil, err
		}
		entries[i] = LocalVariableEntry{
			StartPC:         r.u16(),
			Length:          r.u16(),
			NameIndex:       r.u16(),
			DescriptorIndex: r.u16(),
			Index:           r.u16(),
		}
	}
	return entries, nil
}
