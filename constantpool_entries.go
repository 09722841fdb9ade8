// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "math"

// JVMS constant pool tags, §6.1.
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20

	// tagInvalid marks the dead slot following a Long/Double entry.
	tagInvalid = 0
)

// Internal resolved-form tags. These occupy a private range well above
// the JVMS tag space (which tops out at 20) so they can never collide
// with a tag read off the wire.
const (
	tagResolvedUtf8        = 200
	tagResolvedClass       = 201
	tagResolvedString      = 202
	tagResolvedNameAndType = 203
)

// ConstantPoolEntry is implemented by every tagged variant storable in the
// pool, resolved or not.
type ConstantPoolEntry interface {
	tag() byte
}

// Utf8Info holds the raw modified-UTF-8 bytes of a Utf8 entry, undecoded.
type Utf8Info struct {
	Bytes []byte
}

func (Utf8Info) tag() byte { return TagUtf8 }

// ResolvedUtf8Info is the decoded form of a Utf8Info, produced the first
// time ResolveUtf8 is called on its slot.
type ResolvedUtf8Info struct {
	Text string
}

func (ResolvedUtf8Info) tag() byte { return tagResolvedUtf8 }

// IntegerInfo is a 32-bit signed integer constant.
type IntegerInfo struct {
	Value int32
}

func (IntegerInfo) tag() byte { return TagInteger }

// integerFromBytes builds an IntegerInfo from the big-endian u32 on the
// wire.
func integerFromBytes(v uint32) IntegerInfo {
	return IntegerInfo{Value: int32(v)}
}

// FloatInfo is an IEEE 754 single-precision constant.
type FloatInfo struct {
	Value float32
}

func (FloatInfo) tag() byte { return TagFloat }

func floatFromBytes(v uint32) FloatInfo {
	return FloatInfo{Value: math.Float32frombits(v)}
}

// LongInfo is a 64-bit signed integer constant, assembled from the two
// big-endian u32 words the format stores it as.
type LongInfo struct {
	Value int64
}

func (LongInfo) tag() byte { return TagLong }

func longFromBytes(high, low uint32) LongInfo {
	return LongInfo{Value: int64(uint64(high)<<32 | uint64(low))}
}

// DoubleInfo is an IEEE 754 double-precision constant, assembled the same
// way as LongInfo.
type DoubleInfo struct {
	Value float64
}

func (DoubleInfo) tag() byte { return TagDouble }

func doubleFromBytes(high, low uint32) DoubleInfo {
	return DoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}
}

// ClassInfo references a class or interface's binary name via a Utf8
// entry.
type ClassInfo struct {
	NameIndex Index
}

func (ClassInfo) tag() byte { return TagClass }

// ResolvedClassInfo is ClassInfo with its name dereferenced.
type ResolvedClassInfo struct {
	Name string
}

func (ResolvedClassInfo) tag() byte { return tagResolvedClass }

// StringInfo references a String literal's contents via a Utf8 entry.
type StringInfo struct {
	ValueIndex Index
}

func (StringInfo) tag() byte { return TagString }

// ResolvedStringInfo is StringInfo with its value dereferenced.
type ResolvedStringInfo struct {
	Value string
}

func (ResolvedStringInfo) tag() byte { return tagResolvedString }

// FieldrefInfo references a field of a class or interface.
type FieldrefInfo struct {
	ClassIndex       Index
	NameAndTypeIndex Index
}

func (FieldrefInfo) tag() byte { return TagFieldref }

// MethodrefInfo references a method of a class.
type MethodrefInfo struct {
	ClassIndex       Index
	NameAndTypeIndex Index
}

func (MethodrefInfo) tag() byte { return TagMethodref }

// InterfaceMethodrefInfo references a method of an interface.
type InterfaceMethodrefInfo struct {
	ClassIndex       Index
	NameAndTypeIndex Index
}

func (InterfaceMethodrefInfo) tag() byte { return TagInterfaceMethodref }

// NameAndTypeInfo pairs a name with a field or method descriptor.
type NameAndTypeInfo struct {
	NameIndex       Index
	DescriptorIndex Index
}

func (NameAndTypeInfo) tag() byte { return TagNameAndType }

// ResolvedNameAndTypeInfo is NameAndTypeInfo with both halves dereferenced.
type ResolvedNameAndTypeInfo struct {
	Name       string
	Descriptor string
}

func (ResolvedNameAndTypeInfo) tag() byte { return tagResolvedNameAndType }

// MethodHandleInfo references a method handle of a given kind.
type MethodHandleInfo struct {
	ReferenceKind  ReferenceKind
	ReferenceIndex Index
}

func (MethodHandleInfo) tag() byte { return TagMethodHandle }

// MethodTypeInfo references a method descriptor.
type MethodTypeInfo struct {
	DescriptorIndex Index
}

func (MethodTypeInfo) tag() byte { return TagMethodType }

// DynamicInfo resolves a dynamically-computed constant.
type DynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         Index
}

func (DynamicInfo) tag() byte { return TagDynamic }

// InvokeDynamicInfo resolves a dynamically-computed call site.
type InvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         Index
}

func (InvokeDynamicInfo) tag() byte { return TagInvokeDynamic }

// ModuleInfo references a module's name.
type ModuleInfo struct {
	NameIndex Index
}

func (ModuleInfo) tag() byte { return TagModule }

// PackageInfo references a package's name.
type PackageInfo struct {
	NameIndex Index
}

func (PackageInfo) tag() byte { return TagPackage }

// invalidEntry marks the dead slot following a Long/Double; it is never
// reachable through a typed accessor.
type invalidEntry struct{}

func (invalidEntry) tag() byte { return tagInvalid }
