// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// Type annotation target types, JVMS §4.7.20.1.
const (
	TargetClass      = 0x00 // ClassFile only
	TargetMethod     = 0x01 // Method only

	TargetSupertype      = 0x10 // ClassFile only
	TargetClassTypeBound = 0x11 // ClassFile only
	TargetMethodTypeBound = 0x12 // Method only
	TargetFieldOrRecord  = 0x13 // Field or RecordComponent only
	TargetReturnType     = 0x14 // Method only
	TargetReceiver       = 0x15 // Method only
	TargetFormalParameter = 0x16 // Method only
	TargetThrows         = 0x17 // Method only

	// The following only appear inside a Code attribute.
	TargetLocalVar                                      = 0x40
	TargetLocalResource                                 = 0x41
	TargetCatchTarget                                    = 0x42
	TargetInstanceofExpression                           = 0x43
	TargetNewExpression                                  = 0x44
	TargetMethodReferenceNewExpression                   = 0x45
	TargetMethodReferenceIdentifierExpression            = 0x46
	TargetCastExpr                                       = 0x47
	TargetGenericConstructorNewOrExplicitConstructorInvoke = 0x48
	TargetGenericMethodInvoke                            = 0x49
	TargetGenericConstructorMethodReferenceExpression     = 0x4A
	TargetGenericMethodReferenceExpression                = 0x4B
)

// LocalVarTargetEntry is one live range of a localvar_target's table,
// naming which local variable slot a type annotation applies to.
type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// TargetInfo is the tagged union of every target_info shape the ten
// target_type ranges select between.
type TargetInfo struct {
	// TypeParameterIndex is set for TypeParameter and ParameterBound.
	TypeParameterIndex uint8

	// SupertypeIndex is set for Supertype.
	SupertypeIndex uint16

	// BoundIndex is set for ParameterBound.
	BoundIndex uint8

	// FormalParameterIndex is set for FormalParameter.
	FormalParameterIndex uint8

	// TypeIndex is set for Throws (a throws_type_index).
	TypeIndex uint16

	// LocalVarTable is set for LocalVar.
	LocalVarTable []LocalVarTargetEntry

	// ExceptionTableIndex is set for Catch.
	ExceptionTableIndex uint16

	// Offset is set for Offset and TypeArgument.
	Offset uint16

	// TypeArgumentIndex is set for TypeArgument.
	TypeArgumentIndex uint8
}

func parseTargetInfo(r *Reader, targetType byte) (TargetInfo, error) {
	switch targetType {
	case TargetClass, TargetMethod:
		idx, err := r.U8("type parameter target index")
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{TypeParameterIndex: idx}, nil

	case TargetSupertype:
		idx, err := r.U16("supertype target index")
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{SupertypeIndex: idx}, nil

	case TargetClassTypeBound, TargetMethodTypeBound:
		if err := r.Check(2, "type parameter bound target"); err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{TypeParameterIndex: r.u8(), BoundIndex: r.u8()}, nil

	case TargetFieldOrRecord, TargetReturnType, TargetReceiver:
		return TargetInfo{}, nil

	case TargetFormalParameter:
		idx, err := r.U8("formal parameter target index")
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{FormalParameterIndex: idx}, nil

	case TargetThrows:
		idx, err := r.U16("throws target index")
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{TypeIndex: idx}, nil

	case TargetLocalVar, TargetLocalResource:
		count, err := r.U16("localvar target table length")
		if err != nil {
			return TargetInfo{}, err
		}
		table := make([]LocalVarTargetEntry, count)
		for i := 0; i < int(count); i++ {
			if err := r.Check(6, fmt.Sprintf("localvar target[%d]", i)); err != nil {
				return TargetInfo{}, err
			}
			table[i] = LocalVarTargetEntry{StartPC: r.u16(), Length: r.u16(), Index: r.u16()}
		}
		return TargetInfo{LocalVarTable: table}, nil

	case TargetCatchTarget:
		idx, err := r.U16("catch target exception table index")
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{ExceptionTableIndex: idx}, nil

	case TargetInstanceofExpression, TargetNewExpression,
		TargetMethodReferenceNewExpression, TargetMethodReferenceIdentifierExpression:
		off, err := r.U16("offset target")
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Offset: off}, nil

	case TargetCastExpr, TargetGenericConstructorNewOrExplicitConstructorInvoke,
		TargetGenericMethodInvoke, TargetGenericConstructorMethodReferenceExpression,
		TargetGenericMethodReferenceExpression:
		if err := r.Check(3, "type argument target"); err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Offset: r.u16(), TypeArgumentIndex: r.u8()}, nil

	default:
		return TargetInfo{}, fmt.Errorf("%w: type annotation target type 0x%02x", ErrBadTag, targetType)
	}
}

// TypePathEntry is one (type_path_kind, type_argument_index) pair of a
// type annotation's type path.
type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

func parseTypePath(r *Reader) ([]TypePathEntry, error) {
	count, err := r.U8("type path length")
	if err != nil {
		return nil, err
	}
	path := make([]TypePathEntry, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(2, fmt.Sprintf("type path[%d]", i)); err != nil {
			return nil, err
		}
		path[i] = TypePathEntry{TypePathKind: r.u8(), TypeArgumentIndex: r.u8()}
	}
	return path, nil
}

// TypeAnnotation is one entry of a RuntimeVisibleTypeAnnotations or
// RuntimeInvisibleTypeAnnotations attribute: an annotation attached to a
// use of a type, rather than to a declaration.
type TypeAnnotation struct {
	TargetType byte
	TargetInfo TargetInfo
	TypePath   []TypePathEntry
	TypeIndex  Index
	Elements   []Element
}

func parseTypeAnnotation(r *Reader) (TypeAnnotation, error) {
	targetType, err := r.U8("type annotation target type")
	if err != nil {
		return TypeAnnotation{}, err
	}
	targetInfo, err := parseTargetInfo(r, targetType)
	if err != nil {
		return TypeAnnotation{}, wrap("target info", err)
	}
	path, err := parseTypePath(r)
	if err != nil {
		return TypeAnnotation{}, wrap("type path", err)
	}

	if err := r.Check(2, "type annotation type index"); err != nil {
		return TypeAnnotation{}, err
	}
	typeIdx := r.u16()

	count, err := r.U16("type annotation element count")
	if err != nil {
		return TypeAnnotation{}, err
	}
	elements := make([]Element, count)
	for i := 0; i < int(count); i++ {
		e, err := parseElement(r)
		if err != nil {
			return TypeAnnotation{}, wrap(fmt.Sprintf("element[%d]", i), err)
		}
		elements[i] = e
	}

	return TypeAnnotation{
		TargetType: targetType,
		TargetInfo: targetInfo,
		TypePath:   path,
		TypeIndex:  typeIdx,
		Elements:   elements,
	}, nil
}

// RuntimeVisibleTypeAnnotations lists the type's runtime-visible type
// annotations.
type RuntimeVisibleTypeAnnotations struct {
	Annotations []TypeAnnotation
}

func (RuntimeVisibleTypeAnnotations) isAttribute() {}

func parseRuntimeVisibleTypeAnnotations(r *Reader, _ *attrContext) (Attribute, error) {
	a, err := parseTypeAnnotationList(r)
	if err != nil {
		return nil, err
	}
	return RuntimeVisibleTypeAnnotations{Annotations: a}, nil
}

// RuntimeInvisibleTypeAnnotations is the runtime-invisible counterpart.
type RuntimeInvisibleTypeAnnotations struct {
	Annotations []TypeAnnotation
}

func (RuntimeInvisibleTypeAnnotations) isAttribute() {}

func parseRuntimeInvisibleTypeAnnotations(r *Reader, _ *attrContext) (Attribute, error) {
	a, err := parseTypeAnnotationList(r)
	if err != nil {
		return nil, err
	}
	return RuntimeInvisibleTypeAnnotations{Annotations: a}, nil
}

func parseTypeAnnotationList(r *Reader) ([]TypeAnnotation, error) {
	count, err := r.U16("type annotations count")
	if err != nil {
		return nil, err
	}
	out := make([]TypeAnnotation, count)
	for i := 0; i < int(count); i++ {
		a, err := parseTypeAnnotation(r)
		if err != nil {
			return nil, wrap(fmt.Sprintf("type annotation[%d]", i), err)
		}
		out[i] = a
	}
	return out, nil
}
