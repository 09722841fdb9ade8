// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// ExceptionHandler is one entry of a Code attribute's exception table.
// No range check is performed at parse time; start_pc/end_pc/handler_pc
// are stored as read and are not compared against the length of CodeBytes.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType Index // 0 catches every exception (finally)
}

// Code is a method's bytecode, operand-stack/locals sizing, exception
// table, and the nested attributes describing it (principally
// StackMapTable, plus the debug tables when present).
type Code struct {
	MaxStack       uint16
	MaxLocals      uint16
	CodeBytes      []byte
	ExceptionTable []ExceptionHandler
	Attributes     []AttributeEntry
}

func (Code) isAttribute() {}

// codeAttributeParsers are the attribute names recognised inside a Code
// attribute's own nested attribute table.
func codeAttributeParsers() map[string]attributeParser {
	return map[string]attributeParser{
		AttrStackMapTable:          parseStackMapTable,
		AttrLineNumberTable:        parseLineNumberTable,
		AttrLocalVariableTable:     parseLocalVariableTable,
		AttrLocalVariableTypeTable: parseLocalVariableTypeTable,
		AttrRuntimeVisibleTypeAnnotations:   parseRuntimeVisibleTypeAnnotations,
		AttrRuntimeInvisibleTypeAnnotations: parseRuntimeInvisibleTypeAnnotations,
	}
}

func parseCode(r *Reader, ctx *attrContext) (Attribute, error) {
	if err := r.Check(8, "code header"); err != nil {
		return nil, err
	}
	maxStack := r.u16()
	maxLocals := r.u16()
	codeLength := r.u32()

	code, err := r.Bytes(int(codeLength), "code bytes")
	if err != nil {
		return nil, err
	}

	excCount, err := r.U16("exception table length")
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionHandler, excCount)
	for i := 0; i < int(excCount); i++ {
		if err := r.Check(8, fmt.Sprintf("exception handler[%d]", i)); err != nil {
			return nil, err
		}
		excTable[i] = ExceptionHandler{
			StartPC:   r.u16(),
			EndPC:     r.u16(),
			HandlerPC: r.u16(),
			CatchType: r.u16(),
		}
	}

	attrs, err := parseAttributes(r, ctx, codeAttributeParsers())
	if err != nil {
		return nil, wrap("code attributes", err)
	}

	return Code{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		CodeBytes:      code,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

// StackMapTable returns the Code's single StackMapTable attribute, if it
// carries one.
func (c Code) StackMapTable() (StackMapTable, bool) {
	for _, a := range c.Attributes {
		if smt, ok := a.Value.(StackMapTable); ok {
			return smt, true
		}
	}
	return StackMapTable{}, false
}
