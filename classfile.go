// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"

	"github.com/saferwall/jclass/log"
)

// Sane default caps on attacker-controlled counts, large enough for any
// real classfile, small enough to bound memory for a hostile/truncated
// one. Options.MaxConstantPoolEntries/MaxAttributeLength override these.
const (
	DefaultMaxConstantPoolEntries = 1 << 16
	DefaultMaxAttributeLength     = 1 << 28
)

// Options configures a parse. The zero value is valid; ParseBytes (and
// Open, which calls it) fills any zero cap with the default above.
type Options struct {
	// MaxConstantPoolEntries bounds pool_count, by default
	// (DefaultMaxConstantPoolEntries).
	MaxConstantPoolEntries uint32

	// MaxAttributeLength bounds a single attribute's declared length, by
	// default (DefaultMaxAttributeLength).
	MaxAttributeLength uint32

	// EagerResolve resolves every Utf8/Class/String/NameAndType pool slot
	// once at parse time instead of the default per-call lazy strategy.
	// Both strategies expose the identical read API afterward.
	EagerResolve bool

	// A custom logger.
	Logger log.Logger
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	out := *o
	if out.MaxConstantPoolEntries == 0 {
		out.MaxConstantPoolEntries = DefaultMaxConstantPoolEntries
	}
	if out.MaxAttributeLength == 0 {
		out.MaxAttributeLength = DefaultMaxAttributeLength
	}
	return &out
}

// Field is a field_info record: its flags, name/descriptor, and
// attributes, stored in source order.
type Field struct {
	AccessFlags     AccessFlags
	NameIndex       Index
	DescriptorIndex Index
	Attributes      []AttributeEntry
}

// Method is a method_info record: its flags, name/descriptor, and
// attributes, stored in source order. A method carries at most one Code
// attribute.
type Method struct {
	AccessFlags     AccessFlags
	NameIndex       Index
	DescriptorIndex Index
	Attributes      []AttributeEntry
}

// Code returns the method's Code attribute, if it has one (every method
// except abstract and native ones does).
func (m Method) Code() (Code, bool) {
	for _, a := range m.Attributes {
		if c, ok := a.Value.(Code); ok {
			return c, true
		}
	}
	return Code{}, false
}

// ClassFile is the fully parsed structural view of one .class file.
type ClassFile struct {
	Version      Version
	Pool         *ConstantPool
	AccessFlags  AccessFlags
	ThisClass    Index
	SuperClass   Index
	Interfaces   *FixedArray[Index]
	Fields       []Field
	Methods      []Method
	Attributes   []AttributeEntry

	// Anomalies collects non-fatal structural oddities found while
	// parsing (e.g. a malformed descriptor) - the parse still succeeds.
	Anomalies []string

	opts   *Options
	logger *log.Helper
}

// magic is the fixed four-byte classfile signature, JVMS §4.1.
const magic = 0xCAFEBABE

// ParseBytes parses a classfile held entirely in memory.
func ParseBytes(data []byte, opts *Options) (*ClassFile, error) {
	opts = opts.withDefaults()

	var logger log.Logger
	if opts.Logger == nil {
		logger = log.DefaultLogger()
	} else {
		logger = opts.Logger
	}

	cf := &ClassFile{opts: opts, logger: log.NewHelper(logger)}
	if err := cf.parse(data); err != nil {
		return nil, err
	}
	return cf, nil
}

// parse runs the eight structural steps of the top-level parser in
// order, wrapping any failure with the stage name.
func (cf *ClassFile) parse(data []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: internal panic: %v", ErrMalformed, rec)
		}
	}()

	r := NewReader(data)

	m, err := r.U32("magic")
	if err != nil {
		return err
	}
	if m != magic {
		return fmt.Errorf("%w: got 0x%08X", ErrBadMagic, m)
	}

	minor, err := r.U16("minor version")
	if err != nil {
		return err
	}
	major, err := r.U16("major version")
	if err != nil {
		return err
	}
	version := Version{Minor: minor, Major: major}
	if err := checkVersion(version); err != nil {
		return err
	}
	cf.Version = version

	pool, err := parseConstantPool(r, cf.opts.EagerResolve)
	if err != nil {
		return wrap("bad constant pool", err)
	}
	if uint32(pool.Count()) > cf.opts.MaxConstantPoolEntries {
		return fmt.Errorf("%w: constant pool count %d exceeds limit %d",
			ErrAllocation, pool.Count(), cf.opts.MaxConstantPoolEntries)
	}
	cf.Pool = pool
	cf.logger.Debugf("constant pool parsed: %d entries", pool.Count())
	ctx := newAttrContext(cf.Pool, cf.logger, cf.opts.MaxAttributeLength)

	if err := r.Check(6, "access flags, this class, super class"); err != nil {
		return err
	}
	cf.AccessFlags = AccessFlags(r.u16())
	cf.ThisClass = r.u16()
	cf.SuperClass = r.u16()

	if _, ok := cf.Pool.GetClass(cf.ThisClass); !ok {
		return fmt.Errorf("%w: this_class %d is not a valid Class entry", ErrBadPoolIndex, cf.ThisClass)
	}
	if cf.SuperClass != 0 {
		if _, ok := cf.Pool.GetClass(cf.SuperClass); !ok {
			return fmt.Errorf("%w: super_class %d is not a valid Class entry", ErrBadPoolIndex, cf.SuperClass)
		}
	}

	interfacesCount, err := r.U16("interfaces count")
	if err != nil {
		return err
	}
	interfaces, err := NewFixedArray[Index](int(interfacesCount))
	if err != nil {
		return wrap("interfaces", err)
	}
	for i := 0; i < int(interfacesCount); i++ {
		idx, err := r.U16(fmt.Sprintf("interface[%d]", i))
		if err != nil {
			return wrap("interfaces", err)
		}
		if err := interfaces.Set(i, idx); err != nil {
			return wrap("interfaces", err)
		}
	}
	interfaces.Freeze()
	cf.Interfaces = interfaces

	fieldsCount, err := r.U16("fields count")
	if err != nil {
		return err
	}
	cf.Fields = make([]Field, fieldsCount)
	for i := 0; i < int(fieldsCount); i++ {
		f, err := parseField(r, ctx)
		if err != nil {
			return wrap(fmt.Sprintf("field[%d]", i), err)
		}
		cf.Fields[i] = f
	}
	cf.logger.Debugf("fields parsed: %d", len(cf.Fields))

	methodsCount, err := r.U16("methods count")
	if err != nil {
		return err
	}
	cf.Methods = make([]Method, methodsCount)
	for i := 0; i < int(methodsCount); i++ {
		m, err := parseMethod(r, ctx)
		if err != nil {
			return wrap(fmt.Sprintf("method[%d]", i), err)
		}
		cf.Methods[i] = m
	}
	cf.logger.Debugf("methods parsed: %d", len(cf.Methods))

	attrs, err := parseAttributes(r, ctx, classFileAttributeParsers())
	if err != nil {
		return wrap("attributes", err)
	}
	cf.Attributes = attrs
	cf.logger.Debugf("attributes parsed: %d", len(cf.Attributes))

	cf.checkDescriptors()

	return nil
}

// checkDescriptors opportunistically validates every field and method
// descriptor's shape, logging and recording an anomaly on mismatch
// rather than failing the parse - descriptor well-formedness is a soft
// finding, not a structural invariant of the classfile format itself.
func (cf *ClassFile) checkDescriptors() {
	for i, f := range cf.Fields {
		desc, ok := cf.Pool.ResolveUtf8(f.DescriptorIndex)
		if !ok {
			continue
		}
		if !ValidateFieldDescriptor(desc.Text) {
			cf.logger.Warnf("field[%d]: %s: %q", i, AnoInvalidFieldDescriptor, desc.Text)
			cf.Anomalies = append(cf.Anomalies, AnoInvalidFieldDescriptor)
		}
	}
	for i, m := range cf.Methods {
		desc, ok := cf.Pool.ResolveUtf8(m.DescriptorIndex)
		if !ok {
			continue
		}
		if !ValidateMethodDescriptor(desc.Text) {
			cf.logger.Warnf("method[%d]: %s: %q", i, AnoInvalidMethodDescriptor, desc.Text)
			cf.Anomalies = append(cf.Anomalies, AnoInvalidMethodDescriptor)
		}
	}
}

func parseField(r *Reader, ctx *attrContext) (Field, error) {
	if err := r.Check(6, "field header"); err != nil {
		return Field{}, err
	}
	access := AccessFlags(r.u16())
	nameIdx := r.u16()
	descIdx := r.u16()

	attrs, err := parseAttributes(r, ctx, fieldAttributeParsers())
	if err != nil {
		return Field{}, wrap("attributes", err)
	}
	return Field{AccessFlags: access, NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs}, nil
}

func parseMethod(r *Reader, ctx *attrContext) (Method, error) {
	if err := r.Check(6, "method header"); err != nil {
		return Method{}, err
	}
	access := AccessFlags(r.u16())
	nameIdx := r.u16()
	descIdx := r.u16()

	attrs, err := parseAttributes(r, ctx, methodAttributeParsers())
	if err != nil {
		return Method{}, wrap("attributes", err)
	}

	return Method{AccessFlags: access, NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs}, nil
}

// Name resolves the classfile's own binary name through this_class.
func (cf *ClassFile) Name() (string, bool) {
	resolved, ok := cf.Pool.ResolveClass(cf.ThisClass)
	if !ok {
		return "", false
	}
	return resolved.Name, true
}

// SuperName resolves the superclass's binary name through super_class,
// if one is declared (every class but java/lang/Object has one).
func (cf *ClassFile) SuperName() (string, bool) {
	if cf.SuperClass == 0 {
		return "", false
	}
	resolved, ok := cf.Pool.ResolveClass(cf.SuperClass)
	if !ok {
		return "", false
	}
	return resolved.Name, true
}

