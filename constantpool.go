// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"encoding/json"
	"fmt"
	"sync"
)

// ConstantPool is the classfile's tag-parallel index, 1-based like the
// wire format (index 0 is always invalid). Entries are written exactly
// once during parsing; resolved forms (Utf8, Class, String, NameAndType)
// are written at most once more, the first time a caller asks for them.
//
// The mutex guards only the replace-slot-in-place step of resolution: a
// Get* call takes an RLock, a Resolve* call takes a Lock around the
// tag+entry swap of its own slot. Accessors return entries by value, and
// resolution only replaces the tag/entry stored in the pool's own slot,
// so a value returned for slot j remains valid across a resolution of
// slot i != j, satisfying the non-exclusive reference contract this
// component exists to provide.
type ConstantPool struct {
	mu      sync.RWMutex
	tags    []byte
	entries []ConstantPoolEntry
	eager   bool
}

// cpIdxToArrIdx converts a 1-based constant pool index to a 0-based slot
// in the parallel arrays.
func cpIdxToArrIdx(i Index) int {
	return int(i) - 1
}

// Count returns the pool's constant_pool_count as read from the wire
// (i.e. one more than the number of addressable slots).
func (p *ConstantPool) Count() uint16 {
	return uint16(len(p.tags) + 1)
}

// parseConstantPool reads the 16-bit pool_count followed by that many (minus
// one) tagged entries, honoring the JVMS rule that Long and Double each
// consume two slots (the second marked invalid, never addressable). eager
// selects whether the pool pre-resolves Utf8/Class/String/NameAndType
// slots immediately instead of lazily on first access.
func parseConstantPool(r *Reader, eager bool) (*ConstantPool, error) {
	count, err := r.U16("constant pool count")
	if err != nil {
		return nil, err
	}

	n := int(count) - 1
	if n < 0 {
		return nil, wrap("constant pool", fmt.Errorf("%w: count %d", ErrMalformed, count))
	}

	pool := &ConstantPool{
		tags:    make([]byte, n),
		entries: make([]ConstantPoolEntry, n),
		eager:   eager,
	}

	for i := 0; i < n; {
		tag, err := r.U8(fmt.Sprintf("constant pool - entry %d - tag", i+1))
		if err != nil {
			return nil, wrap("constant pool", err)
		}

		entry, slots, err := parseConstantPoolEntry(r, tag)
		if err != nil {
			return nil, wrap(fmt.Sprintf("constant pool - entry %d", i+1), err)
		}

		pool.tags[i] = tag
		pool.entries[i] = entry

		if slots == 2 {
			if i+1 >= n {
				return nil, wrap("constant pool", fmt.Errorf(
					"%w: entry %d is a wide constant with no trailing slot", ErrMalformed, i+1))
			}
			pool.tags[i+1] = tagInvalid
			pool.entries[i+1] = invalidEntry{}
			i += 2
		} else {
			i++
		}
	}

	if eager {
		pool.resolveAllEager()
	}

	return pool, nil
}

// parseConstantPoolEntry dispatches on the tag byte and returns the
// decoded entry plus how many slots it occupies (2 for Long/Double, 1
// otherwise).
func parseConstantPoolEntry(r *Reader, tag byte) (ConstantPoolEntry, int, error) {
	switch tag {
	case TagUtf8:
		length, err := r.U16("utf8 - length")
		if err != nil {
			return nil, 0, err
		}
		b, err := r.Bytes(int(length), "utf8 - bytes")
		if err != nil {
			return nil, 0, err
		}
		return Utf8Info{Bytes: b}, 1, nil

	case TagInteger:
		v, err := r.U32("integer")
		if err != nil {
			return nil, 0, err
		}
		return integerFromBytes(v), 1, nil

	case TagFloat:
		v, err := r.U32("float")
		if err != nil {
			return nil, 0, err
		}
		return floatFromBytes(v), 1, nil

	case TagLong:
		if err := r.Check(8, "long"); err != nil {
			return nil, 0, err
		}
		high := r.u32()
		low := r.u32()
		return longFromBytes(high, low), 2, nil

	case TagDouble:
		if err := r.Check(8, "double"); err != nil {
			return nil, 0, err
		}
		high := r.u32()
		low := r.u32()
		return doubleFromBytes(high, low), 2, nil

	case TagClass:
		idx, err := r.U16("class - name index")
		if err != nil {
			return nil, 0, err
		}
		return ClassInfo{NameIndex: idx}, 1, nil

	case TagString:
		idx, err := r.U16("string - value index")
		if err != nil {
			return nil, 0, err
		}
		return StringInfo{ValueIndex: idx}, 1, nil

	case TagFieldref:
		if err := r.Check(4, "fieldref"); err != nil {
			return nil, 0, err
		}
		return FieldrefInfo{ClassIndex: r.u16(), NameAndTypeIndex: r.u16()}, 1, nil

	case TagMethodref:
		if err := r.Check(4, "methodref"); err != nil {
			return nil, 0, err
		}
		return MethodrefInfo{ClassIndex: r.u16(), NameAndTypeIndex: r.u16()}, 1, nil

	case TagInterfaceMethodref:
		if err := r.Check(4, "interface methodref"); err != nil {
			return nil, 0, err
		}
		return InterfaceMethodrefInfo{ClassIndex: r.u16(), NameAndTypeIndex: r.u16()}, 1, nil

	case TagNameAndType:
		if err := r.Check(4, "name and type"); err != nil {
			return nil, 0, err
		}
		return NameAndTypeInfo{NameIndex: r.u16(), DescriptorIndex: r.u16()}, 1, nil

	case TagMethodHandle:
		if err := r.Check(3, "method handle"); err != nil {
			return nil, 0, err
		}
		kind := ReferenceKind(r.u8())
		idx := r.u16()
		if !kind.Valid() {
			return nil, 0, fmt.Errorf("%w: %d", ErrBadReferenceKind, kind)
		}
		return MethodHandleInfo{ReferenceKind: kind, ReferenceIndex: idx}, 1, nil

	case TagMethodType:
		idx, err := r.U16("method type - descriptor index")
		if err != nil {
			return nil, 0, err
		}
		return MethodTypeInfo{DescriptorIndex: idx}, 1, nil

	case TagDynamic:
		if err := r.Check(4, "dynamic"); err != nil {
			return nil, 0, err
		}
		return DynamicInfo{BootstrapMethodAttrIndex: r.u16(), NameAndTypeIndex: r.u16()}, 1, nil

	case TagInvokeDynamic:
		if err := r.Check(4, "invoke dynamic"); err != nil {
			return nil, 0, err
		}
		return InvokeDynamicInfo{BootstrapMethodAttrIndex: r.u16(), NameAndTypeIndex: r.u16()}, 1, nil

	case TagModule:
		idx, err := r.U16("module - name index")
		if err != nil {
			return nil, 0, err
		}
		return ModuleInfo{NameIndex: idx}, 1, nil

	case TagPackage:
		idx, err := r.U16("package - name index")
		if err != nil {
			return nil, 0, err
		}
		return PackageInfo{NameIndex: idx}, 1, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrBadTag, tag)
	}
}

// valid reports whether i is a usable, in-range index: nonzero and less
// than the pool's count.
func (p *ConstantPool) valid(i Index) bool {
	return i != 0 && cpIdxToArrIdx(i) < len(p.tags)
}

// get returns the raw tag and entry at i under a read lock, or false if i
// is out of range.
func (p *ConstantPool) get(i Index) (byte, ConstantPoolEntry, bool) {
	if !p.valid(i) {
		return 0, nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	idx := cpIdxToArrIdx(i)
	return p.tags[idx], p.entries[idx], true
}

// GetUtf8 returns the unresolved Utf8Info at i, if present.
func (p *ConstantPool) GetUtf8(i Index) (Utf8Info, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagUtf8 {
		return Utf8Info{}, false
	}
	return e.(Utf8Info), true
}

// GetInteger returns the IntegerInfo at i, if present.
func (p *ConstantPool) GetInteger(i Index) (IntegerInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagInteger {
		return IntegerInfo{}, false
	}
	return e.(IntegerInfo), true
}

// GetFloat returns the FloatInfo at i, if present.
func (p *ConstantPool) GetFloat(i Index) (FloatInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagFloat {
		return FloatInfo{}, false
	}
	return e.(FloatInfo), true
}

// GetLong returns the LongInfo at i, if present.
func (p *ConstantPool) GetLong(i Index) (LongInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagLong {
		return LongInfo{}, false
	}
	return e.(LongInfo), true
}

// GetDouble returns the DoubleInfo at i, if present.
func (p *ConstantPool) GetDouble(i Index) (DoubleInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagDouble {
		return DoubleInfo{}, false
	}
	return e.(DoubleInfo), true
}

// GetClass returns the unresolved ClassInfo at i, if present.
func (p *ConstantPool) GetClass(i Index) (ClassInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagClass {
		return ClassInfo{}, false
	}
	return e.(ClassInfo), true
}

// GetString returns the unresolved StringInfo at i, if present.
func (p *ConstantPool) GetString(i Index) (StringInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagString {
		return StringInfo{}, false
	}
	return e.(StringInfo), true
}

// GetFieldref returns the FieldrefInfo at i, if present.
func (p *ConstantPool) GetFieldref(i Index) (FieldrefInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagFieldref {
		return FieldrefInfo{}, false
	}
	return e.(FieldrefInfo), true
}

// GetMethodref returns the MethodrefInfo at i, if present.
func (p *ConstantPool) GetMethodref(i Index) (MethodrefInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagMethodref {
		return MethodrefInfo{}, false
	}
	return e.(MethodrefInfo), true
}

// GetInterfaceMethodref returns the InterfaceMethodrefInfo at i, if present.
func (p *ConstantPool) GetInterfaceMethodref(i Index) (InterfaceMethodrefInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagInterfaceMethodref {
		return InterfaceMethodrefInfo{}, false
	}
	return e.(InterfaceMethodrefInfo), true
}

// GetNameAndType returns the unresolved NameAndTypeInfo at i, if present.
func (p *ConstantPool) GetNameAndType(i Index) (NameAndTypeInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagNameAndType {
		return NameAndTypeInfo{}, false
	}
	return e.(NameAndTypeInfo), true
}

// GetMethodHandle returns the MethodHandleInfo at i, if present.
func (p *ConstantPool) GetMethodHandle(i Index) (MethodHandleInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagMethodHandle {
		return MethodHandleInfo{}, false
	}
	return e.(MethodHandleInfo), true
}

// GetMethodType returns the MethodTypeInfo at i, if present.
func (p *ConstantPool) GetMethodType(i Index) (MethodTypeInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagMethodType {
		return MethodTypeInfo{}, false
	}
	return e.(MethodTypeInfo), true
}

// GetDynamic returns the DynamicInfo at i, if present.
func (p *ConstantPool) GetDynamic(i Index) (DynamicInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagDynamic {
		return DynamicInfo{}, false
	}
	return e.(DynamicInfo), true
}

// GetInvokeDynamic returns the InvokeDynamicInfo at i, if present.
func (p *ConstantPool) GetInvokeDynamic(i Index) (InvokeDynamicInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagInvokeDynamic {
		return InvokeDynamicInfo{}, false
	}
	return e.(InvokeDynamicInfo), true
}

// GetModule returns the ModuleInfo at i, if present.
func (p *ConstantPool) GetModule(i Index) (ModuleInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagModule {
		return ModuleInfo{}, false
	}
	return e.(ModuleInfo), true
}

// GetPackage returns the PackageInfo at i, if present.
func (p *ConstantPool) GetPackage(i Index) (PackageInfo, bool) {
	tag, e, ok := p.get(i)
	if !ok || tag != TagPackage {
		return PackageInfo{}, false
	}
	return e.(PackageInfo), true
}

// ResolveUtf8 decodes the Utf8 entry at i to text, replacing the slot
// with its resolved form the first time it's asked for. Subsequent calls
// return the cached ResolvedUtf8Info without decoding again.
func (p *ConstantPool) ResolveUtf8(i Index) (ResolvedUtf8Info, bool) {
	if !p.valid(i) {
		return ResolvedUtf8Info{}, false
	}
	idx := cpIdxToArrIdx(i)

	p.mu.RLock()
	if p.tags[idx] == tagResolvedUtf8 {
		r := p.entries[idx].(ResolvedUtf8Info)
		p.mu.RUnlock()
		return r, true
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tags[idx] == tagResolvedUtf8 {
		return p.entries[idx].(ResolvedUtf8Info), true
	}
	if p.tags[idx] != TagUtf8 {
		return ResolvedUtf8Info{}, false
	}
	raw := p.entries[idx].(Utf8Info)
	resolved := ResolvedUtf8Info{Text: DecodeModifiedUTF8(raw.Bytes)}
	p.tags[idx] = tagResolvedUtf8
	p.entries[idx] = resolved
	return resolved, true
}

// ResolveClass dereferences the ClassInfo at i through ResolveUtf8 on its
// name index, replacing the slot with the resolved form.
func (p *ConstantPool) ResolveClass(i Index) (ResolvedClassInfo, bool) {
	if !p.valid(i) {
		return ResolvedClassInfo{}, false
	}
	idx := cpIdxToArrIdx(i)

	p.mu.RLock()
	if p.tags[idx] == tagResolvedClass {
		r := p.entries[idx].(ResolvedClassInfo)
		p.mu.RUnlock()
		return r, true
	}
	p.mu.RUnlock()

	p.mu.Lock()
	already := p.tags[idx] == tagResolvedClass
	isClass := p.tags[idx] == TagClass
	var class ClassInfo
	if isClass {
		class = p.entries[idx].(ClassInfo)
	}
	if already {
		r := p.entries[idx].(ResolvedClassInfo)
		p.mu.Unlock()
		return r, true
	}
	p.mu.Unlock()
	if !isClass {
		return ResolvedClassInfo{}, false
	}

	name, ok := p.ResolveUtf8(class.NameIndex)
	if !ok {
		return ResolvedClassInfo{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tags[idx] == tagResolvedClass {
		return p.entries[idx].(ResolvedClassInfo), true
	}
	resolved := ResolvedClassInfo{Name: name.Text}
	p.tags[idx] = tagResolvedClass
	p.entries[idx] = resolved
	return resolved, true
}

// ResolveString dereferences the StringInfo at i through ResolveUtf8 on
// its value index, replacing the slot with the resolved form.
func (p *ConstantPool) ResolveString(i Index) (ResolvedStringInfo, bool) {
	if !p.valid(i) {
		return ResolvedStringInfo{}, false
	}
	idx := cpIdxToArrIdx(i)

	p.mu.RLock()
	if p.tags[idx] == tagResolvedString {
		r := p.entries[idx].(ResolvedStringInfo)
		p.mu.RUnlock()
		return r, true
	}
	isString := p.tags[idx] == TagString
	var str StringInfo
	if isString {
		str = p.entries[idx].(StringInfo)
	}
	p.mu.RUnlock()
	if !isString {
		return ResolvedStringInfo{}, false
	}

	value, ok := p.ResolveUtf8(str.ValueIndex)
	if !ok {
		return ResolvedStringInfo{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tags[idx] == tagResolvedString {
		return p.entries[idx].(ResolvedStringInfo), true
	}
	resolved := ResolvedStringInfo{Value: value.Text}
	p.tags[idx] = tagResolvedString
	p.entries[idx] = resolved
	return resolved, true
}

// ResolveNameAndType dereferences both halves of the NameAndTypeInfo at
// i, replacing the slot with the resolved form.
func (p *ConstantPool) ResolveNameAndType(i Index) (ResolvedNameAndTypeInfo, bool) {
	if !p.valid(i) {
		return ResolvedNameAndTypeInfo{}, false
	}
	idx := cpIdxToArrIdx(i)

	p.mu.RLock()
	if p.tags[idx] == tagResolvedNameAndType {
		r := p.entries[idx].(ResolvedNameAndTypeInfo)
		p.mu.RUnlock()
		return r, true
	}
	isNat := p.tags[idx] == TagNameAndType
	var nat NameAndTypeInfo
	if isNat {
		nat = p.entries[idx].(NameAndTypeInfo)
	}
	p.mu.RUnlock()
	if !isNat {
		return ResolvedNameAndTypeInfo{}, false
	}

	name, ok := p.ResolveUtf8(nat.NameIndex)
	if !ok {
		return ResolvedNameAndTypeInfo{}, false
	}
	descriptor, ok := p.ResolveUtf8(nat.DescriptorIndex)
	if !ok {
		return ResolvedNameAndTypeInfo{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tags[idx] == tagResolvedNameAndType {
		return p.entries[idx].(ResolvedNameAndTypeInfo), true
	}
	resolved := ResolvedNameAndTypeInfo{Name: name.Text, Descriptor: descriptor.Text}
	p.tags[idx] = tagResolvedNameAndType
	p.entries[idx] = resolved
	return resolved, true
}

// constantPoolSlot is one addressable constant-pool entry in exported
// form, for serialization only.
type constantPoolSlot struct {
	Index Index
	Tag   byte
	Entry ConstantPoolEntry
}

// MarshalJSON renders the pool as an ordered list of its addressable
// slots, skipping the invalid trailing half of wide Long/Double entries.
// Every field of ConstantPool itself is unexported (see the mutex
// discipline documented on the type), so this is the only way to get a
// printable or serializable view of it.
func (p *ConstantPool) MarshalJSON() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	slots := make([]constantPoolSlot, 0, len(p.tags))
	for i, tag := range p.tags {
		if tag == tagInvalid {
			continue
		}
		slots = append(slots, constantPoolSlot{
			Index: Index(i + 1),
			Tag:   tag,
			Entry: p.entries[i],
		})
	}
	return json.Marshal(slots)
}

// resolveAllEager walks every slot once and resolves the four
// resolvable kinds, implementing the Options.EagerResolve strategy
// of spec §5/§9 as an alternative to per-call lazy resolution. After
// this runs the pool is only ever read, never written again.
func (p *ConstantPool) resolveAllEager() {
	for idx, tag := range p.tags {
		i := Index(idx + 1)
		switch tag {
		case TagUtf8:
			p.ResolveUtf8(i)
		case TagClass:
			p.ResolveClass(i)
		case TagString:
			p.ResolveString(i)
		case TagNameAndType:
			p.ResolveNameAndType(i)
		}
	}
}
