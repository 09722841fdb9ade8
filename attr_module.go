// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// ModuleRequires is one entry of a Module attribute's requires table:
// another module this module depends on.
type ModuleRequires struct {
	RequiresIndex   Index
	RequiresFlags   AccessFlags
	RequiresVersion Index // 0 if unspecified
}

// ModuleExports is one entry of a Module attribute's exports or opens
// table: a package this module exports (or opens), and optionally the
// specific modules it is restricted to.
type ModuleExports struct {
	Index   Index
	Flags   AccessFlags
	ToIndex []Index
}

// ModuleProvides is one entry of a Module attribute's provides table: a
// service interface and the classes that implement it.
type ModuleProvides struct {
	Index      Index
	WithIndex  []Index
}

// Module describes this classfile's module declaration (module-info.class).
type Module struct {
	NameIndex Index
	Flags     AccessFlags
	VersionIndex Index // 0 if unspecified

	Requires []ModuleRequires
	Exports  []ModuleExports
	Opens    []ModuleExports
	Uses     []Index
	Provides []ModuleProvides
}

func (Module) isAttribute() {}

func parseModule(r *Reader, _ *attrContext) (Attribute, error) {
	if err := r.Check(6, "module header"); err != nil {
		return nil, err
	}
	m := Module{NameIndex: r.u16(), Flags: AccessFlags(r.u16()), VersionIndex: r.u16()}

	requiresCount, err := r.U16("requires count")
	if err != nil {
		return nil, err
	}
	m.Requires = make([]ModuleRequires, requiresCount)
	for i := 0; i < int(requiresCount); i++ {
		if err := r.Check(6, fmt.Sprintf("requires[%d]", i)); err != nil {
			return nil, err
		}
		m.Requires[i] = ModuleRequires{
			RequiresIndex:   r.u16(),
			RequiresFlags:   AccessFlags(r.u16()),
			RequiresVersion: r.u16(),
		}
	}

	m.Exports, err = parseModuleExportsTable(r, "exports")
	if err != nil {
		return nil, err
	}
	m.Opens, err = parseModuleExportsTable(r, "opens")
	if err != nil {
		return nil, err
	}

	usesCount, err := r.U16("uses count")
	if err != nil {
		return nil, err
	}
	m.Uses, err = r.U16Slice(int(usesCount), "uses")
	if err != nil {
		return nil, err
	}

	providesCount, err := r.U16("provides count")
	if err != nil {
		return nil, err
	}
	m.Provides = make([]ModuleProvides, providesCount)
	for i := 0; i < int(providesCount); i++ {
		if err := r.Check(4, fmt.Sprintf("provides[%d]", i)); err != nil {
			return nil, err
		}
		index := r.u16()
		withCount := r.u16()
		with, err := r.U16Slice(int(withCount), fmt.Sprintf("provides[%d] with", i))
		if err != nil {
			return nil, err
		}
		m.Provides[i] = ModuleProvides{Index: index, WithIndex: with}
	}

	return m, nil
}

func parseModuleExportsTable(r *Reader, context string) ([]ModuleExports, error) {
	count, err := r.U16(context + " count")
	if err != nil {
		return nil, err
	}
	out := make([]ModuleExports, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(4, fmt.Sprintf("%s[%d]", context, i)); err != nil {
			return nil, err
		}
		index := r.u16()
		flags := AccessFlags(r.u16())
		toCount, err := r.U16(fmt.Sprintf("%s[%d] to count", context, i))
		if err != nil {
			return nil, err
		}
		to, err := r.U16Slice(int(toCount), fmt.Sprintf("%s[%d] to", context, i))
		if err != nil {
			return nil, err
		}
		out[i] = ModuleExports{Index: index, Flags: flags, ToIndex: to}
	}
	return out, nil
}
