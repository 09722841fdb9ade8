// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// InnerClass describes one class's membership in an outer class or
// method.
type InnerClass struct {
	InnerClassIndex   Index
	OuterClassIndex   Index // 0 if not a member
	InnerNameIndex    Index // 0 if anonymous
	InnerAccessFlags  AccessFlags
}

// InnerClasses records every class or interface this classfile's types
// are members of, or contain as members.
type InnerClasses struct {
	Classes []InnerClass
}

func (InnerClasses) isAttribute() {}

func parseInnerClasses(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("inner classes count")
	if err != nil {
		return nil, err
	}
	classes := make([]InnerClass, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(8, fmt.Sprintf("inner class[%d]", i)); err != nil {
			return nil, err
		}
		classes[i] = InnerClass{
			InnerClassIndex:  r.u16(),
			OuterClassIndex:  r.u16(),
			InnerNameIndex:   r.u16(),
			InnerAccessFlags: AccessFlags(r.u16()),
		}
	}
	return InnerClasses{Classes: classes}, nil
}

// EnclosingMethod names the innermost enclosing class and, for a local or
// anonymous class declared inside a method, that method.
type EnclosingMethod struct {
	ClassIndex  Index
	MethodIndex Index // 0 if not enclosed by a method
}

func (EnclosingMethod) isAttribute() {}

func parseEnclosingMethod(r *Reader, _ *attrContext) (Attribute, error) {
	if err := r.Check(4, "enclosing method"); err != nil {
		return nil, err
	}
	return EnclosingMethod{ClassIndex: r.u16(), MethodIndex: r.u16()}, nil
}

// BootstrapMethod is one entry of the BootstrapMethods table referenced
// by Dynamic and InvokeDynamic constant pool entries.
type BootstrapMethod struct {
	MethodRef          Index
	BootstrapArguments []Index
}

// BootstrapMethods backs every Dynamic and InvokeDynamic constant pool
// entry's bootstrap_method_attr_index.
type BootstrapMethods struct {
	Methods []BootstrapMethod
}

func (BootstrapMethods) isAttribute() {}

func parseBootstrapMethods(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("bootstrap methods count")
	if err != nil {
		return nil, err
	}
	methods := make([]BootstrapMethod, count)
	for i := 0; i < int(count); i++ {
		if err := r.Check(4, fmt.Sprintf("bootstrap method[%d]", i)); err != nil {
			return nil, err
		}
		methodRef := r.u16()
		argCount := r.u16()
		args, err := r.U16Slice(int(argCount), fmt.Sprintf("bootstrap method[%d] arguments", i))
		if err != nil {
			return nil, err
		}
		methods[i] = BootstrapMethod{MethodRef: methodRef, BootstrapArguments: args}
	}
	return BootstrapMethods{Methods: methods}, nil
}

// NestHost names this class's nest host.
type NestHost struct {
	HostClassIndex Index
}

func (NestHost) isAttribute() {}

func parseNestHost(r *Reader, _ *attrContext) (Attribute, error) {
	idx, err := r.U16("nest host class index")
	if err != nil {
		return nil, err
	}
	return NestHost{HostClassIndex: idx}, nil
}

// NestMembers lists every class that is a member of this class's nest.
type NestMembers struct {
	Classes []Index
}

func (NestMembers) isAttribute() {}

func parseNestMembers(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("nest members count")
	if err != nil {
		return nil, err
	}
	classes, err := r.U16Slice(int(count), "nest members")
	if err != nil {
		return nil, err
	}
	return NestMembers{Classes: classes}, nil
}

// PermittedSubclasses lists every class or interface authorized to
// directly extend or implement this sealed class or interface.
type PermittedSubclasses struct {
	Classes []Index
}

func (PermittedSubclasses) isAttribute() {}

func parsePermittedSubclasses(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("permitted subclasses count")
	if err != nil {
		return nil, err
	}
	classes, err := r.U16Slice(int(count), "permitted subclasses")
	if err != nil {
		return nil, err
	}
	return PermittedSubclasses{Classes: classes}, nil
}

// ModulePackages lists every package this module's class loader hosts.
type ModulePackages struct {
	Packages []Index
}

func (ModulePackages) isAttribute() {}

func parseModulePackages(r *Reader, _ *attrContext) (Attribute, error) {
	count, err := r.U16("module packages count")
	if err != nil {
		return nil, err
	}
	pkgs, err := r.U16Slice(int(count), "module packages")
	if err != nil {
		return nil, err
	}
	return ModulePackages{Packages: pkgs}, nil
}

// ModuleMainClass names the module's main class, if it declares one.
type ModuleMainClass struct {
	MainClassIndex Index
}

func (ModuleMainClass) isAttribute() {}

func parseModuleMainClass(r *Reader, _ *attrContext) (Attribute, error) {
	idx, err := r.U16("module main class index")
	if err != nil {
		return nil, err
	}
	return ModuleMainClass{MainClassIndex: idx}, nil
}
