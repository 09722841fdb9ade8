// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// classFileAttributeParsers are the attribute names recognised directly
// on a ClassFile, §6.2.
func classFileAttributeParsers() map[string]attributeParser {
	return map[string]attributeParser{
		AttrSourceFile:                       parseSourceFile,
		AttrInnerClasses:                     parseInnerClasses,
		AttrEnclosingMethod:                  parseEnclosingMethod,
		AttrSynthetic:                        parseSynthetic,
		AttrSignature:                        parseSignature,
		AttrDeprecated:                       parseDeprecated,
		AttrRuntimeVisibleAnnotations:        parseRuntimeVisibleAnnotations,
		AttrRuntimeInvisibleAnnotations:      parseRuntimeInvisibleAnnotations,
		AttrRuntimeVisibleTypeAnnotations:    parseRuntimeVisibleTypeAnnotations,
		AttrRuntimeInvisibleTypeAnnotations:  parseRuntimeInvisibleTypeAnnotations,
		AttrBootstrapMethods:                 parseBootstrapMethods,
		AttrModule:                           parseModule,
		AttrModulePackages:                   parseModulePackages,
		AttrModuleMainClass:                  parseModuleMainClass,
		AttrNestHost:                         parseNestHost,
		AttrNestMembers:                      parseNestMembers,
		AttrRecord:                           parseRecord,
		AttrPermittedSubclasses:              parsePermittedSubclasses,
	}
}

// fieldAttributeParsers are the attribute names recognised on a field.
func fieldAttributeParsers() map[string]attributeParser {
	return map[string]attributeParser{
		AttrConstantValue:                   parseConstantValue,
		AttrSynthetic:                       parseSynthetic,
		AttrDeprecated:                      parseDeprecated,
		AttrSignature:                       parseSignature,
		AttrRuntimeVisibleAnnotations:       parseRuntimeVisibleAnnotations,
		AttrRuntimeInvisibleAnnotations:     parseRuntimeInvisibleAnnotations,
		AttrRuntimeVisibleTypeAnnotations:   parseRuntimeVisibleTypeAnnotations,
		AttrRuntimeInvisibleTypeAnnotations: parseRuntimeInvisibleTypeAnnotations,
	}
}

// methodAttributeParsers are the attribute names recognised on a method.
func methodAttributeParsers() map[string]attributeParser {
	return map[string]attributeParser{
		AttrCode:                             parseCode,
		AttrExceptions:                       parseExceptions,
		AttrSynthetic:                        parseSynthetic,
		AttrDeprecated:                       parseDeprecated,
		AttrSignature:                        parseSignature,
		AttrMethodParameters:                 parseMethodParameters,
		AttrAnnotationDefault:                parseAnnotationDefault,
		AttrRuntimeVisibleAnnotations:        parseRuntimeVisibleAnnotations,
		AttrRuntimeInvisibleAnnotations:      parseRuntimeInvisibleAnnotations,
		AttrRuntimeVisibleParameterAnnotations:   parseRuntimeVisibleParameterAnnotations,
		AttrRuntimeInvisibleParameterAnnotations: parseRuntimeInvisibleParameterAnnotations,
		AttrRuntimeVisibleTypeAnnotations:    parseRuntimeVisibleTypeAnnotations,
		AttrRuntimeInvisibleTypeAnnotations:  parseRuntimeInvisibleTypeAnnotations,
	}
}
