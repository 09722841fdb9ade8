// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestParseRecord(t *testing.T) {
	ctx := ctxWithOneUtf8("Signature")
	// components_count=1: name_index=1, descriptor_index=1,
	// attributes_count=1: Signature(name_index=1, length=2, signature_index=1).
	data := []byte{
		0x00, 0x01,
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x01,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01,
	}
	attr, err := parseRecord(NewReader(data), ctx)
	if err != nil {
		t.Fatalf("parseRecord() failed, reason: %v", err)
	}
	rec := attr.(Record)
	if len(rec.Components) != 1 {
		t.Fatalf("len(Components) = %d, want 1", len(rec.Components))
	}
	c := rec.Components[0]
	if c.NameIndex != 1 || c.DescriptorIndex != 1 {
		t.Fatalf("Component = %+v, want NameIndex 1, DescriptorIndex 1", c)
	}
	if len(c.Attributes) != 1 || c.Attributes[0].Name != "Signature" {
		t.Fatalf("Attributes = %+v, want one Signature attribute", c.Attributes)
	}
	sig, ok := c.Attributes[0].Value.(Signature)
	if !ok || sig.SignatureIndex != 1 {
		t.Fatalf("Value = %+v, want Signature{SignatureIndex: 1}", c.Attributes[0].Value)
	}
}

func TestParseRecordNoConstantValue(t *testing.T) {
	// ConstantValue is not among the attributes a record component
	// recognises, so it always falls back to RawAttribute.
	ctx := ctxWithOneUtf8("ConstantValue")
	data := []byte{
		0x00, 0x01,
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x01,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x05,
	}
	attr, err := parseRecord(NewReader(data), ctx)
	if err != nil {
		t.Fatalf("parseRecord() failed, reason: %v", err)
	}
	c := attr.(Record).Components[0]
	if _, ok := c.Attributes[0].Value.(RawAttribute); !ok {
		t.Fatalf("Value is %T, want RawAttribute (ConstantValue unrecognised on a record component)", c.Attributes[0].Value)
	}
}
