// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestValidateFieldDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"I", true},
		{"Z", true},
		{"Ljava/lang/String;", true},
		{"[I", true},
		{"[[Ljava/lang/String;", true},
		{"", false},
		{"L", false},
		{"Ljava/lang/String", false}, // missing trailing ';'
		{"Q", false},                 // not a base type
		{"[", false},                 // array with no element type
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidateFieldDescriptor(tt.in); got != tt.want {
				t.Fatalf("ValidateFieldDescriptor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateMethodDescriptor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"()V", true},
		{"(II)V", true},
		{"(Ljava/lang/String;I)Z", true},
		{"([Ljava/lang/String;)V", true},
		{"(", false},
		{"()", false},
		{"(I", false},
		{"()X", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ValidateMethodDescriptor(tt.in); got != tt.want {
				t.Fatalf("ValidateMethodDescriptor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
