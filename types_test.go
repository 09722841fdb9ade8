// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		version Version
		wantErr bool
	}{
		{"java 8, ordinary minor", Version{Major: 52, Minor: 0}, false},
		{"below min major", Version{Major: 44, Minor: 0}, true},
		{"above max major", Version{Major: 70, Minor: 0}, true},
		{"preview-gated major, minor 0 allowed", Version{Major: 57, Minor: 0}, false},
		{"preview-gated major, arbitrary minor rejected", Version{Major: 57, Minor: 7}, true},
		{"preview minor on non-current major rejected", Version{Major: 57, Minor: 65535}, true},
		{"preview minor on current max major allowed", Version{Major: MaxMajorVersion, Minor: 65535}, false},
		{"gate boundary major unrestricted minor", Version{Major: previewGateMajor, Minor: 1234}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkVersion(tt.version)
			if tt.wantErr && !errors.Is(err, ErrUnsupportedVersion) {
				t.Fatalf("checkVersion(%+v) = %v, want ErrUnsupportedVersion", tt.version, err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("checkVersion(%+v) failed, reason: %v", tt.version, err)
			}
		})
	}
}

func TestAccessFlagsHelpers(t *testing.T) {
	f := AccPublic | AccInterface | AccAbstract
	if !f.IsPublic() {
		t.Fatalf("IsPublic() = false, want true")
	}
	if !f.IsInterface() {
		t.Fatalf("IsInterface() = false, want true")
	}
	if !f.IsAbstract() {
		t.Fatalf("IsAbstract() = false, want true")
	}
	if f.IsSynthetic() {
		t.Fatalf("IsSynthetic() = true, want false")
	}
}

func TestReferenceKindValid(t *testing.T) {
	tests := []struct {
		kind ReferenceKind
		want bool
	}{
		{0, false},
		{1, true},
		{9, true},
		{10, false},
	}
	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Fatalf("ReferenceKind(%d).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	v := Version{Major: 52, Minor: 0}
	if v.String() != "52.0" {
		t.Fatalf("String() = %q, want %q", v.String(), "52.0")
	}
}
