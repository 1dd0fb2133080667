// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestArtifactName_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   ArtifactName
		wantErr bool
	}{
		{"single component", ArtifactName("Foo"), false},
		{"two components", ArtifactName("Foo-Bar"), false},
		{"digits after first letter", ArtifactName("Mod2-Thing"), false},
		{"underscore component", ArtifactName("Foo-Bar_Baz"), false},
		{"empty", ArtifactName(""), true},
		{"whitespace only", ArtifactName("   "), true},
		{"leading digit", ArtifactName("2Foo"), true},
		{"trailing hyphen", ArtifactName("Foo-"), true},
		{"double hyphen", ArtifactName("Foo--Bar"), true},
		{"space inside", ArtifactName("Foo Bar"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ArtifactName(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArtifactName) {
				t.Errorf("ArtifactName(%q).Validate() error does not wrap ErrInvalidArtifactName", tt.value)
			}
		})
	}
}

func TestVersionString_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   VersionString
		wantErr bool
	}{
		{"decimal form", VersionString("1.1901"), false},
		{"vstring form", VersionString("v1.190.100"), false},
		{"bare major", VersionString("3"), false},
		{"dotted without v", VersionString("1.2.3"), false},
		{"empty", VersionString(""), true},
		{"lone v", VersionString("v"), true},
		{"trailing dot", VersionString("1."), true},
		{"double dot", VersionString("1..2"), true},
		{"letters", VersionString("1.2a"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("VersionString(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidVersionString) {
				t.Errorf("VersionString(%q).Validate() error does not wrap ErrInvalidVersionString", tt.value)
			}
		})
	}
}
