// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the artifact,
// rules, and report packages. These are foundation types that carry semantic
// meaning and validation but have no domain-specific dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArtifactName is the sentinel error wrapped by InvalidArtifactNameError.
var ErrInvalidArtifactName = errors.New("invalid artifact name")

type (
	// ArtifactName is a distribution name such as "Foo-Bar". Components are
	// separated by hyphens; each component starts with an ASCII letter and
	// continues with letters, digits, or underscores. The zero value ("") is
	// invalid.
	ArtifactName string

	// InvalidArtifactNameError is returned when an ArtifactName does not
	// follow the hyphen-separated component form.
	InvalidArtifactNameError struct {
		Value ArtifactName
	}
)

// String returns the string representation of the ArtifactName.
func (n ArtifactName) String() string { return string(n) }

// IsValid returns whether the ArtifactName is valid.
func (n ArtifactName) IsValid() (bool, []error) {
	if err := n.Validate(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Validate returns an error if the ArtifactName is empty or malformed.
func (n ArtifactName) Validate() error {
	if strings.TrimSpace(string(n)) == "" {
		return &InvalidArtifactNameError{Value: n}
	}
	for _, part := range strings.Split(string(n), "-") {
		if !validNameComponent(part) {
			return &InvalidArtifactNameError{Value: n}
		}
	}
	return nil
}

func validNameComponent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '_' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

// Error implements the error interface for InvalidArtifactNameError.
func (e *InvalidArtifactNameError) Error() string {
	return fmt.Sprintf("invalid artifact name %q (expected hyphen-separated identifier components)", e.Value)
}

// Unwrap returns ErrInvalidArtifactName for errors.Is() compatibility.
func (e *InvalidArtifactNameError) Unwrap() error { return ErrInvalidArtifactName }
