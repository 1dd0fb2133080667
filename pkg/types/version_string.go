// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVersionString is the sentinel error wrapped by InvalidVersionStringError.
var ErrInvalidVersionString = errors.New("invalid version string")

type (
	// VersionString is the raw textual form of a release version, either
	// decimal form ("1.1901") or vstring form ("v1.190.100"). Validation here
	// is purely lexical; interpretation lives in the version package.
	VersionString string

	// InvalidVersionStringError is returned when a VersionString contains
	// characters outside digits, dots, and an optional leading 'v'.
	InvalidVersionStringError struct {
		Value VersionString
	}
)

// String returns the string representation of the VersionString.
func (v VersionString) String() string { return string(v) }

// Validate returns an error if the VersionString is lexically malformed.
func (v VersionString) Validate() error {
	s := string(v)
	if strings.HasPrefix(s, "v") {
		s = s[1:]
	}
	if s == "" {
		return &InvalidVersionStringError{Value: v}
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return &InvalidVersionStringError{Value: v}
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return &InvalidVersionStringError{Value: v}
			}
		}
	}
	return nil
}

// Error implements the error interface for InvalidVersionStringError.
func (e *InvalidVersionStringError) Error() string {
	return fmt.Sprintf("invalid version string %q (expected decimal or dotted-tuple form)", e.Value)
}

// Unwrap returns ErrInvalidVersionString for errors.Is() compatibility.
func (e *InvalidVersionStringError) Unwrap() error { return ErrInvalidVersionString }
