// SPDX-License-Identifier: MPL-2.0

// Package version interprets release version strings.
//
// The ecosystem writes the same underlying version tuple in two textual
// encodings: decimal form ("1.1901", one dot, fractional digits grouped by a
// fixed width) and vstring form ("v1.190.100", a literal dotted tuple). Both
// normalize to an integer tuple; comparison is lexicographic over the tuple
// with trailing-zero padding. Mixing fractional digit-group widths across
// decimal-form versions reverses naive ordering ("1.190" vs "1.20"), so that
// condition is detected and surfaced rather than resolved by guessing.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"metacheck/pkg/types"
)

// DefaultGroupingWidth is the conventional number of fractional digits per
// tuple segment in decimal form. The width is a packaging convention, not a
// property of the version string itself, so callers may override it.
const DefaultGroupingWidth = 3

// ErrParse is the sentinel error wrapped by ParseError.
var ErrParse = errors.New("unparsable version")

// Form identifies which textual encoding a version string used.
type Form string

const (
	// FormDecimal is the single-dot decimal encoding, e.g. "1.1901".
	FormDecimal Form = "decimal"
	// FormVstring is the dotted-tuple encoding, e.g. "v1.190.100" or "1.2.3".
	FormVstring Form = "vstring"
	// FormBare is a version with no fractional part, e.g. "3".
	FormBare Form = "bare"
)

type (
	// Spec is a parsed, comparable release version.
	Spec struct {
		// Raw is the original string as written.
		Raw string
		// Form is the encoding the string used.
		Form Form
		// Tuple is the canonical integer tuple.
		Tuple []int
		// FracDigits is the number of fractional digits in decimal form,
		// zero for the other forms. It drives ambiguous-width detection.
		FracDigits int
	}

	// ParseError is returned when a version string fits neither encoding.
	ParseError struct {
		Input  string
		Reason string
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable version %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrParse for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrParse }

// Parse interprets a version string using DefaultGroupingWidth.
func Parse(s string) (Spec, error) {
	return ParseWidth(s, DefaultGroupingWidth)
}

// ParseWidth interprets a version string, grouping decimal-form fractional
// digits by the given width. Width must be at least 1.
func ParseWidth(s string, width int) (Spec, error) {
	if width < 1 {
		return Spec{}, &ParseError{Input: s, Reason: fmt.Sprintf("grouping width %d out of range", width)}
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Spec{}, &ParseError{Input: s, Reason: "empty string"}
	}

	if err := types.VersionString(trimmed).Validate(); err != nil {
		return Spec{}, &ParseError{Input: s, Reason: err.Error()}
	}

	body := trimmed
	hasV := strings.HasPrefix(body, "v")
	if hasV {
		body = body[1:]
	}

	parts := strings.Split(body, ".")

	// A leading "v" or more than one dot selects vstring form. Exactly one
	// dot without "v" is decimal form; no dot is a bare major.
	switch {
	case hasV || len(parts) > 2:
		tuple, err := literalTuple(s, parts)
		if err != nil {
			return Spec{}, err
		}
		return Spec{Raw: trimmed, Form: FormVstring, Tuple: tuple}, nil
	case len(parts) == 2:
		return parseDecimal(trimmed, parts[0], parts[1], width)
	default:
		major, err := parseSegment(s, parts[0])
		if err != nil {
			return Spec{}, err
		}
		return Spec{Raw: trimmed, Form: FormBare, Tuple: []int{major}}, nil
	}
}

func parseDecimal(raw, intPart, fracPart string, width int) (Spec, error) {
	major, err := parseSegment(raw, intPart)
	if err != nil {
		return Spec{}, err
	}

	tuple := []int{major}
	for i := 0; i < len(fracPart); i += width {
		group := fracPart[i:min(i+width, len(fracPart))]
		// The last group is right-padded: "1.19" means "1.190" under width 3.
		for len(group) < width {
			group += "0"
		}
		n, err := parseSegment(raw, group)
		if err != nil {
			return Spec{}, err
		}
		tuple = append(tuple, n)
	}

	return Spec{Raw: raw, Form: FormDecimal, Tuple: tuple, FracDigits: len(fracPart)}, nil
}

func literalTuple(raw string, parts []string) ([]int, error) {
	tuple := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := parseSegment(raw, part)
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, n)
	}
	return tuple, nil
}

func parseSegment(raw, part string) (int, error) {
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, &ParseError{Input: raw, Reason: fmt.Sprintf("segment %q out of range", part)}
	}
	return n, nil
}

// String returns the version as originally written.
func (s Spec) String() string { return s.Raw }

// Vstring renders the canonical tuple in vstring form, e.g. "v1.2345.6".
// Rendering loses no information: parsing the result yields the same tuple.
func (s Spec) Vstring() string {
	segs := make([]string, len(s.Tuple))
	for i, n := range s.Tuple {
		segs[i] = strconv.Itoa(n)
	}
	return "v" + strings.Join(segs, ".")
}

// Compare orders two versions by their canonical tuples, padding the shorter
// tuple with trailing zeros. It returns -1, 0, or 1.
func Compare(a, b Spec) int {
	n := max(len(a.Tuple), len(b.Tuple))
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a.Tuple) {
			av = a.Tuple[i]
		}
		if i < len(b.Tuple) {
			bv = b.Tuple[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// AmbiguousWidth reports whether comparing two decimal-form versions is
// hazardous because their fractional digit counts disagree and at least one
// is not a whole number of width-sized groups. "1.190" (three fractional
// digits) against "1.20" (two) is the canonical reversal hazard.
func AmbiguousWidth(a, b Spec, width int) bool {
	if a.Form != FormDecimal || b.Form != FormDecimal {
		return false
	}
	if a.FracDigits == b.FracDigits {
		return false
	}
	return a.FracDigits%width != 0 || b.FracDigits%width != 0
}
