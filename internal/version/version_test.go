// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		width     int
		wantForm  Form
		wantTuple []int
		wantErr   bool
	}{
		{"decimal grouped by three", "1.1901", 3, FormDecimal, []int{1, 190, 100}, false},
		{"decimal short fraction", "1.20", 3, FormDecimal, []int{1, 200}, false},
		{"decimal exact group", "1.190", 3, FormDecimal, []int{1, 190}, false},
		{"decimal two groups", "2.003001", 3, FormDecimal, []int{2, 3, 1}, false},
		{"decimal width two", "1.1901", 2, FormDecimal, []int{1, 19, 1}, false},
		{"vstring with prefix", "v1.190.100", 3, FormVstring, []int{1, 190, 100}, false},
		{"vstring two dots no prefix", "1.2.3", 3, FormVstring, []int{1, 2, 3}, false},
		{"vstring single segment", "v5", 3, FormVstring, []int{5}, false},
		{"bare major", "3", 3, FormBare, []int{3}, false},
		{"surrounding whitespace", " 1.20 ", 3, FormDecimal, []int{1, 200}, false},
		{"empty", "", 3, "", nil, true},
		{"lone v", "v", 3, "", nil, true},
		{"trailing dot", "1.", 3, "", nil, true},
		{"letters", "1.2a", 3, "", nil, true},
		{"zero width", "1.2", 0, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec, err := ParseWidth(tt.input, tt.width)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWidth(%q, %d) error = %v, wantErr %v", tt.input, tt.width, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrParse) {
					t.Errorf("ParseWidth(%q) error does not wrap ErrParse", tt.input)
				}
				return
			}
			if spec.Form != tt.wantForm {
				t.Errorf("ParseWidth(%q) form = %q, want %q", tt.input, spec.Form, tt.wantForm)
			}
			if !reflect.DeepEqual(spec.Tuple, tt.wantTuple) {
				t.Errorf("ParseWidth(%q) tuple = %v, want %v", tt.input, spec.Tuple, tt.wantTuple)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"grouped decimal precedes larger group", "1.1901", "1.20", -1},
		{"equal across forms", "1.190", "v1.190", 0},
		{"trailing zero padding", "v1.2", "v1.2.0", 0},
		{"major wins", "2.1", "v1.900.900", 1},
		{"bare vs decimal", "3", "3.001", -1},
		{"deep tuple", "v1.2.3.4", "v1.2.3.5", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Parse(tt.a)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.a, err)
			}
			b, err := Parse(tt.b)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.b, err)
			}
			if got := Compare(a, b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := Compare(b, a); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestVstringRoundTrip(t *testing.T) {
	t.Parallel()

	spec, err := Parse("v1.2345.6")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := []int{1, 2345, 6}; !reflect.DeepEqual(spec.Tuple, want) {
		t.Fatalf("tuple = %v, want %v", spec.Tuple, want)
	}

	rendered := spec.Vstring()
	if rendered != "v1.2345.6" {
		t.Fatalf("Vstring() = %q, want %q", rendered, "v1.2345.6")
	}

	again, err := Parse(rendered)
	if err != nil {
		t.Fatalf("Parse(rendered): %v", err)
	}
	if !reflect.DeepEqual(again.Tuple, spec.Tuple) {
		t.Fatalf("round-trip tuple = %v, want %v", again.Tuple, spec.Tuple)
	}
}

func TestAmbiguousWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"canonical reversal hazard", "1.190", "1.20", true},
		{"equal digit counts", "1.19", "1.29", false},
		{"both whole groups", "1.190", "1.190100", false},
		{"vstring never ambiguous", "v1.190", "1.20", false},
		{"ragged against whole group", "1.1901", "1.190", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Parse(tt.a)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.a, err)
			}
			b, err := Parse(tt.b)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.b, err)
			}
			if got := AmbiguousWidth(a, b, DefaultGroupingWidth); got != tt.want {
				t.Errorf("AmbiguousWidth(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLineageOrderingProperty(t *testing.T) {
	t.Parallel()

	// Historically later releases must compare strictly greater once
	// normalized, including the decimal/vstring crossover cases.
	lineage := []string{"0.9", "1.0", "1.001", "1.1901", "1.20", "v1.300.1", "2.0"}

	prev, err := Parse(lineage[0])
	if err != nil {
		t.Fatalf("Parse(%q): %v", lineage[0], err)
	}
	for _, raw := range lineage[1:] {
		cur, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		if Compare(prev, cur) != -1 {
			t.Errorf("Compare(%q, %q) = %d, want -1", prev.Raw, cur.Raw, Compare(prev, cur))
		}
		prev = cur
	}
}
