// SPDX-License-Identifier: MPL-2.0

package cueutil_test

import (
	"strings"
	"testing"

	"metacheck/pkg/cueutil"
)

const testSchema = `
#Config: {
	grouping_width: int & >=1 | *3
	disabled_rules: [...string] | *[]
}
`

type testConfig struct {
	GroupingWidth int      `json:"grouping_width"`
	DisabledRules []string `json:"disabled_rules"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema),
		[]byte(`grouping_width: 2, disabled_rules: ["archive-naming"]`),
		"#Config",
		cueutil.WithFilename("config.cue"),
	)
	if err != nil {
		t.Fatalf("ParseAndDecode: %v", err)
	}
	if res.Value.GroupingWidth != 2 {
		t.Errorf("GroupingWidth = %d, want 2", res.Value.GroupingWidth)
	}
	if len(res.Value.DisabledRules) != 1 || res.Value.DisabledRules[0] != "archive-naming" {
		t.Errorf("DisabledRules = %v", res.Value.DisabledRules)
	}
}

func TestParseAndDecode_Default(t *testing.T) {
	t.Parallel()

	res, err := cueutil.ParseAndDecode[testConfig]([]byte(testSchema), []byte(`{}`), "#Config")
	if err != nil {
		t.Fatalf("ParseAndDecode: %v", err)
	}
	if res.Value.GroupingWidth != 3 {
		t.Errorf("GroupingWidth = %d, want default 3", res.Value.GroupingWidth)
	}
}

func TestParseAndDecode_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema),
		[]byte(`grouping_width: 0`),
		"#Config",
		cueutil.WithFilename("config.cue"),
	)
	if err == nil {
		t.Fatal("expected validation error for width 0")
	}
	if !strings.Contains(err.Error(), "config.cue") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestParseAndDecode_SizeLimit(t *testing.T) {
	t.Parallel()

	_, err := cueutil.ParseAndDecode[testConfig](
		[]byte(testSchema),
		[]byte(`grouping_width: 2`),
		"#Config",
		cueutil.WithMaxFileSize(4),
	)
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("error = %v, want size limit message", err)
	}
}
