// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"metacheck/internal/version"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadLineage(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lineage.txt", "# released versions, oldest first\n1.18\n1.19\n\n1.1901\n")

	lineage, err := LoadLineage(path, version.DefaultGroupingWidth)
	if err != nil {
		t.Fatalf("LoadLineage: %v", err)
	}
	if len(lineage) != 3 {
		t.Fatalf("lineage length = %d, want 3", len(lineage))
	}
	if lineage[0].Raw != "1.18" || lineage[2].Raw != "1.1901" {
		t.Errorf("lineage order wrong: %q .. %q", lineage[0].Raw, lineage[2].Raw)
	}
}

func TestLoadLineage_UnparsableVersion(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lineage.txt", "1.18\nbogus!\n")

	_, err := LoadLineage(path, version.DefaultGroupingWidth)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if loadErr.Kind != UnparsableMetadata {
		t.Errorf("Kind = %q, want %q", loadErr.Kind, UnparsableMetadata)
	}
	if loadErr.Input != InputLineage {
		t.Errorf("Input = %q, want %q", loadErr.Input, InputLineage)
	}
}

func TestLoadLineage_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadLineage(filepath.Join(t.TempDir(), "absent.txt"), version.DefaultGroupingWidth)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if loadErr.Kind != UnreadablePath {
		t.Errorf("Kind = %q, want %q", loadErr.Kind, UnreadablePath)
	}
	if loadErr.Input != InputLineage {
		t.Errorf("Input = %q, want %q", loadErr.Input, InputLineage)
	}
}

func TestLoadUsage(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "usage.toml", `
[dependencies."Some-Module"]
symbols = ["frobnicate", "unfrobnicate"]

[dependencies."Other-Module"]
symbols = ["greet"]
`)

	usage, err := LoadUsage(path)
	if err != nil {
		t.Fatalf("LoadUsage: %v", err)
	}
	if len(usage.Dependencies) != 2 {
		t.Fatalf("dependencies = %d, want 2", len(usage.Dependencies))
	}
	if got := usage.Dependencies["Some-Module"].Symbols; len(got) != 2 || got[0] != "frobnicate" {
		t.Errorf("Some-Module symbols = %v", got)
	}
}

func TestLoadUsage_BadTOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "usage.toml", "[dependencies\nsymbols =")

	_, err := LoadUsage(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if loadErr.Kind != UnparsableMetadata {
		t.Errorf("Kind = %q, want %q", loadErr.Kind, UnparsableMetadata)
	}
	if loadErr.Input != InputUsage {
		t.Errorf("Input = %q, want %q", loadErr.Input, InputUsage)
	}
}
