// SPDX-License-Identifier: MPL-2.0

package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"metacheck/internal/artifact"
	"metacheck/internal/rules"
)

const metaJSON = `{
  "name": "Foo-Bar",
  "version": "1.23",
  "license": "perl_5",
  "abstract": "Frobnicates things",
  "prereqs": {"runtime": {"requires": {"Some-Module": "1.2"}}}
}`

const metaYAML = `name: Foo-Bar
version: "1.23"
license: perl_5
`

func conformantTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Foo-Bar-1.23")
	files := map[string]string{
		"META.json": metaJSON,
		"META.yml":  metaYAML,
		"Changes":   "1.23 2024-03-01\n    - Add frobnication\n\n1.22 2024-01-15\n    - First release\n",
		"README.md": "# Foo-Bar\n\nFrobnicates things so you don't have to.\n\nDistributed under the perl_5 license.\n",
		"LICENSE":   "Copyright (c) the authors.\n",
		"bin/frob":  "#!/usr/bin/perl\nprint \"frob\\n\";\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

func TestRun_Conformant(t *testing.T) {
	t.Parallel()

	reportPath := filepath.Join(t.TempDir(), "out", "report.md")
	res, err := Run(context.Background(), Options{
		Root:        conformantTree(t),
		ArchiveName: "Foo-Bar-1.23.tar.gz",
		ReportPath:  reportPath,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !res.Report.Conformant {
		for _, r := range res.Report.Results {
			for _, v := range r.Violations {
				t.Logf("%s: [%s] %s: %s", r.Rule, v.Kind, v.Location, v.Message)
			}
		}
		t.Fatal("report not conformant")
	}
	if res.Report.ArtifactName != "Foo-Bar" || res.Report.ArtifactVersion != "1.23" {
		t.Errorf("identity = %q %q", res.Report.ArtifactName, res.Report.ArtifactVersion)
	}
	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}

func TestRun_ViolationsAreNotErrors(t *testing.T) {
	t.Parallel()

	root := conformantTree(t)
	// Desynchronize the YAML document from the artifact version.
	if err := os.WriteFile(filepath.Join(root, "META.yml"), []byte("name: Foo-Bar\nversion: \"1.22\"\nlicense: perl_5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(context.Background(), Options{
		Root:       root,
		ReportPath: filepath.Join(t.TempDir(), "report.md"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Report.Conformant {
		t.Error("report conformant despite version mismatch")
	}
}

func TestRun_LoadFailure(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{Root: t.TempDir()})
	var loadErr *artifact.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *artifact.LoadError", err)
	}
	if loadErr.Kind != artifact.MissingMetadata {
		t.Errorf("Kind = %q, want %q", loadErr.Kind, artifact.MissingMetadata)
	}
}

func TestRun_LineageAndDisabledRules(t *testing.T) {
	t.Parallel()

	lineage := filepath.Join(t.TempDir(), "lineage.txt")
	if err := os.WriteFile(lineage, []byte("1.21\n1.22\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(context.Background(), Options{
		Root:        conformantTree(t),
		LineagePath: lineage,
		ReportPath:  filepath.Join(t.TempDir(), "report.md"),
		Disabled:    []string{string(rules.RuleShebangPortability)},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, r := range res.Report.Results {
		switch r.Rule {
		case rules.RuleShebangPortability:
			if r.Status != rules.StatusSkipped {
				t.Errorf("disabled rule status = %q, want skipped", r.Status)
			}
		case rules.RuleVersionMonotonic:
			if r.Status != rules.StatusPassed {
				t.Errorf("monotonic status = %q, want passed", r.Status)
			}
		}
	}
}

func TestRun_DiscoversRootUsageFile(t *testing.T) {
	t.Parallel()

	root := conformantTree(t)
	usage := "[dependencies.\"Other-Module\"]\nsymbols = [\"greet\"]\n"
	if err := os.WriteFile(filepath.Join(root, UsageFileName), []byte(usage), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(context.Background(), Options{
		Root:       root,
		ReportPath: filepath.Join(t.TempDir(), "report.md"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Other-Module is used but never declared in the metadata prereqs, so
	// the picked-up usage file must turn into a violation.
	found := false
	for _, r := range res.Report.Results {
		if r.Rule != rules.RuleDependencyCompleteness {
			continue
		}
		if r.Status != rules.StatusViolated {
			t.Fatalf("dependency rule status = %q, want violated", r.Status)
		}
		found = true
	}
	if !found {
		t.Fatal("dependency rule missing from report")
	}
}

func TestRun_ExplicitUsagePathWins(t *testing.T) {
	t.Parallel()

	root := conformantTree(t)
	if err := os.WriteFile(filepath.Join(root, UsageFileName), []byte("[dependencies.\"Other-Module\"]\nsymbols = [\"greet\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(t.TempDir(), "declared.toml")
	if err := os.WriteFile(explicit, []byte("[dependencies.\"Some-Module\"]\nsymbols = [\"frobnicate\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(context.Background(), Options{
		Root:       root,
		UsagePath:  explicit,
		ReportPath: filepath.Join(t.TempDir(), "report.md"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, r := range res.Report.Results {
		if r.Rule == rules.RuleDependencyCompleteness && r.Status != rules.StatusPassed {
			t.Errorf("dependency rule status = %q, want passed", r.Status)
		}
	}
}

func TestRun_TimeoutIncomplete(t *testing.T) {
	t.Parallel()

	res, err := Run(context.Background(), Options{
		Root:    conformantTree(t),
		Timeout: time.Nanosecond,
	})
	if err != nil {
		// The load itself may observe the expired context first.
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("error = %v, want deadline exceeded", err)
		}
		return
	}
	if !res.Report.Incomplete {
		t.Error("report complete despite expired deadline")
	}
	if len(res.Report.Results) != 0 {
		t.Errorf("incomplete report carries %d results", len(res.Report.Results))
	}
}

func TestOptionsNormalize_WidthOutOfRange(t *testing.T) {
	t.Parallel()

	opts := Options{Root: ".", GroupingWidth: -2}
	if err := opts.Normalize(); err == nil {
		t.Error("Normalize accepted a negative grouping width")
	}
}

func TestOptionsNormalize_Defaults(t *testing.T) {
	t.Parallel()

	opts := Options{Root: "."}
	if err := opts.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if opts.GroupingWidth != 3 {
		t.Errorf("GroupingWidth = %d, want 3", opts.GroupingWidth)
	}
	if opts.ReportPath != DefaultReportName {
		t.Errorf("ReportPath = %q, want %q", opts.ReportPath, DefaultReportName)
	}
	if !filepath.IsAbs(opts.Root) {
		t.Errorf("Root %q not made absolute", opts.Root)
	}
}
