// SPDX-License-Identifier: MPL-2.0

package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"metacheck/internal/rules"
)

// RenderMarkdown renders the report as Markdown. Output is a pure function
// of the report value: same input, same bytes.
func RenderMarkdown(report *Report) string {
	var sb strings.Builder

	sb.WriteString("# Metadata Conformance Report\n\n")
	if report.ArtifactName != "" {
		fmt.Fprintf(&sb, "Artifact: %s %s\n\n", report.ArtifactName, report.ArtifactVersion)
	}

	switch {
	case report.Incomplete:
		sb.WriteString("Result: **incomplete** — the run was cut off before every rule finished; no partial results are shown.\n")
		return sb.String()
	case report.Conformant:
		sb.WriteString("Result: **conformant**\n\n")
	default:
		sb.WriteString("Result: **non-conformant**\n\n")
	}

	writeMetricsSection(&sb, report.Metrics)
	writeResultsSection(&sb, report.Results)
	writeDiagnosticsSection(&sb, report)

	return sb.String()
}

// WriteMarkdown writes the rendered report to the given path.
func WriteMarkdown(report *Report, path string) error {
	if report == nil {
		return errors.New("report is nil")
	}
	if path == "" {
		return errors.New("report path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeMetricsSection(sb *strings.Builder, metrics Metrics) {
	sb.WriteString("## Metrics\n\n")
	fmt.Fprintf(sb, "- Rules: %d (%d evaluated, %d skipped)\n", metrics.TotalRules, metrics.Evaluated, metrics.Skipped)
	fmt.Fprintf(sb, "- Rules violated: %d\n", metrics.Violated)
	fmt.Fprintf(sb, "- Violations: %d\n", metrics.TotalViolations)

	if len(metrics.CountsByKind) > 0 {
		kinds := make([]string, 0, len(metrics.CountsByKind))
		for kind := range metrics.CountsByKind {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		parts := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, metrics.CountsByKind[rules.ViolationKind(kind)]))
		}
		fmt.Fprintf(sb, "- By kind: %s\n", strings.Join(parts, ", "))
	}
	sb.WriteString("\n")
}

func writeResultsSection(sb *strings.Builder, results []rules.Result) {
	sb.WriteString("## Rules\n\n")
	for _, result := range results {
		switch result.Status {
		case rules.StatusSkipped:
			fmt.Fprintf(sb, "- `%s`: skipped (%s)\n", result.Rule, result.SkipReason)
		case rules.StatusPassed:
			fmt.Fprintf(sb, "- `%s`: passed\n", result.Rule)
		case rules.StatusViolated:
			fmt.Fprintf(sb, "- `%s`: %d violation(s)\n", result.Rule, len(result.Violations))
			for _, v := range result.Violations {
				if v.Location != "" {
					fmt.Fprintf(sb, "  - [%s] %s: %s\n", v.Kind, v.Location, v.Message)
				} else {
					fmt.Fprintf(sb, "  - [%s] %s\n", v.Kind, v.Message)
				}
			}
		}
	}
	sb.WriteString("\n")
}

func writeDiagnosticsSection(sb *strings.Builder, report *Report) {
	if len(report.Diagnostics) == 0 {
		return
	}
	sb.WriteString("## Loader diagnostics\n\n")
	for _, d := range report.Diagnostics {
		if d.Path != "" {
			fmt.Fprintf(sb, "- %s (%s): %s\n", d.Code, d.Path, d.Message)
		} else {
			fmt.Fprintf(sb, "- %s: %s\n", d.Code, d.Message)
		}
	}
	sb.WriteString("\n")
}

