// SPDX-License-Identifier: MPL-2.0

// Package report aggregates rule results into a deterministic report.
//
// The engine may evaluate rules in any order; this package imposes the one
// canonical ordering (rule catalog order, then violation detail) so repeated
// runs on unchanged input produce byte-identical output. That keeps reports
// snapshot-testable and diffable in CI. Reports carry no timestamps for the
// same reason.
package report

import (
	"sort"

	"metacheck/internal/artifact"
	"metacheck/internal/rules"
)

type (
	// Report is the aggregated outcome of one check run.
	Report struct {
		// ArtifactName and ArtifactVersion identify what was checked.
		ArtifactName    string `json:"artifact_name"`
		ArtifactVersion string `json:"artifact_version"`
		// Conformant is true when no evaluated rule found a violation.
		Conformant bool `json:"conformant"`
		// Incomplete is true when the run was cut off; no results are
		// carried in that case.
		Incomplete bool `json:"incomplete"`
		// Results holds one entry per rule in catalog order, violations
		// sorted by kind, location, then message.
		Results []rules.Result `json:"results"`
		// Diagnostics are the loader's non-fatal observations.
		Diagnostics []artifact.Diagnostic `json:"diagnostics,omitempty"`
		// Metrics summarizes the run.
		Metrics Metrics `json:"metrics"`
	}

	// Metrics are the run's aggregate counts.
	Metrics struct {
		TotalRules      int                         `json:"total_rules"`
		Evaluated       int                         `json:"evaluated"`
		Skipped         int                         `json:"skipped"`
		Violated        int                         `json:"violated"`
		TotalViolations int                         `json:"total_violations"`
		CountsByKind    map[rules.ViolationKind]int `json:"counts_by_kind,omitempty"`
	}
)

// Build aggregates an engine outcome into a Report. The input results are
// not mutated; violation slices are copied before sorting.
func Build(art *artifact.Artifact, outcome rules.Outcome) *Report {
	report := &Report{
		Conformant: outcome.Conformant(),
		Incomplete: outcome.Incomplete,
	}
	if art != nil {
		report.ArtifactName = art.Name
		report.ArtifactVersion = art.Version.Raw
		report.Diagnostics = art.Diagnostics
	}

	if outcome.Incomplete {
		return report
	}

	report.Results = make([]rules.Result, len(outcome.Results))
	for i, result := range outcome.Results {
		sorted := result
		sorted.Violations = append([]rules.Violation(nil), result.Violations...)
		sort.Slice(sorted.Violations, func(a, b int) bool {
			va, vb := sorted.Violations[a], sorted.Violations[b]
			if va.Kind != vb.Kind {
				return va.Kind < vb.Kind
			}
			if va.Location != vb.Location {
				return va.Location < vb.Location
			}
			return va.Message < vb.Message
		})
		report.Results[i] = sorted
	}

	report.Metrics = computeMetrics(report.Results)
	return report
}

func computeMetrics(results []rules.Result) Metrics {
	metrics := Metrics{
		TotalRules:   len(results),
		CountsByKind: make(map[rules.ViolationKind]int),
	}

	for _, result := range results {
		switch result.Status {
		case rules.StatusSkipped:
			metrics.Skipped++
		case rules.StatusViolated:
			metrics.Evaluated++
			metrics.Violated++
		default:
			metrics.Evaluated++
		}
		for _, v := range result.Violations {
			metrics.TotalViolations++
			metrics.CountsByKind[v.Kind]++
		}
	}

	if len(metrics.CountsByKind) == 0 {
		metrics.CountsByKind = nil
	}
	return metrics
}
