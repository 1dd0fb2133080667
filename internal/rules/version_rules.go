// SPDX-License-Identifier: MPL-2.0

package rules

import (
	"fmt"

	"metacheck/internal/artifact"
	"metacheck/internal/version"
)

// checkVersionConsistency compares every metadata document's declared version
// and the newest changelog entry against the artifact's version. "Identical"
// means equal under normalized comparison, so "1.190" and "v1.190" agree.
func checkVersionConsistency(c Context) ([]Violation, string) {
	var violations []Violation
	declared := c.Artifact.Version

	for _, kind := range []artifact.DocumentKind{artifact.DocJSON, artifact.DocYAML} {
		doc := c.Artifact.DocumentFor(kind)
		if doc == nil {
			continue
		}

		raw, ok := doc.DeclaredVersion()
		if !ok {
			violations = append(violations, Violation{
				Kind:     VersionMismatch,
				Location: doc.Path,
				Message:  "document declares no version",
			})
			continue
		}

		spec, err := version.ParseWidth(raw, c.Policy.width())
		if err != nil {
			violations = append(violations, Violation{
				Kind:     VersionMismatch,
				Location: doc.Path,
				Message:  fmt.Sprintf("declared version %q is not representable: %v", raw, err),
			})
			continue
		}

		if version.Compare(spec, declared) != 0 {
			violations = append(violations, Violation{
				Kind:     VersionMismatch,
				Location: doc.Path,
				Message:  fmt.Sprintf("document declares %q, artifact version is %q", raw, declared.Raw),
			})
		}
	}

	if len(c.Artifact.Changelog) > 0 {
		newest := c.Artifact.Changelog[0]
		if version.Compare(newest.Version, declared) != 0 {
			violations = append(violations, Violation{
				Kind:     VersionMismatch,
				Location: c.Artifact.ChangelogPath,
				Message:  fmt.Sprintf("newest changelog entry declares %q, artifact version is %q", newest.Version.Raw, declared.Raw),
			})
		}
	}

	return violations, ""
}

// checkVersionMonotonic verifies the lineage is strictly increasing and the
// current release extends it.
func checkVersionMonotonic(c Context) ([]Violation, string) {
	if len(c.Lineage) == 0 {
		return nil, "no lineage supplied"
	}

	var violations []Violation
	history := append(append([]version.Spec(nil), c.Lineage...), c.Artifact.Version)

	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		if version.Compare(prev, cur) != -1 {
			violations = append(violations, Violation{
				Kind:     VersionNotIncreasing,
				Location: cur.Raw,
				Message:  fmt.Sprintf("version %q does not increase over preceding %q", cur.Raw, prev.Raw),
			})
		}
	}

	return violations, ""
}

// checkVersionWidthStable flags any pair of decimal-form versions in the
// lineage (current release included) whose fractional digit-group widths
// mix. The hazard is surfaced, never silently resolved.
func checkVersionWidthStable(c Context) ([]Violation, string) {
	if len(c.Lineage) == 0 {
		return nil, "no lineage supplied"
	}

	var violations []Violation
	history := append(append([]version.Spec(nil), c.Lineage...), c.Artifact.Version)

	for i := 0; i < len(history); i++ {
		for j := i + 1; j < len(history); j++ {
			if version.AmbiguousWidth(history[i], history[j], c.Policy.width()) {
				violations = append(violations, Violation{
					Kind:     AmbiguousVersionWidth,
					Location: history[j].Raw,
					Message:  fmt.Sprintf("decimal versions %q and %q mix fractional digit-group widths", history[i].Raw, history[j].Raw),
				})
			}
		}
	}

	return violations, ""
}
