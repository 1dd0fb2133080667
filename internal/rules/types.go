// SPDX-License-Identifier: MPL-2.0

package rules

import (
	"metacheck/internal/artifact"
	"metacheck/internal/version"
)

// Rule identifiers, in catalog order.
const (
	RuleVersionConsistency     RuleID = "version-consistency"
	RuleVersionMonotonic       RuleID = "version-monotonic"
	RuleVersionWidthStable     RuleID = "version-width-stable"
	RuleDescriptionPresent     RuleID = "description-present"
	RuleArchiveNaming          RuleID = "archive-naming"
	RuleChangelogFormat        RuleID = "changelog-format"
	RuleLicensePlacement       RuleID = "license-placement"
	RuleShebangPortability     RuleID = "shebang-portability"
	RuleDependencyCompleteness RuleID = "dependency-completeness"
	RuleScriptSyntax           RuleID = "script-syntax"
)

// Violation kinds, one namespace across all rules.
const (
	VersionMismatch           ViolationKind = "version_mismatch"
	VersionNotIncreasing      ViolationKind = "version_not_increasing"
	AmbiguousVersionWidth     ViolationKind = "ambiguous_version_width"
	MissingDescription        ViolationKind = "missing_description"
	BadArchiveName            ViolationKind = "bad_archive_name"
	BadUnpackRoot             ViolationKind = "bad_unpack_root"
	ChangelogOutOfOrder       ViolationKind = "changelog_out_of_order"
	ChangelogVersionUnknown   ViolationKind = "changelog_version_unknown"
	MissingLicenseDeclaration ViolationKind = "missing_license_declaration"
	NonPortableShebang        ViolationKind = "non_portable_shebang"
	UndeclaredDependency      ViolationKind = "undeclared_dependency"
	UnparsableScript          ViolationKind = "unparsable_script"
)

// Evaluation statuses for a single rule.
const (
	// StatusPassed: the rule evaluated and found nothing.
	StatusPassed Status = "passed"
	// StatusViolated: the rule evaluated and reported violations.
	StatusViolated Status = "violated"
	// StatusSkipped: the rule could not evaluate for lack of input.
	// Absence of information is not evidence of non-conformance.
	StatusSkipped Status = "skipped"
)

type (
	// RuleID names one conformance rule.
	RuleID string

	// ViolationKind classifies one kind of non-conformance.
	ViolationKind string

	// Status is the outcome of evaluating one rule.
	Status string

	// Violation is one detected non-conformance. All violations are
	// advisory; none aborts the run.
	Violation struct {
		Kind     ViolationKind `json:"kind"`
		Location string        `json:"location,omitempty"`
		Message  string        `json:"message"`
	}

	// Result is the outcome of one rule against one artifact snapshot.
	Result struct {
		Rule       RuleID      `json:"rule"`
		Status     Status      `json:"status"`
		SkipReason string      `json:"skip_reason,omitempty"`
		Violations []Violation `json:"violations,omitempty"`
	}

	// Policy is the configurable part of rule evaluation.
	Policy struct {
		// GroupingWidth is the decimal-form grouping width; zero means
		// version.DefaultGroupingWidth.
		GroupingWidth int
		// PortableInterpreters, when non-empty, is the closed set of
		// interpreter paths the shebang rule accepts. Empty accepts any
		// absolute, non-env interpreter.
		PortableInterpreters []string
		// Disabled marks rules that must report skipped instead of running.
		Disabled map[RuleID]bool
	}

	// Context is the immutable input snapshot every rule sees. Rules are
	// pure functions of this value: no mutation, no I/O, no dependence on
	// the execution order of other rules.
	Context struct {
		Artifact *artifact.Artifact
		Lineage  []version.Spec
		Usage    *artifact.Usage
		Policy   Policy
	}

	// Rule is one catalog entry: a pure check plus its identity.
	Rule struct {
		ID RuleID
		// Summary is a one-line description for catalog listings.
		Summary string
		// Kinds are the violation kinds this rule can emit.
		Kinds []ViolationKind
		// check runs the rule. A non-empty skip reason means the rule
		// could not evaluate; violations are ignored in that case.
		check func(Context) (violations []Violation, skipReason string)
	}
)

func (p Policy) width() int {
	if p.GroupingWidth > 0 {
		return p.GroupingWidth
	}
	return version.DefaultGroupingWidth
}
