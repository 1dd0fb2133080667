// SPDX-License-Identifier: MPL-2.0

// Package rules evaluates the conformance rule catalog against an artifact.
//
// Every rule is an independent, stateless check over the same immutable
// Context snapshot; the engine may run them in any order, or in parallel,
// without changing the aggregated outcome. A rule that lacks the input it
// needs reports skipped rather than passing or failing.
package rules

// Catalog returns the rule catalog in its stable, documented order. The
// order is the report's grouping order; execution order is unconstrained.
func Catalog() []Rule {
	return []Rule{
		{
			ID:      RuleVersionConsistency,
			Summary: "All metadata documents and the newest changelog entry declare the same version",
			Kinds:   []ViolationKind{VersionMismatch},
			check:   checkVersionConsistency,
		},
		{
			ID:      RuleVersionMonotonic,
			Summary: "Release versions strictly increase across the lineage",
			Kinds:   []ViolationKind{VersionNotIncreasing},
			check:   checkVersionMonotonic,
		},
		{
			ID:      RuleVersionWidthStable,
			Summary: "Decimal-form versions never mix fractional digit-group widths",
			Kinds:   []ViolationKind{AmbiguousVersionWidth},
			check:   checkVersionWidthStable,
		},
		{
			ID:      RuleDescriptionPresent,
			Summary: "Documentation carries a non-empty description",
			Kinds:   []ViolationKind{MissingDescription},
			check:   checkDescriptionPresent,
		},
		{
			ID:      RuleArchiveNaming,
			Summary: "The release archive is named Name-Version and unpacks to a matching top directory",
			Kinds:   []ViolationKind{BadArchiveName, BadUnpackRoot},
			check:   checkArchiveNaming,
		},
		{
			ID:      RuleChangelogFormat,
			Summary: "Changelog entries are strictly newest-first and name real releases",
			Kinds:   []ViolationKind{ChangelogOutOfOrder, ChangelogVersionUnknown},
			check:   checkChangelogFormat,
		},
		{
			ID:      RuleLicensePlacement,
			Summary: "The license is declared in both metadata documents and a license file",
			Kinds:   []ViolationKind{MissingLicenseDeclaration},
			check:   checkLicensePlacement,
		},
		{
			ID:      RuleShebangPortability,
			Summary: "Installable scripts use a direct interpreter path, not an env indirection",
			Kinds:   []ViolationKind{NonPortableShebang},
			check:   checkShebangPortability,
		},
		{
			ID:      RuleDependencyCompleteness,
			Summary: "Every dependency the code uses is declared in the metadata",
			Kinds:   []ViolationKind{UndeclaredDependency},
			check:   checkDependencyCompleteness,
		},
		{
			ID:      RuleScriptSyntax,
			Summary: "Shell scripts parse cleanly under their declared interpreter",
			Kinds:   []ViolationKind{UnparsableScript},
			check:   checkScriptSyntax,
		},
	}
}

// Lookup returns the catalog rule with the given ID, if any.
func Lookup(id RuleID) (Rule, bool) {
	for _, rule := range Catalog() {
		if rule.ID == id {
			return rule, true
		}
	}
	return Rule{}, false
}
