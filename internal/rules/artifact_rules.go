// SPDX-License-Identifier: MPL-2.0

package rules

import (
	"fmt"
	"sort"
	"strings"

	"metacheck/internal/artifact"
	"metacheck/internal/version"

	"golang.org/x/exp/slices"
)

// archiveExtensions are the accepted release archive suffixes.
var archiveExtensions = []string{".tar.gz", ".tar.bz2", ".tgz", ".zip"}

// checkDescriptionPresent requires a non-empty description in the
// documentation.
func checkDescriptionPresent(c Context) ([]Violation, string) {
	docs := c.Artifact.Docs
	if docs.Path == "" {
		return []Violation{{
			Kind:    MissingDescription,
			Message: "no documentation file found",
		}}, ""
	}
	if !docs.HasDescription {
		return []Violation{{
			Kind:     MissingDescription,
			Location: docs.Path,
			Message:  "documentation has no description prose",
		}}, ""
	}
	return nil, ""
}

// checkArchiveNaming verifies the archive file name pattern and the unpack
// top directory, both against "Name-Version".
func checkArchiveNaming(c Context) ([]Violation, string) {
	if c.Artifact.Name == "" {
		return nil, "metadata declares no name"
	}

	expected := c.Artifact.Name + "-" + c.Artifact.Version.Raw
	var violations []Violation

	if c.Artifact.ArchiveName != "" {
		matched := false
		for _, ext := range archiveExtensions {
			if c.Artifact.ArchiveName == expected+ext {
				matched = true
				break
			}
		}
		if !matched {
			violations = append(violations, Violation{
				Kind:     BadArchiveName,
				Location: c.Artifact.ArchiveName,
				Message:  fmt.Sprintf("archive name should be %q plus .tar.gz, .tar.bz2, .tgz, or .zip", expected),
			})
		}
	}

	if c.Artifact.UnpackRoot != expected {
		violations = append(violations, Violation{
			Kind:     BadUnpackRoot,
			Location: c.Artifact.UnpackRoot,
			Message:  fmt.Sprintf("archive should unpack to a single top directory %q, found %q", expected, c.Artifact.UnpackRoot),
		})
	}

	return violations, ""
}

// checkChangelogFormat verifies entries are strictly newest-first and, when
// a lineage is supplied, that every entry names a real release.
func checkChangelogFormat(c Context) ([]Violation, string) {
	if c.Artifact.ChangelogPath == "" {
		return nil, "no changelog file"
	}

	var violations []Violation
	entries := c.Artifact.Changelog

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if version.Compare(prev.Version, cur.Version) != 1 {
			violations = append(violations, Violation{
				Kind:     ChangelogOutOfOrder,
				Location: c.Artifact.ChangelogPath,
				Message:  fmt.Sprintf("entry %q does not precede following entry %q (newest first)", prev.Version.Raw, cur.Version.Raw),
			})
		}
	}

	// Without a lineage only the current release is a known version, and
	// flagging every historical entry would punish missing input.
	if len(c.Lineage) > 0 {
		known := []version.Spec{c.Artifact.Version}
		known = append(known, c.Lineage...)

		for _, entry := range entries {
			found := false
			for _, rel := range known {
				if version.Compare(entry.Version, rel) == 0 {
					found = true
					break
				}
			}
			if !found {
				violations = append(violations, Violation{
					Kind:     ChangelogVersionUnknown,
					Location: c.Artifact.ChangelogPath,
					Message:  fmt.Sprintf("entry %q matches no released version", entry.Version.Raw),
				})
			}
		}
	}

	return violations, ""
}

// requiredLicenseLocations is the set every conformant release declares a
// license in. Documentation is a recognized location but not a required one.
var requiredLicenseLocations = []artifact.LicenseLocation{
	artifact.LicenseInMetadataJSON,
	artifact.LicenseInMetadataYAML,
	artifact.LicenseInFile,
}

// checkLicensePlacement requires the license declaration set to cover every
// required location.
func checkLicensePlacement(c Context) ([]Violation, string) {
	var missing []string
	for _, loc := range requiredLicenseLocations {
		if !c.Artifact.LicenseDeclarations[loc] {
			missing = append(missing, string(loc))
		}
	}
	sort.Strings(missing)

	violations := make([]Violation, 0, len(missing))
	for _, loc := range missing {
		violations = append(violations, Violation{
			Kind:     MissingLicenseDeclaration,
			Location: loc,
			Message:  fmt.Sprintf("license is not declared at %s", loc),
		})
	}
	if len(violations) == 0 {
		return nil, ""
	}
	return violations, ""
}

// checkShebangPortability flags env-style and otherwise non-portable
// shebang lines on installable scripts.
func checkShebangPortability(c Context) ([]Violation, string) {
	var violations []Violation

	for _, script := range c.Artifact.Scripts {
		if script.Shebang == "" {
			continue
		}

		interp, _ := splitShebang(script.Shebang)
		switch {
		case interp == "":
			violations = append(violations, Violation{
				Kind:     NonPortableShebang,
				Location: script.Path,
				Message:  fmt.Sprintf("empty shebang line %q", script.Shebang),
			})
		case pathBase(interp) == "env":
			violations = append(violations, Violation{
				Kind:     NonPortableShebang,
				Location: script.Path,
				Message:  fmt.Sprintf("env-style shebang %q resolves the interpreter at run time; name it directly", script.Shebang),
			})
		case !strings.HasPrefix(interp, "/"):
			violations = append(violations, Violation{
				Kind:     NonPortableShebang,
				Location: script.Path,
				Message:  fmt.Sprintf("relative interpreter path %q", interp),
			})
		case len(c.Policy.PortableInterpreters) > 0 && !slices.Contains(c.Policy.PortableInterpreters, interp):
			violations = append(violations, Violation{
				Kind:     NonPortableShebang,
				Location: script.Path,
				Message:  fmt.Sprintf("interpreter %q is not in the portable set", interp),
			})
		}
	}

	return violations, ""
}

// checkDependencyCompleteness requires every used dependency to be declared.
func checkDependencyCompleteness(c Context) ([]Violation, string) {
	if c.Usage == nil {
		return nil, "no usage list supplied"
	}

	used := make([]string, 0, len(c.Usage.Dependencies))
	for dep := range c.Usage.Dependencies {
		used = append(used, dep)
	}
	sort.Strings(used)

	var violations []Violation
	for _, dep := range used {
		if _, ok := c.Artifact.DeclaredDeps[dep]; ok {
			continue
		}
		symbols := c.Usage.Dependencies[dep].Symbols
		violations = append(violations, Violation{
			Kind:     UndeclaredDependency,
			Location: dep,
			Message:  fmt.Sprintf("dependency %q is used (%s) but not declared", dep, strings.Join(symbols, ", ")),
		})
	}

	return violations, ""
}

func splitShebang(line string) (interp, args string) {
	rest := strings.TrimPrefix(line, "#!")
	rest = strings.TrimSpace(rest)
	interp, args, _ = strings.Cut(rest, " ")
	return interp, strings.TrimSpace(args)
}

func pathBase(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

