// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"strings"
)

// docNames are the conventional documentation files, in lookup order.
var docNames = []string{"README.md", "README.pod", "README", "README.txt"}

// licenseFileNames are the conventional standalone license files.
var licenseFileNames = []string{"LICENSE", "LICENSE.md", "LICENCE", "COPYING", "COPYRIGHT"}

// loadDocumentation summarizes the primary documentation file: whether it
// carries a non-empty description and whether it mentions licensing.
func loadDocumentation(root string) (Documentation, error) {
	name := firstExisting(root, docNames...)
	if name == "" {
		return Documentation{}, nil
	}

	lines, err := readLines(root, name)
	if err != nil {
		return Documentation{}, &LoadError{Kind: UnreadablePath, Path: name, Cause: err}
	}

	docs := Documentation{Path: name}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "license") || strings.Contains(lower, "licence") || strings.Contains(lower, "copyright") {
			docs.MentionsLicense = true
		}

		// Headings and POD directives title sections; any other non-empty
		// line is description prose.
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "=") {
			continue
		}
		docs.HasDescription = true
	}

	return docs, nil
}

// collectLicenseDeclarations builds the set of locations declaring a license.
func collectLicenseDeclarations(root string, docs map[DocumentKind]*Document, documentation Documentation) map[LicenseLocation]bool {
	declared := make(map[LicenseLocation]bool)

	if doc, ok := docs[DocJSON]; ok && licenseDeclared(doc) {
		declared[LicenseInMetadataJSON] = true
	}
	if doc, ok := docs[DocYAML]; ok && licenseDeclared(doc) {
		declared[LicenseInMetadataYAML] = true
	}
	if firstExisting(root, licenseFileNames...) != "" {
		declared[LicenseInFile] = true
	}
	if documentation.MentionsLicense {
		declared[LicenseInDocs] = true
	}

	return declared
}
