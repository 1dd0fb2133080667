// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"os"
	"strings"

	"metacheck/internal/version"
)

// LoadLineage reads an ordered release history: one version per line, oldest
// first. Blank lines and '#' comments are ignored. An unparsable version is a
// fatal load failure; a lineage rule fed garbage must not silently skip.
func LoadLineage(path string, width int) ([]version.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: UnreadablePath, Input: InputLineage, Path: path, Cause: err}
	}

	var lineage []version.Spec
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		spec, err := version.ParseWidth(trimmed, width)
		if err != nil {
			return nil, &LoadError{
				Kind:  UnparsableMetadata,
				Input: InputLineage,
				Path:  path,
				Cause: fmt.Errorf("line %d: %w", i+1, err),
			}
		}
		lineage = append(lineage, spec)
	}

	return lineage, nil
}
