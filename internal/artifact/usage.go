// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

type (
	// Usage is the externally supplied symbol-usage list: which dependencies
	// the code actually reaches for, and which symbols it pulls from each.
	// It feeds the dependency-completeness rule.
	Usage struct {
		// Dependencies maps dependency name to its observed usage.
		Dependencies map[string]DependencyUsage `toml:"dependencies"`
	}

	// DependencyUsage records the symbols used from one dependency.
	DependencyUsage struct {
		Symbols []string `toml:"symbols"`
	}
)

// LoadUsage parses a TOML symbol-usage document:
//
//	[dependencies."Some-Module"]
//	symbols = ["frobnicate"]
func LoadUsage(path string) (*Usage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: UnreadablePath, Input: InputUsage, Path: path, Cause: err}
	}

	var usage Usage
	if err := toml.Unmarshal(data, &usage); err != nil {
		return nil, &LoadError{Kind: UnparsableMetadata, Input: InputUsage, Path: path, Cause: err}
	}

	return &usage, nil
}
