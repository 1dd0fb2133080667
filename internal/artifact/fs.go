// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var defaultSkipDirs = map[string]struct{}{
	".git":   {},
	".svn":   {},
	".hg":    {},
	"blib":   {},
	".build": {},
}

// listFiles walks the artifact tree and returns every regular file as a
// slash-separated path relative to root, sorted for deterministic output.
func listFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if _, ok := defaultSkipDirs[d.Name()]; ok && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// firstExisting returns the first candidate (relative to root) that exists
// as a regular file, or "".
func firstExisting(root string, candidates ...string) string {
	for _, name := range candidates {
		info, err := os.Stat(filepath.Join(root, name))
		if err == nil && info.Mode().IsRegular() {
			return name
		}
	}
	return ""
}

// readLines reads a file under root and splits it into lines.
func readLines(root, rel string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
