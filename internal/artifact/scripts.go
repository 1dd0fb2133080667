// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"os"
	"path/filepath"
	"strings"
)

// scriptDirs are the directories whose files install as scripts.
var scriptDirs = []string{"bin/", "script/", "scripts/"}

// loadScripts collects installable scripts: every file under a script
// directory, plus any other file opening with "#!". The first line and full
// body are retained so the shebang and syntax rules can work without
// re-reading the tree.
func loadScripts(root string, files []string) ([]Script, error) {
	var scripts []Script

	for _, rel := range files {
		inScriptDir := false
		for _, dir := range scriptDirs {
			if strings.HasPrefix(rel, dir) {
				inScriptDir = true
				break
			}
		}

		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			if inScriptDir {
				return nil, &LoadError{Kind: UnreadablePath, Path: rel, Cause: err}
			}
			continue
		}

		body := strings.ReplaceAll(string(data), "\r\n", "\n")
		first, _, _ := strings.Cut(body, "\n")
		hasShebang := strings.HasPrefix(first, "#!")

		if !inScriptDir && !hasShebang {
			continue
		}

		script := Script{Path: rel, Body: body}
		if hasShebang {
			script.Shebang = strings.TrimRight(first, " \t")
		}
		scripts = append(scripts, script)
	}

	return scripts, nil
}
