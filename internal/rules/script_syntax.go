// SPDX-License-Identifier: MPL-2.0

package rules

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"mvdan.cc/sh/v3/syntax"
)

// shellInterpreters are the shebang interpreter base names whose scripts are
// checked as POSIX/Bash shell.
var shellInterpreters = []string{"sh", "bash", "dash", "ksh", "mksh"}

// checkScriptSyntax parses shell scripts with the embedded sh parser. A
// script that names a shell interpreter but does not parse is shipped
// broken, whatever the other rules say. Non-shell scripts are out of scope.
func checkScriptSyntax(c Context) ([]Violation, string) {
	parser := syntax.NewParser(syntax.KeepComments(false))

	var violations []Violation
	for _, script := range c.Artifact.Scripts {
		if script.Shebang == "" {
			continue
		}

		interp, _ := splitShebang(script.Shebang)
		base := pathBase(interp)
		if base == "env" {
			// "#!/usr/bin/env bash": the real interpreter is the first
			// argument. Portability is the shebang rule's concern; syntax
			// is still checkable here.
			_, args := splitShebang(script.Shebang)
			base = pathBase(strings.TrimSpace(args))
		}
		if !slices.Contains(shellInterpreters, base) {
			continue
		}

		if _, err := parser.Parse(strings.NewReader(script.Body), script.Path); err != nil {
			violations = append(violations, Violation{
				Kind:     UnparsableScript,
				Location: script.Path,
				Message:  fmt.Sprintf("shell script does not parse: %v", err),
			})
		}
	}

	return violations, ""
}
