// SPDX-License-Identifier: MPL-2.0

package main

import cmd "metacheck/cmd/metacheck"

func main() {
	cmd.Execute()
}
