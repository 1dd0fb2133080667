// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"metacheck/internal/rules"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the conformance rule catalog",
	Long: `List every rule in catalog order with its identifier, the violation
kinds it can report, and a one-line summary. Rule identifiers are the
values accepted by --disable and the disabled_rules config setting.`,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Rule Catalog"))
	fmt.Fprintln(out)

	for _, rule := range rules.Catalog() {
		kinds := make([]string, len(rule.Kinds))
		for i, k := range rule.Kinds {
			kinds[i] = string(k)
		}
		fmt.Fprintf(out, "%s\n", CmdStyle.Render(string(rule.ID)))
		fmt.Fprintf(out, "    %s\n", rule.Summary)
		fmt.Fprintf(out, "    %s %s\n", SubtitleStyle.Render("reports:"), VerboseStyle.Render(strings.Join(kinds, ", ")))
	}

	return nil
}
