// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"metacheck/internal/artifact"
	"metacheck/internal/check"
	"metacheck/internal/config"
	"metacheck/internal/issue"
	"metacheck/internal/report"
	"metacheck/internal/rules"
	"metacheck/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	checkLineagePath  string
	checkUsagePath    string
	checkArchiveName  string
	checkUnpackRoot   string
	checkOutPath      string
	checkOutputFormat string
	checkTimeout      time.Duration
	checkDisabled     []string

	checkCmd = &cobra.Command{
		Use:   "check [path]",
		Short: "Evaluate conformance rules over an unpacked distribution",
		Long: `Load the distribution at the given path (default "."), evaluate the
rule catalog, print a summary, and write a Markdown report (see --out
and output.report_path).

Exit status: 0 when every evaluated rule passed, 1 when any rule
reported a violation (or the run timed out), 2 when the artifact could
not be loaded at all.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().StringVar(&checkLineagePath, "lineage", "", "release history file, one version per line, oldest first")
	checkCmd.Flags().StringVar(&checkUsagePath, "usage", "", "TOML file listing symbols used per dependency (default: usage.toml at the artifact root)")
	checkCmd.Flags().StringVar(&checkArchiveName, "archive-name", "", "release archive file name to check against naming rules")
	checkCmd.Flags().StringVar(&checkUnpackRoot, "unpack-root", "", "override the observed unpack top directory name")
	checkCmd.Flags().StringVarP(&checkOutPath, "out", "o", "", "write the Markdown report to this path (default metacheck-report.md)")
	checkCmd.Flags().StringVar(&checkOutputFormat, "output", "", "output format: human or json")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "bound the whole run (e.g. 30s); expiry yields an incomplete result")
	checkCmd.Flags().StringSliceVar(&checkDisabled, "disable", nil, "rule identifiers to skip (repeatable)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	outPath := checkOutPath
	if outPath == "" {
		outPath = cfg.Output.ReportPath
	}

	format := cfg.Output.Format
	if checkOutputFormat != "" {
		format = config.OutputFormat(checkOutputFormat)
		if err := format.Validate(); err != nil {
			return err
		}
	}

	var logger *log.Logger
	if verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			Level:           log.DebugLevel,
			Prefix:          "check",
		})
	}

	res, err := check.Run(cmd.Context(), check.Options{
		Root:                 root,
		LineagePath:          checkLineagePath,
		UsagePath:            checkUsagePath,
		ArchiveName:          checkArchiveName,
		UnpackRoot:           checkUnpackRoot,
		ReportPath:           outPath,
		GroupingWidth:        cfg.GroupingWidth,
		PortableInterpreters: cfg.PortableInterpreters,
		Disabled:             append(cfg.DisabledRules, checkDisabled...),
		Timeout:              checkTimeout,
		Logger:               logger,
	})
	if err != nil {
		renderLoadIssue(err)
		return &ExitError{Code: types.ExitLoadFailure, Err: err}
	}

	rep := res.Report

	if format == config.FormatJSON {
		payload, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(payload)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		renderHuman(cmd.OutOrStdout(), rep, res.ReportPath)
	}

	if !rep.Conformant || rep.Incomplete {
		return &ExitError{Code: types.ExitViolations}
	}
	return nil
}

// loadIssueID picks the issue card for a load failure: the failing input
// first, then the failure kind for the distribution tree itself.
func loadIssueID(loadErr *artifact.LoadError) (issue.Id, bool) {
	switch loadErr.Input {
	case artifact.InputChangelog:
		return issue.ChangelogUnreadableId, true
	case artifact.InputLineage:
		return issue.LineageUnreadableId, true
	case artifact.InputUsage:
		return issue.UsageParseErrorId, true
	}

	switch loadErr.Kind {
	case artifact.MissingMetadata:
		return issue.MetadataNotFoundId, true
	case artifact.UnparsableMetadata:
		return issue.MetadataParseErrorId, true
	case artifact.UnreadablePath:
		return issue.ArtifactUnreadableId, true
	}
	return 0, false
}

// renderLoadIssue prints a styled issue card for the load failure.
func renderLoadIssue(err error) {
	var loadErr *artifact.LoadError
	if !errors.As(err, &loadErr) {
		return
	}

	id, ok := loadIssueID(loadErr)
	if !ok {
		return
	}

	if rendered, renderErr := issue.Get(id).Render("dark"); renderErr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

func renderHuman(out io.Writer, rep *report.Report, reportPath string) {
	fmt.Fprintln(out, TitleStyle.Render("Conformance Check"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s %s\n",
		SubtitleStyle.Render("Artifact:"),
		CmdStyle.Render(rep.ArtifactName),
		CmdStyle.Render(rep.ArtifactVersion))

	switch {
	case rep.Incomplete:
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Result:"), WarningStyle.Render("incomplete (run canceled before all rules finished)"))
		return
	case rep.Conformant:
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Result:"), SuccessStyle.Render("conformant"))
	default:
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Result:"), ErrorStyle.Render("non-conformant"))
	}
	fmt.Fprintln(out)

	for _, r := range rep.Results {
		switch r.Status {
		case rules.StatusPassed:
			fmt.Fprintf(out, "  %s %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(string(r.Rule)))
		case rules.StatusSkipped:
			fmt.Fprintf(out, "  %s %s %s\n", WarningStyle.Render("-"), CmdStyle.Render(string(r.Rule)),
				SubtitleStyle.Render("(skipped: "+r.SkipReason+")"))
		case rules.StatusViolated:
			fmt.Fprintf(out, "  %s %s\n", ErrorStyle.Render("✗"), CmdStyle.Render(string(r.Rule)))
			for _, v := range r.Violations {
				fmt.Fprintf(out, "      %s %s: %s\n",
					ErrorStyle.Render("["+string(v.Kind)+"]"),
					CmdStyle.Render(v.Location),
					v.Message)
			}
		}
	}

	m := rep.Metrics
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %d evaluated, %d passed, %d violated, %d skipped, %d violation(s)\n",
		SubtitleStyle.Render("Rules:"),
		m.Evaluated, m.Evaluated-m.Violated, m.Violated, m.Skipped, m.TotalViolations)

	if len(rep.Diagnostics) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, SubtitleStyle.Render("Loader diagnostics:"))
		for _, d := range rep.Diagnostics {
			fmt.Fprintf(out, "  %s %s: %s\n", WarningStyle.Render("!"), CmdStyle.Render(d.Path), d.Message)
		}
	}

	if reportPath != "" && !rep.Incomplete {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Report:"), CmdStyle.Render(reportPath))
	}
}
