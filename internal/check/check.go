// SPDX-License-Identifier: MPL-2.0

// Package check orchestrates a full conformance run: load the artifact and
// optional side inputs, evaluate the rule catalog, aggregate the report, and
// write it out.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"metacheck/internal/artifact"
	"metacheck/internal/report"
	"metacheck/internal/rules"
	"metacheck/internal/version"

	"github.com/charmbracelet/log"
)

// Options configures one run.
type Options struct {
	// Root is the unpacked distribution directory.
	Root string
	// LineagePath is the optional release-history file (one version per
	// line, oldest first).
	LineagePath string
	// UsagePath is the optional TOML symbol-usage list. "" picks up
	// UsageFileName at the artifact root when present.
	UsagePath string
	// ArchiveName is the release archive file name, when known.
	ArchiveName string
	// UnpackRoot overrides the observed unpack top directory.
	UnpackRoot string
	// ReportPath receives the Markdown report. "" means DefaultReportName
	// in the working directory; the report is never written inside the
	// artifact being checked.
	ReportPath string
	// GroupingWidth is the decimal-version grouping width (0 = default).
	GroupingWidth int
	// PortableInterpreters is the closed portable interpreter set, or empty.
	PortableInterpreters []string
	// Disabled lists rule IDs that must not run.
	Disabled []string
	// Timeout bounds the whole run. Zero means no timeout. Cancellation is
	// whole-run only; on expiry the result is incomplete, never partial.
	Timeout time.Duration
	// Logger receives debug progress. Nil disables logging.
	Logger *log.Logger
}

// DefaultReportName is the report file written when no path is configured.
const DefaultReportName = "metacheck-report.md"

// UsageFileName is the symbol-usage file discovered at the artifact root
// when no explicit path is given.
const UsageFileName = "usage.toml"

// Result is the output of one run.
type Result struct {
	Report     *report.Report
	ReportPath string
}

// Normalize fills derived option values.
func (o *Options) Normalize() error {
	if o.Root == "" {
		o.Root = "."
	}
	absRoot, err := filepath.Abs(o.Root)
	if err != nil {
		return fmt.Errorf("resolve artifact root: %w", err)
	}
	o.Root = absRoot

	if o.GroupingWidth == 0 {
		o.GroupingWidth = version.DefaultGroupingWidth
	}
	if o.GroupingWidth < 1 {
		return fmt.Errorf("grouping width %d out of range", o.GroupingWidth)
	}
	if o.ReportPath == "" {
		o.ReportPath = DefaultReportName
	}
	return nil
}

// Run executes a conformance check. Load failures return an error (they
// abort the run); violations never do — they live in the report.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	art, err := artifact.Load(ctx, opts.Root, artifact.Options{
		GroupingWidth: opts.GroupingWidth,
		ArchiveName:   opts.ArchiveName,
		UnpackRoot:    opts.UnpackRoot,
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	var lineage []version.Spec
	if opts.LineagePath != "" {
		lineage, err = artifact.LoadLineage(opts.LineagePath, opts.GroupingWidth)
		if err != nil {
			return nil, err
		}
	}

	usagePath := opts.UsagePath
	if usagePath == "" {
		if candidate := filepath.Join(opts.Root, UsageFileName); fileExists(candidate) {
			usagePath = candidate
			if opts.Logger != nil {
				opts.Logger.Debug("discovered usage file", "path", usagePath)
			}
		}
	}

	var usage *artifact.Usage
	if usagePath != "" {
		usage, err = artifact.LoadUsage(usagePath)
		if err != nil {
			return nil, err
		}
	}

	disabled := make(map[rules.RuleID]bool, len(opts.Disabled))
	for _, id := range opts.Disabled {
		disabled[rules.RuleID(id)] = true
	}

	outcome := rules.Evaluate(ctx, rules.Context{
		Artifact: art,
		Lineage:  lineage,
		Usage:    usage,
		Policy: rules.Policy{
			GroupingWidth:        opts.GroupingWidth,
			PortableInterpreters: opts.PortableInterpreters,
			Disabled:             disabled,
		},
	})
	if opts.Logger != nil {
		opts.Logger.Debug("rule evaluation finished", "incomplete", outcome.Incomplete)
	}

	rep := report.Build(art, outcome)

	if !rep.Incomplete {
		if err := report.WriteMarkdown(rep, opts.ReportPath); err != nil {
			return nil, err
		}
	}

	return &Result{Report: rep, ReportPath: opts.ReportPath}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
