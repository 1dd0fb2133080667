// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"strings"
	"time"

	"metacheck/internal/version"
)

// changelogNames are the conventional changelog file names, in lookup order.
var changelogNames = []string{"Changes", "CHANGES", "Changelog", "CHANGELOG"}

// changelogLayouts are the timestamp layouts accepted on a record header,
// most specific first. Timezone is optional.
var changelogLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon Jan _2 15:04:05 MST 2006",
	"Mon Jan _2 15:04:05 2006",
}

// parseChangelog reads the changelog, one record per release: a header line
// "<version> <timestamp>" followed by indented bullet lines. Headers that do
// not parse become diagnostics, not failures; whether the records are well
// ordered is the ChangelogFormat rule's call.
func parseChangelog(root string, width int) (string, []ChangelogEntry, []Diagnostic, error) {
	name := firstExisting(root, changelogNames...)
	if name == "" {
		return "", nil, nil, nil
	}

	lines, err := readLines(root, name)
	if err != nil {
		return name, nil, nil, &LoadError{Kind: UnreadablePath, Input: InputChangelog, Path: name, Cause: err}
	}

	var (
		entries     []ChangelogEntry
		diagnostics []Diagnostic
		current     *ChangelogEntry
	)

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indented := line[0] == ' ' || line[0] == '\t'
		if indented {
			if current == nil {
				diagnostics = append(diagnostics, Diagnostic{
					Severity: DiagnosticWarning,
					Code:     "changelog_orphan_item",
					Message:  fmt.Sprintf("line %d: change item before any release header", i+1),
					Path:     name,
				})
				continue
			}
			item := strings.TrimSpace(line)
			item = strings.TrimLeft(item, "-*")
			current.Items = append(current.Items, strings.TrimSpace(item))
			continue
		}

		entry, ok := parseChangelogHeader(line, width)
		if !ok {
			// Prose preamble before the first record is common; anything
			// after a record started is a malformed header.
			if current != nil || len(entries) > 0 {
				diagnostics = append(diagnostics, Diagnostic{
					Severity: DiagnosticWarning,
					Code:     "changelog_header_skipped",
					Message:  fmt.Sprintf("line %d: not a '<version> <timestamp>' header: %q", i+1, strings.TrimSpace(line)),
					Path:     name,
				})
			}
			continue
		}

		flush()
		current = &entry
	}
	flush()

	return name, entries, diagnostics, nil
}

func parseChangelogHeader(line string, width int) (ChangelogEntry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ChangelogEntry{}, false
	}

	spec, err := version.ParseWidth(fields[0], width)
	if err != nil {
		return ChangelogEntry{}, false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	entry := ChangelogEntry{Version: spec, RawTimestamp: raw}
	for _, layout := range changelogLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			entry.Timestamp = ts
			break
		}
	}

	return entry, true
}
