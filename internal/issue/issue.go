// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MetadataNotFoundId Id = iota + 1
	MetadataParseErrorId
	ArtifactUnreadableId
	ChangelogUnreadableId
	LineageUnreadableId
	UsageParseErrorId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reserved for published docs per issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	metadataNotFoundIssue = &Issue{
		id: MetadataNotFoundId,
		mdMsg: `
# No metadata document found!

The distribution directory contains neither a META.json nor a META.yml, so
there is nothing to check the release against.

## Things you can try:
- Point metacheck at the root of the *unpacked* distribution:
~~~
$ metacheck check path/to/Foo-Bar-1.23
~~~

- Regenerate the metadata with your build tooling and re-pack the release
- If the metadata lives under a non-standard name, rename it to META.json
  or META.yml`,
	}

	metadataParseErrorIssue = &Issue{
		id: MetadataParseErrorId,
		mdMsg: `
# Failed to parse a metadata document!

A META.json or META.yml exists but could not be parsed.

## Common issues:
- Invalid JSON/YAML syntax (stray commas, bad indentation, unquoted strings)
- A document that is a list or scalar at the top level instead of a mapping

## Things you can try:
- Check the error message above for the specific document
- Validate the file with a JSON/YAML linter
- Run with verbose mode for more details:
~~~
$ metacheck --verbose check .
~~~

Unknown keys are fine — metacheck parses permissively and never rejects a
document for carrying extra fields.`,
	}

	artifactUnreadableIssue = &Issue{
		id: ArtifactUnreadableId,
		mdMsg: `
# Cannot read the distribution directory!

The path you supplied does not exist, is not a directory, or is not readable.

## Things you can try:
- Check the path for typos
- Check directory permissions
- Unpack the release archive first; metacheck reads the unpacked tree:
~~~
$ tar -xzf Foo-Bar-1.23.tar.gz && metacheck check Foo-Bar-1.23
~~~`,
	}

	changelogUnreadableIssue = &Issue{
		id: ChangelogUnreadableId,
		mdMsg: `
# Cannot read the changelog!

A changelog file (Changes, CHANGES, or Changelog) exists but could not be read.

## Things you can try:
- Check the file's permissions
- Make sure it is a regular text file, not a symlink into a missing tree`,
	}

	lineageUnreadableIssue = &Issue{
		id: LineageUnreadableId,
		mdMsg: `
# Cannot read the lineage file!

The file passed via --lineage could not be read or contains an unparsable
version.

## Expected format:
One released version per line, oldest first:
~~~
1.18
1.19
1.1901
~~~

Without a lineage the history rules simply report as skipped, so you can also
drop the flag entirely.`,
	}

	usageParseErrorIssue = &Issue{
		id: UsageParseErrorId,
		mdMsg: `
# Failed to parse the usage list!

The file passed via --usage must be a TOML document mapping each used
dependency to the symbols the code pulls from it.

## Expected format:
~~~toml
[dependencies."Some-Module"]
symbols = ["frobnicate", "unfrobnicate"]

[dependencies."Other-Module"]
symbols = ["greet"]
~~~

Without a usage list the dependency-completeness rule reports as skipped.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the metacheck configuration file.

## Configuration file locations:
- Linux: ~/.config/metacheck/config.cue
- macOS: ~/Library/Application Support/metacheck/config.cue
- Windows: %APPDATA%\metacheck\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ metacheck config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
grouping_width: 3
disabled_rules: []
portable_interpreters: ["/usr/bin/perl"]

ui: {
  verbose: false
}

output: {
  format: "human"
  report_path: "metacheck-report.md"
}
~~~`,
	}

	issues = map[Id]*Issue{
		metadataNotFoundIssue.Id():    metadataNotFoundIssue,
		metadataParseErrorIssue.Id():  metadataParseErrorIssue,
		artifactUnreadableIssue.Id():  artifactUnreadableIssue,
		changelogUnreadableIssue.Id(): changelogUnreadableIssue,
		lineageUnreadableIssue.Id():   lineageUnreadableIssue,
		usageParseErrorIssue.Id():     usageParseErrorIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
