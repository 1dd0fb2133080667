// SPDX-License-Identifier: MPL-2.0

// Package artifact loads an unpacked distribution into an immutable model.
//
// The loader is a pure read: it walks the distribution tree once, parses the
// metadata documents, changelog, documentation, and installable scripts it
// finds, and hands the resulting Artifact to the rules package. Nothing here
// judges conformance; unparsable *inputs* surface as LoadError, while merely
// unconventional content is left for the rules to flag.
package artifact

import (
	"errors"
	"fmt"
	"time"

	"metacheck/internal/version"
)

// LoadErrorKind classifies fatal loader failures.
type LoadErrorKind string

const (
	// MissingMetadata: neither META.json nor META.yml exists.
	MissingMetadata LoadErrorKind = "missing_metadata"
	// UnparsableMetadata: a metadata document exists but cannot be parsed
	// into a model (including an unparsable declared version).
	UnparsableMetadata LoadErrorKind = "unparsable_metadata"
	// UnreadablePath: the artifact root or one of its files cannot be read.
	UnreadablePath LoadErrorKind = "unreadable_path"
)

// ErrLoad is the sentinel error wrapped by LoadError.
var ErrLoad = errors.New("artifact load failed")

// InputKind identifies which input a LoadError came from, so callers can
// report the failure against the right file.
type InputKind string

const (
	// InputArtifact is the distribution tree itself (the zero value).
	InputArtifact InputKind = ""
	// InputChangelog is the changelog file inside the distribution.
	InputChangelog InputKind = "changelog"
	// InputLineage is the externally supplied release-history file.
	InputLineage InputKind = "lineage"
	// InputUsage is the externally supplied symbol-usage list.
	InputUsage InputKind = "usage"
)

// LoadError is a fatal loader failure. It aborts the run; violations never do.
type LoadError struct {
	Kind  LoadErrorKind
	Input InputKind
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

// Unwrap returns the underlying cause chained behind ErrLoad.
func (e *LoadError) Unwrap() error { return errors.Join(ErrLoad, e.Cause) }

// DocumentKind identifies a metadata document encoding.
type DocumentKind string

const (
	// DocJSON is the META.json document.
	DocJSON DocumentKind = "json"
	// DocYAML is the META.yml document.
	DocYAML DocumentKind = "yaml"
)

// LicenseLocation is a place a license can be declared.
type LicenseLocation string

const (
	LicenseInMetadataJSON LicenseLocation = "metadata-json"
	LicenseInMetadataYAML LicenseLocation = "metadata-yaml"
	LicenseInFile         LicenseLocation = "license-file"
	LicenseInDocs         LicenseLocation = "documentation"
)

// DiagnosticSeverity is the level of a non-fatal loader diagnostic.
type DiagnosticSeverity string

const (
	// DiagnosticWarning indicates a recoverable loader warning.
	DiagnosticWarning DiagnosticSeverity = "warning"
)

type (
	// Diagnostic is a structured, non-fatal loader observation that is
	// returned to callers (rather than written to stderr) for consistent
	// rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity DiagnosticSeverity `json:"severity"`
		// Code is a machine-readable identifier (e.g., "changelog_header_skipped").
		Code string `json:"code"`
		// Message is the human-readable description.
		Message string `json:"message"`
		// Path is the file path associated with this diagnostic (optional).
		Path string `json:"path,omitempty"`
	}

	// Document is one parsed metadata document. Parsing is permissive: the
	// full mapping is preserved, unknown keys included, so forward-compatible
	// metadata never breaks loading.
	Document struct {
		Kind DocumentKind
		// Path is the document's path relative to the artifact root.
		Path string
		// Fields is the open key-value mapping as parsed.
		Fields map[string]any
	}

	// ChangelogEntry is one release record from the changelog, newest first.
	ChangelogEntry struct {
		// Version is the declared release version.
		Version version.Spec
		// RawTimestamp is the timestamp text exactly as written.
		RawTimestamp string
		// Timestamp is the parsed timestamp; zero when no layout matched.
		Timestamp time.Time
		// Items are the free-text change descriptions, in written order.
		Items []string
	}

	// Script is one installable script with its shebang context.
	Script struct {
		// Path is the script path relative to the artifact root.
		Path string
		// Shebang is the first line when it starts with "#!", else "".
		Shebang string
		// Body is the full script content, kept for syntax-level checks.
		Body string
	}

	// Documentation summarizes what the loader found in the docs files.
	Documentation struct {
		// Path is the primary documentation file, "" when none exists.
		Path string
		// HasDescription reports a non-empty description section.
		HasDescription bool
		// MentionsLicense reports licensing language in the documentation.
		MentionsLicense bool
	}

	// Artifact is one versioned release, loaded once and never mutated.
	Artifact struct {
		// Name is the distribution name declared by the metadata.
		Name string
		// Version is the declared version, parsed.
		Version version.Spec
		// Files is every regular file in the tree, root-relative, in
		// deterministic walk order.
		Files []string
		// Documents maps document kind to the parsed document.
		Documents map[DocumentKind]*Document
		// ChangelogPath is the changelog file name, "" when none exists.
		ChangelogPath string
		// Changelog holds the parsed changelog entries, newest first as
		// written; order correctness is a rule's concern, not the loader's.
		Changelog []ChangelogEntry
		// LicenseDeclarations is the set of locations declaring a license.
		LicenseDeclarations map[LicenseLocation]bool
		// Scripts are the installable scripts with their shebang lines.
		Scripts []Script
		// DeclaredDeps maps declared dependency name to its minimum version
		// string ("0" when the metadata declares no minimum).
		DeclaredDeps map[string]string
		// Docs summarizes the documentation files.
		Docs Documentation
		// ArchiveName is the release archive file name, when supplied.
		ArchiveName string
		// UnpackRoot is the top directory the archive unpacks to. Defaults
		// to the base name of the loaded directory.
		UnpackRoot string
		// Diagnostics are non-fatal loader observations.
		Diagnostics []Diagnostic
	}
)

// DocumentFor returns the parsed document of the given kind, or nil.
func (a *Artifact) DocumentFor(kind DocumentKind) *Document {
	return a.Documents[kind]
}

// StringField returns a top-level string field from the document, with a
// bool reporting presence. Non-string values report absent.
func (d *Document) StringField(key string) (string, bool) {
	v, ok := d.Fields[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NestedField walks a dotted key path ("resources.bugtracker") through
// nested mappings and returns the value found, if any.
func (d *Document) NestedField(path ...string) (any, bool) {
	var cur any = d.Fields
	for _, key := range path {
		m, ok := asStringMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// asStringMap normalizes the two mapping shapes the JSON and YAML decoders
// produce into a single map[string]any view.
func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
