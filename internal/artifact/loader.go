// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"metacheck/internal/version"
	"metacheck/pkg/types"

	"github.com/charmbracelet/log"
)

// Options configures a single load.
type Options struct {
	// GroupingWidth is the decimal-form fractional grouping width.
	// Zero means version.DefaultGroupingWidth.
	GroupingWidth int
	// ArchiveName is the release archive file name as reported by the
	// packaging pipeline, "" when unknown.
	ArchiveName string
	// UnpackRoot overrides the observed unpack top directory. When "", the
	// base name of the loaded directory is used.
	UnpackRoot string
	// Logger receives debug-level load progress. Nil disables logging.
	Logger *log.Logger
}

func (o Options) width() int {
	if o.GroupingWidth > 0 {
		return o.GroupingWidth
	}
	return version.DefaultGroupingWidth
}

func (o Options) debugf(msg string, keyvals ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, keyvals...)
	}
}

// Load reads the unpacked distribution at root into an Artifact. It is a
// pure read; the returned model is complete and never mutated afterwards.
// Failures are always *LoadError with a specific kind.
func Load(ctx context.Context, root string, opts Options) (*Artifact, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &LoadError{Kind: UnreadablePath, Path: root, Cause: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &LoadError{Kind: UnreadablePath, Path: root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Kind: UnreadablePath, Path: root, Cause: errors.New("not a directory")}
	}

	files, err := listFiles(absRoot)
	if err != nil {
		return nil, &LoadError{Kind: UnreadablePath, Path: root, Cause: err}
	}
	opts.debugf("walked artifact tree", "root", absRoot, "files", len(files))

	docs, err := loadDocuments(absRoot)
	if err != nil {
		return nil, err
	}
	opts.debugf("parsed metadata documents", "count", len(docs))

	name, spec, err := declaredIdentity(docs, opts.width())
	if err != nil {
		return nil, err
	}

	changelogPath, entries, diagnostics, err := parseChangelog(absRoot, opts.width())
	if err != nil {
		return nil, err
	}

	// A malformed declared name is worth surfacing, but the artifact is
	// still checkable; rules compare against the name as written.
	if name != "" {
		if nameErr := types.ArtifactName(name).Validate(); nameErr != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: DiagnosticWarning,
				Code:     "metadata_name_invalid",
				Message:  nameErr.Error(),
			})
		}
	}
	if changelogPath != "" {
		opts.debugf("parsed changelog", "path", changelogPath, "entries", len(entries))
	}

	documentation, err := loadDocumentation(absRoot)
	if err != nil {
		return nil, err
	}

	scripts, err := loadScripts(absRoot, files)
	if err != nil {
		return nil, err
	}
	opts.debugf("collected scripts", "count", len(scripts))

	deps := make(map[string]string)
	for _, kind := range []DocumentKind{DocJSON, DocYAML} {
		if doc, ok := docs[kind]; ok {
			for dep, min := range declaredDeps(doc) {
				deps[dep] = min
			}
		}
	}

	unpackRoot := opts.UnpackRoot
	if unpackRoot == "" {
		unpackRoot = filepath.Base(absRoot)
	}

	return &Artifact{
		Name:                name,
		Version:             spec,
		Files:               files,
		Documents:           docs,
		ChangelogPath:       changelogPath,
		Changelog:           entries,
		LicenseDeclarations: collectLicenseDeclarations(absRoot, docs, documentation),
		Scripts:             scripts,
		DeclaredDeps:        deps,
		Docs:                documentation,
		ArchiveName:         opts.ArchiveName,
		UnpackRoot:          unpackRoot,
		Diagnostics:         diagnostics,
	}, nil
}

// declaredIdentity resolves the artifact's name and version from the
// metadata documents, preferring META.json. A model without a parseable
// version cannot be checked at all, so that is a load failure rather than a
// violation.
func declaredIdentity(docs map[DocumentKind]*Document, width int) (string, version.Spec, error) {
	var primary *Document
	for _, kind := range []DocumentKind{DocJSON, DocYAML} {
		if doc, ok := docs[kind]; ok {
			primary = doc
			break
		}
	}

	name, _ := primary.StringField("name")

	raw, ok := primary.DeclaredVersion()
	if !ok {
		return "", version.Spec{}, &LoadError{
			Kind:  UnparsableMetadata,
			Path:  primary.Path,
			Cause: errors.New("no version declared"),
		}
	}

	spec, err := version.ParseWidth(raw, width)
	if err != nil {
		return "", version.Spec{}, &LoadError{
			Kind:  UnparsableMetadata,
			Path:  primary.Path,
			Cause: fmt.Errorf("declared version: %w", err),
		}
	}

	return name, spec, nil
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("load canceled: %w", ctx.Err())
	default:
		return nil
	}
}
