// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Conventional metadata document names at the artifact root.
const (
	metaJSONName = "META.json"
	metaYAMLName = "META.yml"
)

// loadDocuments parses whichever metadata documents exist. At least one must;
// both parse permissively into open mappings.
func loadDocuments(root string) (map[DocumentKind]*Document, error) {
	docs := make(map[DocumentKind]*Document)

	if name := firstExisting(root, metaJSONName); name != "" {
		doc, err := parseDocument(root, name, DocJSON)
		if err != nil {
			return nil, err
		}
		docs[DocJSON] = doc
	}
	if name := firstExisting(root, metaYAMLName, "META.yaml"); name != "" {
		doc, err := parseDocument(root, name, DocYAML)
		if err != nil {
			return nil, err
		}
		docs[DocYAML] = doc
	}

	if len(docs) == 0 {
		return nil, &LoadError{Kind: MissingMetadata, Path: root}
	}

	return docs, nil
}

func parseDocument(root, rel string, kind DocumentKind) (*Document, error) {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return nil, &LoadError{Kind: UnreadablePath, Path: rel, Cause: err}
	}

	fields := make(map[string]any)
	switch kind {
	case DocJSON:
		err = json.Unmarshal(data, &fields)
	case DocYAML:
		err = yaml.Unmarshal(data, &fields)
	default:
		err = fmt.Errorf("unknown document kind %q", kind)
	}
	if err != nil {
		return nil, &LoadError{Kind: UnparsableMetadata, Path: rel, Cause: err}
	}

	return &Document{Kind: kind, Path: rel, Fields: fields}, nil
}

// licenseDeclared reports whether the document's license field names at
// least one license.
func licenseDeclared(doc *Document) bool {
	v, ok := doc.Fields["license"]
	if !ok {
		return false
	}
	switch lic := v.(type) {
	case string:
		return lic != ""
	case []any:
		return len(lic) > 0
	default:
		return false
	}
}

// declaredDeps flattens the document's prereqs mapping into dependency name →
// minimum version. CPAN-style metadata nests prereqs by phase and relation
// (prereqs.runtime.requires.Module = "1.2"); any nesting depth is accepted and
// the leaves are collected. A leaf without a version records "0".
func declaredDeps(doc *Document) map[string]string {
	v, ok := doc.Fields["prereqs"]
	if !ok {
		return nil
	}

	deps := make(map[string]string)
	collectDeps(v, deps)
	if len(deps) == 0 {
		return nil
	}
	return deps
}

func collectDeps(v any, deps map[string]string) {
	m, ok := asStringMap(v)
	if !ok {
		return
	}
	for key, val := range m {
		switch leaf := val.(type) {
		case string:
			deps[key] = leaf
		case int:
			deps[key] = fmt.Sprintf("%d", leaf)
		case float64:
			deps[key] = fmt.Sprintf("%g", leaf)
		case nil:
			deps[key] = "0"
		default:
			collectDeps(val, deps)
		}
	}
}

// DeclaredVersion returns the document's version field, with a bool
// reporting whether a non-empty string version is declared. Numeric versions
// (YAML's unquoted 1.23) are rendered back to text.
func (d *Document) DeclaredVersion() (string, bool) {
	v, ok := d.Fields["version"]
	if !ok {
		return "", false
	}
	switch ver := v.(type) {
	case string:
		return ver, ver != ""
	case int:
		return fmt.Sprintf("%d", ver), true
	case float64:
		return fmt.Sprintf("%g", ver), true
	default:
		return "", false
	}
}
