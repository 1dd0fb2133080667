// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context for fatal failures.
//
// Conformance violations are never errors; they flow through the rules and
// report packages. This package covers the other class of failure: the run
// could not happen at all (unreadable artifact, unparsable metadata, broken
// config). ActionableError carries operation/resource/suggestion context for
// those, and the issue catalog supplies rendered Markdown guidance per
// failure id.
package issue
