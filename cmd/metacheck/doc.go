// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for metacheck.
//
// This package implements the Cobra command hierarchy: the root command,
// the check command that evaluates a distribution, the rules listing, and
// configuration management.
package cmd
