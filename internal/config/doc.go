// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/metacheck/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/metacheck/config.cue on
// macOS, %APPDATA%\metacheck\config.cue on Windows). Settings cover the
// version grouping width, the disabled-rule list, the portable interpreter
// set, and output preferences.
//
// Files are validated against a CUE schema (config_schema.cue) before use so
// invalid settings fail with a field-level error instead of a silent default.
package config
