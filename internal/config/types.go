// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FormatHuman renders results as styled terminal text.
	FormatHuman OutputFormat = "human"
	// FormatJSON renders the full report as JSON on stdout.
	FormatJSON OutputFormat = "json"
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidGroupingWidth is returned when the grouping width is out of range.
	ErrInvalidGroupingWidth = errors.New("invalid grouping width")
	// ErrInvalidRuleName is the sentinel error wrapped by InvalidRuleNameError.
	ErrInvalidRuleName = errors.New("invalid rule name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how check results are rendered.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not
	// recognized. It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidRuleNameError is returned when a disabled_rules entry is empty
	// or whitespace-only. It wraps ErrInvalidRuleName for errors.Is().
	InvalidRuleNameError struct {
		Value string
	}

	// InvalidConfigError aggregates the first validation failure of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Cause error
	}

	// UIConfig holds terminal UI settings.
	UIConfig struct {
		// Verbose enables debug logging and expanded error output.
		Verbose bool `mapstructure:"verbose"`
	}

	// OutputConfig holds report output settings.
	OutputConfig struct {
		Format OutputFormat `mapstructure:"format"`
		// ReportPath receives the Markdown report when set.
		ReportPath string `mapstructure:"report_path"`
	}

	// Config is the complete application configuration.
	Config struct {
		// GroupingWidth is the digit count per decimal-version fraction group.
		GroupingWidth int `mapstructure:"grouping_width"`
		// DisabledRules lists rule identifiers to skip.
		DisabledRules []string `mapstructure:"disabled_rules"`
		// PortableInterpreters closes the interpreter set for shebang checks.
		// Empty accepts every absolute interpreter path.
		PortableInterpreters []string `mapstructure:"portable_interpreters"`
		UI                   UIConfig     `mapstructure:"ui"`
		Output               OutputConfig `mapstructure:"output"`
	}
)

func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("%v: %q (valid: %q, %q)", ErrInvalidOutputFormat, e.Value, FormatHuman, FormatJSON)
}

func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

func (e *InvalidRuleNameError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidRuleName, e.Value)
}

func (e *InvalidRuleNameError) Unwrap() error { return ErrInvalidRuleName }

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidConfig, e.Cause)
}

func (e *InvalidConfigError) Unwrap() error { return errors.Join(ErrInvalidConfig, e.Cause) }

// Validate checks that the format is one of the recognized values.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatHuman, FormatJSON:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// IsValid reports whether the format would pass Validate.
func (f OutputFormat) IsValid() bool { return f.Validate() == nil }

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		GroupingWidth:        3,
		DisabledRules:        nil,
		PortableInterpreters: nil,
		UI:                   UIConfig{Verbose: false},
		Output:               OutputConfig{Format: FormatHuman},
	}
}

// Validate checks cross-field constraints the CUE schema cannot express on
// viper-merged values.
func (c *Config) Validate() error {
	if c.GroupingWidth < 1 || c.GroupingWidth > 9 {
		return &InvalidConfigError{Cause: fmt.Errorf("%w: %d (must be 1..9)", ErrInvalidGroupingWidth, c.GroupingWidth)}
	}
	if err := c.Output.Format.Validate(); err != nil {
		return &InvalidConfigError{Cause: err}
	}
	seen := make(map[string]bool, len(c.DisabledRules))
	for _, name := range c.DisabledRules {
		if strings.TrimSpace(name) == "" {
			return &InvalidConfigError{Cause: &InvalidRuleNameError{Value: name}}
		}
		if seen[name] {
			return &InvalidConfigError{Cause: fmt.Errorf("duplicate disabled rule %q", name)}
		}
		seen[name] = true
	}
	return nil
}
