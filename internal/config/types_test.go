// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestOutputFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  OutputFormat
		wantErr bool
	}{
		{name: "human", format: FormatHuman, wantErr: false},
		{name: "json", format: FormatJSON, wantErr: false},
		{name: "empty", format: "", wantErr: true},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.format.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidOutputFormat) {
				t.Errorf("error %v does not wrap ErrInvalidOutputFormat", err)
			}
			if got := tt.format.IsValid(); got == tt.wantErr {
				t.Errorf("IsValid() = %v, wantErr %v", got, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  error
		wantPass bool
	}{
		{name: "defaults pass", mutate: func(*Config) {}, wantPass: true},
		{
			name:    "width too small",
			mutate:  func(c *Config) { c.GroupingWidth = 0 },
			wantErr: ErrInvalidGroupingWidth,
		},
		{
			name:    "width too large",
			mutate:  func(c *Config) { c.GroupingWidth = 10 },
			wantErr: ErrInvalidGroupingWidth,
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Output.Format = "yaml" },
			wantErr: ErrInvalidOutputFormat,
		},
		{
			name:    "blank rule name",
			mutate:  func(c *Config) { c.DisabledRules = []string{"  "} },
			wantErr: ErrInvalidRuleName,
		},
		{
			name:    "duplicate rule name",
			mutate:  func(c *Config) { c.DisabledRules = []string{"archive-naming", "archive-naming"} },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantPass {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
		})
	}
}
