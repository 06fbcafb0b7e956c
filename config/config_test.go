package config

import (
	"testing"

	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	RegisterFlags(cmd)
	return cmd
}

func loadWithArgs(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	cmd := newTestCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	return LoadConfig(cmd)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadWithArgs(t)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DateOrder != DateOrderAuto {
		t.Errorf("DateOrder = %q, want auto", cfg.DateOrder)
	}
	if cfg.ParseAttachments {
		t.Error("ParseAttachments should default to false")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DaysFirst() != nil {
		t.Error("DaysFirst() should be nil for auto detection")
	}
}

func TestLoadConfigDateOrder(t *testing.T) {
	cfg, err := loadWithArgs(t, "--date-order", "day-first")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if v := cfg.DaysFirst(); v == nil || !*v {
		t.Errorf("DaysFirst() = %v, want true", v)
	}

	cfg, err = loadWithArgs(t, "--date-order", "MONTH-FIRST")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if v := cfg.DaysFirst(); v == nil || *v {
		t.Errorf("DaysFirst() = %v, want false", v)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad date order", []string{"--date-order", "year-first"}},
		{"negative workers", []string{"--workers", "-1"}},
		{"bad format", []string{"--format", "xml"}},
		{"bad log level", []string{"--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadWithArgs(t, tt.args...); err == nil {
				t.Errorf("LoadConfig(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestParseDateOrder(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "auto", want: DateOrderAuto},
		{value: "Day-First", want: DateOrderDayFirst},
		{value: "MONTH-FIRST", want: DateOrderMonthFirst},
		{value: "year-first", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDateOrder(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDateOrder(%q) succeeded, want error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDateOrder(%q) error = %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDateOrder(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestLoadConfigWarningAlias(t *testing.T) {
	cfg, err := loadWithArgs(t, "--log-level", "warning")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}
