package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Date-order values accepted by --date-order.
const (
	DateOrderAuto       = "auto"
	DateOrderDayFirst   = "day-first"
	DateOrderMonthFirst = "month-first"
)

// Config captures all command-line options required to parse a chat export.
type Config struct {
	DateOrder        string
	ParseAttachments bool
	Workers          int
	Format           string
	Debug            bool
	LogLevel         string
	LogDir           string
}

// RegisterFlags attaches all CLI flags to the provided command.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("date-order", DateOrderAuto, "Interpretation of ambiguous date fields: auto, day-first or month-first")
	flags.Bool("attachments", false, "Extract attachment markers from message bodies")
	flags.Int("workers", 0, "Worker count for message normalization (0 = number of CPUs)")
	flags.String("format", "json", "Output format: json or text")
	flags.Bool("debug", false, "Emit per-line parsing diagnostics (forces sequential processing)")
	flags.String("log-level", "info", "Logging level: debug, info, warn, error")
	flags.String("log-dir", "", "Directory for log files (in addition to stdout)")
}

// LoadConfig converts the parsed Cobra flags into a Config struct with validation.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	dateOrder, err := flags.GetString("date-order")
	if err != nil {
		return Config{}, err
	}
	parseAttachments, err := flags.GetBool("attachments")
	if err != nil {
		return Config{}, err
	}
	workers, err := flags.GetInt("workers")
	if err != nil {
		return Config{}, err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return Config{}, err
	}
	debug, err := flags.GetBool("debug")
	if err != nil {
		return Config{}, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return Config{}, err
	}
	logDir, err := flags.GetString("log-dir")
	if err != nil {
		return Config{}, err
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	dateOrder, err = ParseDateOrder(dateOrder)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DateOrder:        dateOrder,
		ParseAttachments: parseAttachments,
		Workers:          workers,
		Format:           strings.ToLower(format),
		Debug:            debug,
		LogLevel:         logLevel,
		LogDir:           logDir,
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseDateOrder normalizes a --date-order value and rejects anything that
// is not one of the accepted orders.
func ParseDateOrder(value string) (string, error) {
	order := strings.ToLower(value)
	switch order {
	case DateOrderAuto, DateOrderDayFirst, DateOrderMonthFirst:
		return order, nil
	default:
		return "", fmt.Errorf("invalid --date-order: %s", value)
	}
}

// DaysFirst maps the date-order option to the parser's override: nil for
// automatic detection, otherwise the explicit choice.
func (c Config) DaysFirst() *bool {
	switch c.DateOrder {
	case DateOrderDayFirst:
		v := true
		return &v
	case DateOrderMonthFirst:
		v := false
		return &v
	default:
		return nil
	}
}

func validateConfig(cfg Config) error {
	switch cfg.DateOrder {
	case DateOrderAuto, DateOrderDayFirst, DateOrderMonthFirst:
	default:
		return fmt.Errorf("invalid --date-order: %s", cfg.DateOrder)
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}

	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid --format: %s", cfg.Format)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}

	return nil
}
