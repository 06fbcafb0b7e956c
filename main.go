package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatlogtools/chatparse/chatlog"
	"github.com/chatlogtools/chatparse/cmd"
	"github.com/chatlogtools/chatparse/config"
	"github.com/chatlogtools/chatparse/stats"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chatparse [chat export]",
		Short: "Parse exported chat logs into structured messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(c)
			if err != nil {
				return err
			}

			logger, cleanup, err := setupLogger(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = cleanup()
			}()

			slog.SetDefault(logger)
			logger.Info("starting chatparse", "export", args[0], "dateOrder", cfg.DateOrder, "attachments", cfg.ParseAttachments)

			return run(args[0], cfg, logger)
		},
	}

	config.RegisterFlags(rootCmd)
	rootCmd.AddCommand(cmd.NewStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, cfg config.Config, logger *slog.Logger) error {
	started := time.Now()

	opts := chatlog.Options{
		DaysFirst:        cfg.DaysFirst(),
		ParseAttachments: cfg.ParseAttachments,
		Debug:            cfg.Debug,
		Workers:          cfg.Workers,
		Logger:           logger,
	}

	msgs, err := chatlog.ParseFile(path, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	switch cfg.Format {
	case "text":
		for _, m := range msgs {
			if m.System() {
				fmt.Printf("%s - %s\n", m.Date.Format(time.DateTime), m.Text)
			} else {
				fmt.Printf("%s - %s: %s\n", m.Date.Format(time.DateTime), m.Author, m.Text)
			}
		}
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(msgs); err != nil {
			return fmt.Errorf("encode messages: %w", err)
		}
	}

	summary := stats.Collect(msgs)
	attrs := append(summary.LogAttrs(), "duration", time.Since(started))
	logger.Info("parse summary", attrs...)
	return nil
}

func setupLogger(cfg config.Config) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	switch cfg.LogLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}

	opts := &slog.HandlerOptions{Level: level}
	cleanup := func() error { return nil }

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			return nil, cleanup, err
		}

		logFilePath := filepath.Join(cfg.LogDir, fmt.Sprintf("chatparse-%s.log", time.Now().Format("20060102T150405")))
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, cleanup, err
		}

		handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, file), opts)
		cleanup = func() error {
			return file.Close()
		}
		return slog.New(handler), cleanup, nil
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler), cleanup, nil
}
