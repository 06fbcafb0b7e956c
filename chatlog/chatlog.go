// Package chatlog parses exported chat logs into structured messages.
//
// The engine classifies each input line as either a message header or a
// continuation of the previous message, resolves once per call whether the
// ambiguous date fields are day-first or month-first, and then normalizes all
// messages across a worker pool while preserving input order.
package chatlog

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/edsrzf/mmap-go"

	"github.com/chatlogtools/chatparse/datefmt"
	"github.com/chatlogtools/chatparse/model"
	"github.com/chatlogtools/chatparse/pattern"
)

// Options configure a single parse call. The zero value auto-detects the date
// field order, skips attachment extraction, stays quiet and runs the
// normalizer across GOMAXPROCS workers.
type Options struct {
	// DaysFirst overrides automatic date-order detection when non-nil.
	DaysFirst *bool
	// ParseAttachments enables attachment extraction. When false the
	// attachment pattern is never even evaluated.
	ParseAttachments bool
	// Debug switches normalization to a single sequential worker so that
	// diagnostic log lines interleave in input order. This is a deliberate
	// trade of speed for readable diagnostics.
	Debug bool
	// Workers caps the normalizer pool. Zero means GOMAXPROCS.
	Workers int
	// Logger receives diagnostics when Debug is set. Nil discards them.
	Logger *slog.Logger
	// Matcher selects the chat-export dialect. Nil means the default layout.
	Matcher pattern.Matcher
}

func (o Options) matcher() pattern.Matcher {
	if o.Matcher != nil {
		return o.Matcher
	}
	return pattern.Default()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ParseString parses an in-memory chat export. An input containing no
// recognizable header lines yields an empty result and no error.
func ParseString(text string, opts Options) ([]model.Message, error) {
	return ParseBytes([]byte(text), opts)
}

// ParseBytes parses a chat export held in a byte region. The region is only
// read; all returned messages own their data independently of it.
func ParseBytes(data []byte, opts Options) ([]model.Message, error) {
	units := assemble(data, opts.matcher(), opts.logger(), opts.Debug)
	policy := resolvePolicy(units, opts)
	return normalize(units, policy, opts)
}

// ParseFile memory-maps path read-only and parses it without loading the
// whole file into memory up front. The mapping is released before returning.
func ParseFile(path string, opts Options) ([]model.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chat export: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat chat export: %w", err)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("map chat export: %w", err)
	}
	defer region.Unmap()

	return ParseBytes(region, opts)
}

// resolvePolicy fixes the date-order policy for the whole call. An explicit
// caller override always wins and skips the scan.
func resolvePolicy(units []model.RawMessage, opts Options) datefmt.Policy {
	if opts.DaysFirst != nil {
		return datefmt.Policy{DaysFirst: *opts.DaysFirst}
	}

	dates := make([][]byte, len(units))
	for i, unit := range units {
		dates[i] = unit.Date
	}
	policy := datefmt.Detect(dates)
	if opts.Debug {
		opts.logger().Debug("date order resolved", "daysFirst", policy.DaysFirst, "sampled", len(dates))
	}
	return policy
}
