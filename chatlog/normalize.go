package chatlog

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/chatlogtools/chatparse/datefmt"
	"github.com/chatlogtools/chatparse/model"
	"github.com/chatlogtools/chatparse/pattern"
)

// TimestampError reports a message whose timestamp could not be parsed under
// the resolved date-order policy. It fails the whole call: a single bad
// timestamp means the policy itself is likely wrong for this input, so a
// partial result would be misleading.
type TimestampError struct {
	// Index is the message's position in input order.
	Index int
	// Raw is the offending timestamp text as it appeared in the export.
	Raw string
	Err error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("message %d: malformed timestamp %q: %v", e.Index, e.Raw, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

// transformFunc maps one raw unit to its final message. Both execution
// strategies share the same transform; only scheduling differs.
type transformFunc func(unit model.RawMessage) (model.Message, error)

// normalize turns raw units into final messages, in Index order. Debug mode
// (or a one-worker cap) runs strictly sequentially so diagnostics interleave
// in input order; otherwise units fan out across a bounded worker pool.
func normalize(units []model.RawMessage, policy datefmt.Policy, opts Options) ([]model.Message, error) {
	if len(units) == 0 {
		return nil, nil
	}

	tf := transformer(policy, opts.matcher(), opts.ParseAttachments)

	var exec executor
	if opts.Debug || opts.workers() == 1 {
		exec = &sequentialExecutor{transform: tf, logger: opts.logger(), debug: opts.Debug}
	} else {
		exec = &parallelExecutor{transform: tf, workers: opts.workers()}
	}
	return exec.run(units)
}

func transformer(policy datefmt.Policy, m pattern.Matcher, parseAttachments bool) transformFunc {
	return func(unit model.RawMessage) (model.Message, error) {
		date, err := datefmt.Parse(unit.Date, unit.Time, unit.AMPM, policy)
		if err != nil {
			return model.Message{}, &TimestampError{
				Index: unit.Index,
				Raw:   string(unit.Date) + ", " + string(unit.Time),
				Err:   err,
			}
		}

		text := strings.TrimSpace(stripMarks(bytes.Join(unit.Body, []byte{'\n'})))

		msg := model.Message{
			Date:   date,
			Author: string(unit.Author),
			Text:   text,
		}

		if parseAttachments {
			if att, cleaned, ok := m.MatchAttachment(text); ok {
				msg.Attachment = &att
				msg.Text = cleaned
			}
		}
		return msg, nil
	}
}

// directional marks (LRM/RLM) that WhatsApp sprinkles around filenames and
// sticker bodies; removed from final message text.
var markStripper = runes.Remove(runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x200e, Hi: 0x200f, Stride: 1}},
}))

func stripMarks(b []byte) string {
	out, _, err := transform.Bytes(markStripper, b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

type executor interface {
	run(units []model.RawMessage) ([]model.Message, error)
}

type sequentialExecutor struct {
	transform transformFunc
	logger    *slog.Logger
	debug     bool
}

func (e *sequentialExecutor) run(units []model.RawMessage) ([]model.Message, error) {
	out := make([]model.Message, len(units))
	for _, unit := range units {
		msg, err := e.transform(unit)
		if err != nil {
			return nil, err
		}
		if e.debug {
			e.logger.Debug("normalized message",
				"index", unit.Index,
				"date", msg.Date,
				"author", msg.Author,
				"attachment", msg.Attachment != nil)
		}
		out[unit.Index] = msg
	}
	return out, nil
}

// parallelExecutor fans units out to a bounded pool. Each worker writes only
// its own unit's slot of the result slice, so the fan-in is a plain placement
// by Index and the output order never depends on scheduling. The first error
// wins; once one is recorded no further units are handed out, though units
// already in flight run to completion.
type parallelExecutor struct {
	transform transformFunc
	workers   int
}

func (e *parallelExecutor) run(units []model.RawMessage) ([]model.Message, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make([]model.Message, len(units))
	tasks := make(chan model.RawMessage)

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		errMu.Unlock()
	}

	workers := min(e.workers, len(units))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range tasks {
				msg, err := e.transform(unit)
				if err != nil {
					fail(err)
					continue
				}
				out[unit.Index] = msg
			}
		}()
	}

feed:
	for _, unit := range units {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- unit:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
