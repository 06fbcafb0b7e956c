package chatlog

import (
	"log/slog"

	"github.com/chatlogtools/chatparse/lines"
	"github.com/chatlogtools/chatparse/model"
	"github.com/chatlogtools/chatparse/pattern"
)

// assemble walks the input once, sequentially, grouping lines into raw
// message units. A header line closes the open unit and starts the next one;
// anything else is body text for the open unit. Lines before the first header
// are discarded. The pass is inherently sequential: every decision depends on
// whether a previous unit is still open.
func assemble(data []byte, m pattern.Matcher, logger *slog.Logger, debug bool) []model.RawMessage {
	var units []model.RawMessage
	discarded := 0

	for line := range lines.All(data) {
		fields, ok := m.MatchHeader(line)
		if !ok {
			if len(units) == 0 {
				discarded++
				if debug {
					logger.Debug("discarding preamble line", "line", string(line))
				}
				continue
			}
			open := &units[len(units)-1]
			open.Body = append(open.Body, line)
			if debug {
				logger.Debug("continuation line", "index", open.Index, "line", string(line))
			}
			continue
		}

		units = append(units, model.RawMessage{
			Index:  len(units),
			Date:   fields.Date,
			Time:   fields.Time,
			AMPM:   fields.AMPM,
			Author: fields.Author,
			Body:   [][]byte{fields.Body},
		})
		if debug {
			logger.Debug("header line",
				"index", len(units)-1,
				"date", string(fields.Date),
				"system", fields.Author == nil)
		}
	}

	if debug {
		logger.Debug("assembly complete", "messages", len(units), "discarded", discarded)
	}
	return units
}
