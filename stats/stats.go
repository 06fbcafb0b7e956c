// Package stats aggregates summary statistics over a parsed message set.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/chatlogtools/chatparse/model"
)

// Summary describes one parsed chat export.
type Summary struct {
	Messages        int
	SystemMessages  int
	WithAttachments int
	Authors         map[string]int
	First           time.Time
	Last            time.Time
}

// Collect tallies a message sequence into a Summary.
func Collect(msgs []model.Message) Summary {
	s := Summary{Authors: make(map[string]int)}
	for _, m := range msgs {
		s.Messages++
		if m.System() {
			s.SystemMessages++
		} else {
			s.Authors[m.Author]++
		}
		if m.Attachment != nil {
			s.WithAttachments++
		}
		if s.First.IsZero() || m.Date.Before(s.First) {
			s.First = m.Date
		}
		if m.Date.After(s.Last) {
			s.Last = m.Date
		}
	}
	return s
}

// LogAttrs renders the summary as slog key/value pairs.
func (s Summary) LogAttrs() []any {
	attrs := []any{
		"messages", s.Messages,
		"systemMessages", s.SystemMessages,
		"withAttachments", s.WithAttachments,
		"authors", len(s.Authors),
	}
	if !s.First.IsZero() {
		attrs = append(attrs, "first", s.First, "last", s.Last)
	}
	return attrs
}

// AuthorCount pairs an author with their message count.
type AuthorCount struct {
	Author string
	Count  int
}

// TopAuthors returns the n most active authors, most active first. Ties are
// broken by author name so the order is stable.
func (s Summary) TopAuthors(n int) []AuthorCount {
	pairs := make([]AuthorCount, 0, len(s.Authors))
	for author, count := range s.Authors {
		pairs = append(pairs, AuthorCount{Author: author, Count: count})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Author < pairs[j].Author
	})

	if n < len(pairs) {
		pairs = pairs[:n]
	}
	return pairs
}

// PrettyPrintTop prints the top N most active authors.
func PrettyPrintTop(s Summary, limit int) {
	for i, pair := range s.TopAuthors(limit) {
		fmt.Printf("%d. %s (%d)\n", i+1, pair.Author, pair.Count)
	}
}
