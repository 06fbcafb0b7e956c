// Package datefmt resolves the day/month field order of ambiguous chat-export
// timestamps and parses them into UTC times.
package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Policy fixes how the two leading numeric date fields are interpreted. It is
// resolved once per parse call, before any message date is parsed, and applied
// uniformly; re-evaluating it per message would make the result set
// internally inconsistent.
type Policy struct {
	// DaysFirst interprets the first of the two ambiguous fields as the day.
	DaysFirst bool
}

// Detect scans raw header date strings in input order and resolves the field
// order. The year field (the longest number) is put aside first; the scan
// stops at the first date where one of the two remaining fields exceeds 12,
// since that field can only be the day. Exhausting the scan without an
// unambiguous pair falls back to day-first.
func Detect(dates [][]byte) Policy {
	for _, date := range dates {
		first, second, _, err := components(string(date))
		if err != nil {
			continue
		}
		if first > 12 {
			return Policy{DaysFirst: true}
		}
		if second > 12 {
			return Policy{DaysFirst: false}
		}
	}
	return Policy{DaysFirst: true}
}

// Parse builds the UTC timestamp of a single message under the resolved
// policy. The date and clock strings come straight from the header matcher;
// this is where semantic validation happens, so an impossible date under the
// policy (month above 12, day outside the month, out-of-range clock fields)
// is reported as an error.
func Parse(date, clock, ampm []byte, p Policy) (time.Time, error) {
	day, month, year, err := components(string(date))
	if err != nil {
		return time.Time{}, err
	}
	if !p.DaysFirst {
		day, month = month, day
	}
	// Two-digit years are assumed to be in the 2000-2099 range.
	if year < 100 {
		year += 2000
	}

	hour, minute, second, err := clockFields(string(clock))
	if err != nil {
		return time.Time{}, err
	}
	if len(ampm) > 0 {
		if hour > 12 {
			return time.Time{}, fmt.Errorf("hour %d out of range for 12-hour clock", hour)
		}
		if hour == 12 {
			hour = 0
		}
		if normalizeAMPM(string(ampm)) == "PM" {
			hour += 12
		}
	}

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("clock %02d:%02d:%02d out of range", hour, minute, second)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 becomes Mar 1 or 2); a
	// changed day means the input day did not exist in that month.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return t, nil
}

// components splits a raw date on its separators and pushes the longest field
// to the end, so the year is always last regardless of the export's layout.
// The two leading fields keep their relative order.
func components(date string) (first, second, year int, err error) {
	parts := strings.FieldsFunc(date, func(r rune) bool {
		return r == '-' || r == '/' || r == '.'
	})
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("date %q: expected three numeric fields", date)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	a, b, c := parts[0], parts[1], parts[2]
	longest := max(len(a), len(b), len(c))
	switch {
	case len(c) == longest:
		// year already last
	case len(b) == longest:
		b, c = c, b
	default:
		a, b, c = b, c, a
	}

	return atoiField(a, b, c, date)
}

func atoiField(a, b, c, date string) (int, int, int, error) {
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: %w", date, err)
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: %w", date, err)
	}
	year, err := strconv.Atoi(c)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: %w", date, err)
	}
	return first, second, year, nil
}

// clockFields splits hh:mm, hh.mm, hh:mm:ss or hh.mm.ss into numbers.
// Seconds default to zero.
func clockFields(clock string) (hour, minute, second int, err error) {
	parts := strings.FieldsFunc(clock, func(r rune) bool {
		return r == ':' || r == '.'
	})
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("clock %q: expected two or three fields", clock)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("clock %q: %w", clock, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("clock %q: %w", clock, err)
	}
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("clock %q: %w", clock, err)
		}
	}
	return hour, minute, second, nil
}

// normalizeAMPM reduces `am` / `a.m.` / `p. m.` variants to AM or PM.
func normalizeAMPM(ampm string) string {
	var b strings.Builder
	for _, r := range ampm {
		if r == 'a' || r == 'A' {
			b.WriteByte('A')
		} else if r == 'p' || r == 'P' {
			b.WriteByte('P')
		} else if r == 'm' || r == 'M' {
			b.WriteByte('M')
		}
	}
	return b.String()
}
