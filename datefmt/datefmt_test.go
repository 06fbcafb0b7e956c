package datefmt

import (
	"testing"
	"time"
)

func bytesOf(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		dates     []string
		daysFirst bool
	}{
		{"first field above 12", []string{"3/6/2017", "13/11/2017", "26/12/2017"}, true},
		{"second field above 12", []string{"4/2/2017", "6/11/2017", "12/13/2017"}, false},
		{"all ambiguous defaults to day-first", []string{"4/6/2017", "11/10/2017", "12/12/2017"}, true},
		{"no dates defaults to day-first", nil, true},
		{"stops at first unambiguous pair", []string{"1/2/2017", "13/1/2017", "1/13/2017"}, true},
		{"year first is put aside", []string{"2018/06/13"}, false},
		{"spaced separators", []string{"13. 6. 2018"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(bytesOf(tt.dates...))
			if got.DaysFirst != tt.daysFirst {
				t.Errorf("Detect(%v).DaysFirst = %v, want %v", tt.dates, got.DaysFirst, tt.daysFirst)
			}
		})
	}
}

func TestParse(t *testing.T) {
	dayFirst := Policy{DaysFirst: true}
	monthFirst := Policy{DaysFirst: false}

	tests := []struct {
		name   string
		date   string
		clock  string
		ampm   string
		policy Policy
		want   time.Time
	}{
		{"short fields pm", "3/6/18", "1:55", "p.m.", dayFirst, time.Date(2018, 6, 3, 13, 55, 0, 0, time.UTC)},
		{"padded fields", "03-06-2018", "01.55", "PM", dayFirst, time.Date(2018, 6, 3, 13, 55, 0, 0, time.UTC)},
		{"dotted 24h with seconds", "13.06.18", "21.25.15", "", dayFirst, time.Date(2018, 6, 13, 21, 25, 15, 0, time.UTC)},
		{"month first", "06.13.18", "21:25:15", "", monthFirst, time.Date(2018, 6, 13, 21, 25, 15, 0, time.UTC)},
		{"year first", "2018/06/13", "21:25:15", "", monthFirst, time.Date(2018, 6, 13, 21, 25, 15, 0, time.UTC)},
		{"year in the middle", "06/2018/13", "21:25:15", "", monthFirst, time.Date(2018, 6, 13, 21, 25, 15, 0, time.UTC)},
		{"spaced dotted date", "13. 6. 2018", "21:25:15", "", dayFirst, time.Date(2018, 6, 13, 21, 25, 15, 0, time.UTC)},
		{"spaced ampm", "3/6/2018", "1:55", "p. m.", dayFirst, time.Date(2018, 6, 3, 13, 55, 0, 0, time.UTC)},
		{"midnight 12 am", "6/3/2017", "12:45", "a.m.", dayFirst, time.Date(2017, 3, 6, 0, 45, 0, 0, time.UTC)},
		{"noon 12 pm", "6/3/2017", "12:45", "p.m.", dayFirst, time.Date(2017, 3, 6, 12, 45, 0, 0, time.UTC)},
		{"24h midnight", "06/03/2017", "00:45", "", dayFirst, time.Date(2017, 3, 6, 0, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.date), []byte(tt.clock), []byte(tt.ampm), tt.policy)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePolicySwap(t *testing.T) {
	date, clock := []byte("3/6/18"), []byte("13:00")

	asDayFirst, err := Parse(date, clock, nil, Policy{DaysFirst: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	asMonthFirst, err := Parse(date, clock, nil, Policy{DaysFirst: false})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if asDayFirst.Day() != 3 || asDayFirst.Month() != time.June {
		t.Errorf("day-first = %v, want June 3", asDayFirst)
	}
	if asMonthFirst.Day() != 6 || asMonthFirst.Month() != time.March {
		t.Errorf("month-first = %v, want March 6", asMonthFirst)
	}
}

func TestParseMalformed(t *testing.T) {
	dayFirst := Policy{DaysFirst: true}

	tests := []struct {
		name  string
		date  string
		clock string
		ampm  string
	}{
		{"month above 12", "13/13/2020", "10:00", ""},
		{"day not in month", "30/02/2020", "10:00", ""},
		{"hour out of range", "01/02/2020", "24:00", ""},
		{"minute out of range", "01/02/2020", "10:61", ""},
		{"12h clock with 24h hour", "01/02/2020", "13:00", "PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.date), []byte(tt.clock), []byte(tt.ampm), dayFirst); err == nil {
				t.Errorf("Parse(%q %q %q) succeeded, want error", tt.date, tt.clock, tt.ampm)
			}
		})
	}
}

func TestParseLeapDay(t *testing.T) {
	got, err := Parse([]byte("29/02/2020"), []byte("10:00"), nil, Policy{DaysFirst: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Day() != 29 || got.Month() != time.February {
		t.Errorf("Parse() = %v, want Feb 29", got)
	}
}

func TestNormalizeAMPM(t *testing.T) {
	cases := map[string]string{
		"am": "AM", "pm": "PM", "AM": "AM", "PM": "PM",
		"a.m.": "AM", "p.m.": "PM", "A.M.": "AM", "P.M.": "PM",
		"p. m.": "PM",
	}
	for in, want := range cases {
		if got := normalizeAMPM(in); got != want {
			t.Errorf("normalizeAMPM(%q) = %q, want %q", in, got, want)
		}
	}
}
