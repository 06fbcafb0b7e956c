// Package pattern classifies chat-export lines and recognizes attachment
// markers. The matching is purely syntactic: a header is anything shaped like
// `<date>, <time> - <author>: <body>` or `<date>, <time> - <body>`, with no
// semantic validation of the date fields. Rejecting, say, day=32 here would
// misclassify valid headers from an unknown locale variant as continuation
// lines; semantic validation belongs to the datefmt stage.
package pattern

import (
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chatlogtools/chatparse/model"
)

// headerExpr matches the timestamp prefix shared by user and system headers:
// an optional run of directional marks, an optional opening bracket, three
// numeric date fields with `/`, `-` or `.` separators, a 12h or 24h time with
// optional seconds, and an optional AM/PM token that may be preceded by a
// narrow no-break space and written with dots.
const headerExpr = `^(?:\x{200E}|\x{200F})*\[?(\d{1,4}[-/.]\s?\d{1,4}[-/.]\s?\d{1,4})[,.]?\s\D*?(\d{1,2}[.:]\d{1,2}(?:[.:]\d{1,2})?)(?:(?:\s|\x{202F})([AaPp](?:\.\s?|\s?)[Mm]\.?))?\]?(?:\s-|:)?\s`

const (
	authorTail = `(?s)(.+?):\s(.*)`
	anyTail    = `(?s)(.*)`

	// attachmentExpr recognizes the two attachment marker families:
	// `<attached: filename>` and `filename.ext (anything)` / `filename.ext <anything>`.
	attachmentExpr = `^(?:\x{200E}|\x{200F})*(?:<.+:(.+)>|([\w-]+\.\w+)\s[(<].+[)>])`
)

var (
	reUser       = regexp.MustCompile(headerExpr + authorTail)
	reSystem     = regexp.MustCompile(headerExpr + anyTail)
	reAttachment = regexp.MustCompile(attachmentExpr)
)

// HeaderFields holds the decomposed parts of a header line. All slices point
// into the matched line; AMPM and Author may be nil.
type HeaderFields struct {
	Date   []byte
	Time   []byte
	AMPM   []byte
	Author []byte
	Body   []byte
}

// Matcher is the capability the assembler and normalizer need from a chat
// dialect. Alternative export layouts can be supported by providing another
// implementation; the rest of the engine never touches a regex directly.
type Matcher interface {
	// MatchHeader reports whether line starts a new message and, if so,
	// returns its decomposed fields.
	MatchHeader(line []byte) (HeaderFields, bool)
	// MatchAttachment extracts an attachment marker from a message body. On a
	// match it returns the attachment and the body with the marker removed;
	// otherwise it returns the body unmodified.
	MatchAttachment(body string) (model.Attachment, string, bool)
}

// Dialect matches the export layout produced by WhatsApp's chat export,
// covering its known regional date and time variants.
type Dialect struct{}

// Default returns the matcher for the standard export layout.
func Default() Matcher {
	return Dialect{}
}

func (Dialect) MatchHeader(line []byte) (HeaderFields, bool) {
	if m := reUser.FindSubmatch(line); m != nil {
		return HeaderFields{Date: m[1], Time: m[2], AMPM: m[3], Author: m[4], Body: m[5]}, true
	}
	if m := reSystem.FindSubmatch(line); m != nil {
		return HeaderFields{Date: m[1], Time: m[2], AMPM: m[3], Body: m[4]}, true
	}
	return HeaderFields{}, false
}

func (Dialect) MatchAttachment(body string) (model.Attachment, string, bool) {
	m := reAttachment.FindStringSubmatchIndex(body)
	if m == nil {
		return model.Attachment{}, body, false
	}

	name := group(body, m, 1)
	if name == "" {
		name = group(body, m, 2)
	}
	name = strings.TrimSpace(name)

	cleaned := strings.TrimSpace(body[:m[0]] + body[m[1]:])

	att := model.Attachment{
		FileName:  name,
		MediaType: mime.TypeByExtension(filepath.Ext(name)),
	}
	return att, cleaned, true
}

func group(s string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}
