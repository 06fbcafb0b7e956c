package model

import "time"

// Attachment describes a media file referenced by a message body.
type Attachment struct {
	// FileName is the attachment filename including its extension.
	FileName string `json:"fileName"`
	// MediaType is a best-effort MIME type derived from the extension.
	// Empty when the extension is unknown.
	MediaType string `json:"mediaType,omitempty"`
}

// Message is a single structured chat message extracted from an export.
type Message struct {
	// Date is the message timestamp, normalized to UTC.
	Date time.Time `json:"date"`
	// Author is empty for host-generated (system) messages.
	Author string `json:"author,omitempty"`
	// Text is the message body with continuation lines joined by "\n" and
	// the attachment marker stripped when one was extracted.
	Text string `json:"message"`
	// Attachment is set only when attachment parsing was requested and the
	// body carried an attachment marker.
	Attachment *Attachment `json:"attachment,omitempty"`
}

// System reports whether the message was generated by the chat host rather
// than written by a participant.
func (m Message) System() bool {
	return m.Author == ""
}

// RawMessage is one message between assembly and normalization. All byte
// slices point into the original input and stay valid for the duration of a
// single parse call only.
type RawMessage struct {
	// Index is the position of the message in input order. The final result
	// is sorted by it regardless of how normalization was scheduled.
	Index int

	Date   []byte
	Time   []byte
	AMPM   []byte
	Author []byte

	// Body holds the header line's body slice followed by any continuation
	// line slices. Joining with "\n" is deferred until normalization, where
	// the joined text becomes the first owned copy.
	Body [][]byte
}
