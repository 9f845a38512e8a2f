package domain

import "time"

// Message mirrors one document of a messages subcollection. Receiver is
// set on direct messages only; SenderName is the denormalized display
// name carried by group messages.
type Message struct {
	ID         string `json:"-"`
	Text       string `json:"text"`
	Sender     string `json:"sender"`
	Receiver   string `json:"receiver,omitempty"`
	SenderName string `json:"senderName,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// timestampLayout is RFC 3339 with a fixed-width fractional second.
// RFC3339Nano trims trailing zeros, which breaks the alignment of
// lexicographic and chronological order within a second ("...00.134Z"
// would sort before "...00.13Z").
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp renders t in the ISO-8601 shape used across all documents.
// The fixed width keeps lexicographic and chronological order aligned,
// which both the message key scan and the chat list sort rely on.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Now mints the timestamp for a document written at this instant.
func Now() string {
	return Timestamp(time.Now())
}
