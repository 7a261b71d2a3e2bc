package gmail

import (
	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary represents one entry of a mailbox listing.
type MessageSummary struct {
	ID      string
	Subject string
	From    string
	Date    string
	Snippet string
}

// Message represents a single message read in full.
type Message struct {
	ID      string
	Subject string
	From    string
	To      string
	Date    string
	Body    string
	Snippet string
}

// HeaderValue returns the value of the named header from a message payload,
// or "" if absent.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}
