package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client wraps the Gmail Users service for the authenticated user.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a Gmail client authenticated with the given bearer
// token. The token comes from the authorization layer; there is no refresh.
func NewClient(ctx context.Context, accessToken string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{svc: svc.Users}, nil
}

// ListMessages lists recent messages, optionally restricted to unread ones.
// Each listed ID is hydrated with a second metadata call for the From,
// Subject and Date headers plus the snippet.
func (c *Client) ListMessages(unread bool, maxResults int64) ([]MessageSummary, error) {
	query := ""
	if unread {
		query = "is:unread"
	}

	res, err := c.svc.Messages.List("me").Q(query).MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var summaries []MessageSummary
	for _, ref := range res.Messages {
		msg, err := c.svc.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject", "Date").
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", ref.Id, err)
		}
		summaries = append(summaries, toMessageSummary(msg))
	}

	return summaries, nil
}

// ReadMessage retrieves a single message in full, extracting its plain-text
// body. Snippet is kept as a fallback for messages without a text part.
func (c *Client) ReadMessage(messageID string) (*Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	message := &Message{
		ID:      msg.Id,
		Subject: HeaderValue(msg, "Subject"),
		From:    HeaderValue(msg, "From"),
		To:      HeaderValue(msg, "To"),
		Date:    HeaderValue(msg, "Date"),
		Snippet: msg.Snippet,
	}
	if msg.Payload != nil {
		message.Body = extractPlainText(msg.Payload)
	}

	return message, nil
}

// SendEmail sends a plain-text email and returns the sent message ID.
func (c *Client) SendEmail(to, subject, body string) (string, error) {
	if to == "" {
		return "", fmt.Errorf("recipient is required")
	}
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if body == "" {
		return "", fmt.Errorf("body is required")
	}

	// Build the message in RFC 2822 format
	var emailBuilder strings.Builder
	emailBuilder.WriteString("To: ")
	emailBuilder.WriteString(to)
	emailBuilder.WriteString("\r\n")
	emailBuilder.WriteString("Subject: ")
	emailBuilder.WriteString(encodeRFC2047(subject))
	emailBuilder.WriteString("\r\n")
	emailBuilder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	emailBuilder.WriteString("MIME-Version: 1.0\r\n")
	emailBuilder.WriteString("\r\n")
	emailBuilder.WriteString(body)

	raw := base64.URLEncoding.EncodeToString([]byte(emailBuilder.String()))

	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// encodeRFC2047 encodes a string for use in email headers according to RFC 2047.
// This is necessary for non-ASCII characters (like umlauts) in subjects.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// toMessageSummary converts a metadata-format Gmail message to a MessageSummary
func toMessageSummary(msg *gmail.Message) MessageSummary {
	if msg == nil {
		return MessageSummary{}
	}
	return MessageSummary{
		ID:      msg.Id,
		Subject: HeaderValue(msg, "Subject"),
		From:    HeaderValue(msg, "From"),
		Date:    HeaderValue(msg, "Date"),
		Snippet: msg.Snippet,
	}
}
