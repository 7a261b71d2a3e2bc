package gmail

import (
	"fmt"
	"strings"
)

const snippetPreviewLen = 120

// RenderList formats a mailbox listing as bot-readable markdown.
func RenderList(messages []MessageSummary, unread bool) string {
	if len(messages) == 0 {
		if unread {
			return "No unread emails.\n"
		}
		return "No emails found.\n"
	}

	label := "Recent emails"
	if unread {
		label = "Unread emails"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s (showing %d)\n\n", label, len(messages))
	for _, msg := range messages {
		subject := msg.Subject
		if subject == "" {
			subject = "(No subject)"
		}
		from := msg.From
		if from == "" {
			from = "Unknown"
		}

		fmt.Fprintf(&b, "- **%s**\n", subject)
		fmt.Fprintf(&b, "  From: %s | %s\n", from, msg.Date)
		fmt.Fprintf(&b, "  %s...\n", truncateRunes(msg.Snippet, snippetPreviewLen))
		fmt.Fprintf(&b, "  ID: `%s`\n\n", msg.ID)
	}
	return b.String()
}

// RenderMessage formats a single message as bot-readable markdown.
func RenderMessage(msg *Message) string {
	subject := msg.Subject
	if subject == "" {
		subject = "(No subject)"
	}
	from := msg.From
	if from == "" {
		from = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", subject)
	fmt.Fprintf(&b, "- **From:** %s\n", from)
	fmt.Fprintf(&b, "- **To:** %s\n", msg.To)
	fmt.Fprintf(&b, "- **Date:** %s\n\n", msg.Date)

	switch {
	case msg.Body != "":
		b.WriteString(msg.Body)
		b.WriteString("\n")
	case msg.Snippet != "":
		b.WriteString(msg.Snippet)
		b.WriteString("\n")
	default:
		b.WriteString("(No content)\n")
	}
	return b.String()
}

// RenderSent formats the confirmation for a sent email.
func RenderSent(messageID, to, subject string) string {
	var b strings.Builder
	b.WriteString("Email sent successfully.\n")
	fmt.Fprintf(&b, "- To: %s\n", to)
	fmt.Fprintf(&b, "- Subject: %s\n", subject)
	fmt.Fprintf(&b, "- Message ID: `%s`\n", messageID)
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
