package gmail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderListEmpty(t *testing.T) {
	assert.Equal(t, "No emails found.\n", RenderList(nil, false))
	assert.Equal(t, "No unread emails.\n", RenderList(nil, true))
}

func TestRenderList(t *testing.T) {
	messages := []MessageSummary{
		{
			ID:      "m1",
			Subject: "Standup notes",
			From:    "alice@example.com",
			Date:    "Mon, 31 Aug 2026",
			Snippet: "Here are the notes",
		},
		{
			ID:      "m2",
			Snippet: strings.Repeat("long ", 50),
		},
	}

	out := RenderList(messages, false)
	assert.Contains(t, out, "## Recent emails (showing 2)")
	assert.Contains(t, out, "- **Standup notes**")
	assert.Contains(t, out, "From: alice@example.com | Mon, 31 Aug 2026")
	assert.Contains(t, out, "ID: `m1`")

	// Missing headers get placeholders; long snippets are truncated.
	assert.Contains(t, out, "- **(No subject)**")
	assert.Contains(t, out, "From: Unknown")
	assert.NotContains(t, out, strings.Repeat("long ", 50))

	unreadOut := RenderList(messages[:1], true)
	assert.Contains(t, unreadOut, "## Unread emails (showing 1)")
}

func TestRenderMessage(t *testing.T) {
	msg := &Message{
		ID:      "m1",
		Subject: "Hello",
		From:    "bob@example.com",
		To:      "me@example.com",
		Date:    "Mon, 31 Aug 2026",
		Body:    "Full body here",
		Snippet: "snippet",
	}

	out := RenderMessage(msg)
	assert.Contains(t, out, "## Hello")
	assert.Contains(t, out, "- **From:** bob@example.com")
	assert.Contains(t, out, "- **To:** me@example.com")
	assert.Contains(t, out, "Full body here")
	assert.NotContains(t, out, "snippet")
}

func TestRenderMessageFallsBackToSnippet(t *testing.T) {
	out := RenderMessage(&Message{Subject: "x", Snippet: "only a snippet"})
	assert.Contains(t, out, "only a snippet")

	out = RenderMessage(&Message{Subject: "x"})
	assert.Contains(t, out, "(No content)")
}

func TestRenderSent(t *testing.T) {
	out := RenderSent("msg-9", "carol@example.com", "Hi there")
	assert.Contains(t, out, "Email sent successfully.")
	assert.Contains(t, out, "- To: carol@example.com")
	assert.Contains(t, out, "- Subject: Hi there")
	assert.Contains(t, out, "- Message ID: `msg-9`")
}
