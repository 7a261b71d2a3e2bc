package calendar

import (
	"fmt"
	"strings"
)

// RenderEvents formats a listing as bot-readable markdown. The from/to labels
// describe the queried window, e.g. "now" and "7 days".
func RenderEvents(events []EventSummary, fromLabel, toLabel string) string {
	if len(events) == 0 {
		return "No upcoming events found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Calendar Events (%s to %s)\n\n", fromLabel, toLabel)
	for _, event := range events {
		title := event.Summary
		if title == "" {
			title = "(No title)"
		}

		start := event.Start.Format("2006-01-02 15:04")
		if event.AllDay {
			start = event.Start.Format("2006-01-02")
		}

		line := fmt.Sprintf("- **%s** | %s", title, start)
		if event.Location != "" {
			line += " | " + event.Location
		}
		line += fmt.Sprintf(" | ID: `%s`", event.ID)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderCreated formats the confirmation for a newly created event.
func RenderCreated(event *EventSummary, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Event created: **%s**\n", title)
	fmt.Fprintf(&b, "- ID: `%s`\n", event.ID)
	if event.HTMLLink != "" {
		fmt.Fprintf(&b, "- Link: %s\n", event.HTMLLink)
	}
	return b.String()
}
