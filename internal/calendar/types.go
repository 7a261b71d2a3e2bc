package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventInput represents the input for creating a calendar event.
type EventInput struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time // zero value defaults to Start + 1h
}

// EventSummary represents a simplified calendar event for listing.
type EventSummary struct {
	ID       string
	Summary  string
	Location string
	Start    time.Time
	AllDay   bool
	HTMLLink string
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:       event.Id,
		Summary:  event.Summary,
		Location: event.Location,
		HTMLLink: event.HtmlLink,
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				summary.Start = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				summary.Start = t
				summary.AllDay = true
			}
		}
	}

	return summary
}
