package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	// DefaultListWindow is how far ahead ListEvents looks when no end date
	// is given.
	DefaultListWindow = 7 * 24 * time.Hour

	maxListResults = 50
)

// Client wraps the Google Calendar service for the primary calendar.
type Client struct {
	svc *calendar.Service
}

// NewClient creates a Calendar client authenticated with the given bearer
// token. The token comes from the authorization layer; there is no refresh.
func NewClient(ctx context.Context, accessToken string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListEvents lists events on the primary calendar between timeMin and timeMax.
func (c *Client) ListEvents(timeMin, timeMax time.Time) ([]EventSummary, error) {
	events, err := c.svc.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxListResults).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	return summaries, nil
}

// CreateEvent creates an event on the primary calendar. A zero End defaults
// to one hour after Start.
func (c *Client) CreateEvent(input EventInput) (*EventSummary, error) {
	end := input.End
	if end.IsZero() {
		end = input.Start.Add(time.Hour)
	}

	event := &calendar.Event{
		Summary:     input.Title,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}

	created, err := c.svc.Events.Insert("primary", event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// DeleteEvent deletes an event from the primary calendar by ID.
func (c *Client) DeleteEvent(eventID string) error {
	if err := c.svc.Events.Delete("primary", eventID).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
