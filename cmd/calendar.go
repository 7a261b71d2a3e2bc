package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/googleapi"

	"github.com/tg2app/google-skill/internal/authproxy"
	"github.com/tg2app/google-skill/internal/calendar"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Google Calendar actions",
	}

	cmd.AddCommand(newCalendarListCmd())
	cmd.AddCommand(newCalendarCreateCmd())
	cmd.AddCommand(newCalendarDeleteCmd())
	return cmd
}

func newCalendarListCmd() *cobra.Command {
	var dateFrom, dateTo string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, consentPending, err := obtainToken(cmd, authproxy.ScopeCalendar)
			if err != nil || consentPending {
				return err
			}

			now := time.Now().UTC()
			timeMin := now
			fromLabel := "now"
			if dateFrom != "" {
				day, err := time.Parse("2006-01-02", dateFrom)
				if err != nil {
					return fmt.Errorf("--from must be YYYY-MM-DD, got %q", dateFrom)
				}
				timeMin = day
				fromLabel = dateFrom
			}

			timeMax := now.Add(calendar.DefaultListWindow)
			toLabel := "7 days"
			if dateTo != "" {
				day, err := time.Parse("2006-01-02", dateTo)
				if err != nil {
					return fmt.Errorf("--to must be YYYY-MM-DD, got %q", dateTo)
				}
				timeMax = day.Add(24*time.Hour - time.Second)
				toLabel = dateTo
			}

			client, err := calendar.NewClient(cmd.Context(), token)
			if err != nil {
				return err
			}

			events, err := client.ListEvents(timeMin, timeMax)
			if err != nil {
				return handleAPIError(cmd, err, authproxy.ScopeCalendar)
			}

			fmt.Fprint(cmd.OutOrStdout(), calendar.RenderEvents(events, fromLabel, toLabel))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFrom, "from", "", "start date (YYYY-MM-DD, default: now)")
	cmd.Flags().StringVar(&dateTo, "to", "", "end date (YYYY-MM-DD, default: 7 days from now)")
	return cmd
}

func newCalendarCreateCmd() *cobra.Command {
	var title, start, end, description, location string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a calendar event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || start == "" {
				return errors.New("--title and --start are required for calendar create")
			}

			startTime, err := parseEventTime(start)
			if err != nil {
				return fmt.Errorf("--start must be ISO 8601, got %q", start)
			}

			var endTime time.Time
			if end != "" {
				endTime, err = parseEventTime(end)
				if err != nil {
					return fmt.Errorf("--end must be ISO 8601, got %q", end)
				}
			}

			token, consentPending, err := obtainToken(cmd, authproxy.ScopeCalendar)
			if err != nil || consentPending {
				return err
			}

			client, err := calendar.NewClient(cmd.Context(), token)
			if err != nil {
				return err
			}

			created, err := client.CreateEvent(calendar.EventInput{
				Title:       title,
				Description: description,
				Location:    location,
				Start:       startTime,
				End:         endTime,
			})
			if err != nil {
				return handleAPIError(cmd, err, authproxy.ScopeCalendar)
			}

			fmt.Fprint(cmd.OutOrStdout(), calendar.RenderCreated(created, title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "event title (required)")
	cmd.Flags().StringVar(&start, "start", "", "event start in ISO 8601 (required)")
	cmd.Flags().StringVar(&end, "end", "", "event end in ISO 8601 (default: start + 1h)")
	cmd.Flags().StringVar(&description, "description", "", "event description")
	cmd.Flags().StringVar(&location, "location", "", "event location")
	return cmd
}

func newCalendarDeleteCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a calendar event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventID == "" {
				return errors.New("--event-id is required for calendar delete")
			}

			token, consentPending, err := obtainToken(cmd, authproxy.ScopeCalendar)
			if err != nil || consentPending {
				return err
			}

			client, err := calendar.NewClient(cmd.Context(), token)
			if err != nil {
				return err
			}

			if err := client.DeleteEvent(eventID); err != nil {
				var apiErr *googleapi.Error
				if errors.As(err, &apiErr) {
					switch {
					case apiErr.Code == 404:
						return fmt.Errorf("event `%s` not found", eventID)
					case apiErr.Code == 401 || apiErr.Code == 403:
						return errors.New("permission denied. Your Google Calendar authorization may need to be renewed")
					default:
						return fmt.Errorf("failed to delete event (HTTP %d)", apiErr.Code)
					}
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Event `%s` deleted successfully.\n", eventID)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "event-id", "", "ID of the event to delete (required)")
	return cmd
}

// parseEventTime accepts RFC 3339 or a bare local timestamp without zone
// (treated as UTC).
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
