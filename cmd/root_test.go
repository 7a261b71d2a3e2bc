package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventTime(t *testing.T) {
	// RFC 3339 with zone.
	got, err := parseEventTime("2026-08-31T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), got)

	// Bare timestamp without zone is accepted as UTC.
	got, err = parseEventTime("2026-08-31T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), got)

	_, err = parseEventTime("next tuesday")
	assert.Error(t, err)
}

func TestResolveScopeFilter(t *testing.T) {
	scopes, err := resolveScopeFilter("calendar,gmail-send")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.googleapis.com/auth/calendar",
		"https://www.googleapis.com/auth/gmail.send",
	}, scopes)

	// Whitespace around keys is tolerated; duplicates collapse.
	scopes, err = resolveScopeFilter("gmail-read, gmail-read")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/gmail.readonly"}, scopes)

	_, err = resolveScopeFilter("calendar,tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope: tasks")
	assert.Contains(t, err.Error(), "calendar, gmail-read, gmail-send")
}

func TestNewBrokerRequiresIdentityFlags(t *testing.T) {
	origAPIBase, origUserID := apiBase, userIDFlag
	t.Cleanup(func() { apiBase, userIDFlag = origAPIBase, origUserID })

	apiBase, userIDFlag = "", ""
	_, _, err := newBroker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--api-base")

	apiBase, userIDFlag = "https://proxy.example.com", ""
	_, _, err = newBroker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user-id")

	apiBase, userIDFlag = "https://proxy.example.com", "not-a-number"
	_, _, err = newBroker()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be numeric")

	apiBase, userIDFlag = "https://proxy.example.com/", "42"
	broker, userID, err := newBroker()
	require.NoError(t, err)
	assert.NotNil(t, broker)
	assert.Equal(t, int64(42), userID)
}
