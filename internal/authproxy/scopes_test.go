package authproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryScopesFor(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		key  ScopeKey
		want []string
	}{
		{ScopeCalendar, []string{"https://www.googleapis.com/auth/calendar"}},
		{ScopeGmailList, []string{"https://www.googleapis.com/auth/gmail.readonly"}},
		{ScopeGmailRead, []string{"https://www.googleapis.com/auth/gmail.readonly"}},
		{ScopeGmailSend, []string{"https://www.googleapis.com/auth/gmail.send"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			scopes, err := registry.ScopesFor(tt.key)
			require.NoError(t, err)
			assert.NotEmpty(t, scopes)
			assert.Equal(t, tt.want, scopes)
		})
	}
}

func TestRegistryScopesForUnknownKey(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ScopesFor("drive")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestRegistryAllScopesIsSupersetOfEveryAction(t *testing.T) {
	registry := NewRegistry()

	all := make(map[string]bool)
	for _, s := range registry.AllScopes() {
		all[s] = true
	}

	for _, key := range []ScopeKey{ScopeCalendar, ScopeGmailList, ScopeGmailRead, ScopeGmailSend} {
		scopes, err := registry.ScopesFor(key)
		require.NoError(t, err)
		for _, s := range scopes {
			assert.True(t, all[s], "AllScopes is missing %s required by %s", s, key)
		}
	}
}

func TestRegistryAllScopesDeduplicated(t *testing.T) {
	registry := NewRegistry()

	seen := make(map[string]bool)
	for _, s := range registry.AllScopes() {
		assert.False(t, seen[s], "duplicate scope %s", s)
		seen[s] = true
	}

	// calendar + gmail.readonly + gmail.send; the two read keys share a URI.
	assert.Len(t, registry.AllScopes(), 3)
}

func TestRegistryDisplayName(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, "Google Calendar (read/write events)", registry.DisplayName("calendar"))
	assert.Equal(t, "Gmail (send emails)", registry.DisplayName("https://www.googleapis.com/auth/gmail.send"))

	// Unregistered values are echoed back, never an error.
	assert.Equal(t, "some.unknown.scope", registry.DisplayName("some.unknown.scope"))
}

func TestRegistryGroupsCoverEveryScope(t *testing.T) {
	registry := NewRegistry()

	covered := make(map[string]bool)
	for _, group := range registry.Groups() {
		assert.NotEmpty(t, group.Scopes, "group %s has no scopes", group.Key)
		assert.NotEmpty(t, group.Name)
		assert.NotEmpty(t, group.Actions)
		for _, s := range group.Scopes {
			covered[s] = true
		}
	}

	for _, s := range registry.AllScopes() {
		assert.True(t, covered[s], "scope %s not covered by any audit group", s)
	}
}

func TestRegistryGroupLookup(t *testing.T) {
	registry := NewRegistry()

	group, ok := registry.Group("gmail-send")
	require.True(t, ok)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/gmail.send"}, group.Scopes)

	_, ok = registry.Group("tasks")
	assert.False(t, ok)

	assert.Equal(t, []string{"calendar", "gmail-read", "gmail-send"}, registry.GroupKeys())
}

func TestRegistryReturnsCopies(t *testing.T) {
	registry := NewRegistry()

	all := registry.AllScopes()
	all[0] = "mutated"
	assert.NotEqual(t, "mutated", registry.AllScopes()[0])

	scopes, err := registry.ScopesFor(ScopeCalendar)
	require.NoError(t, err)
	scopes[0] = "mutated"
	fresh, err := registry.ScopesFor(ScopeCalendar)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", fresh[0])
}
