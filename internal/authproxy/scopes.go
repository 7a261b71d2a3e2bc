package authproxy

import (
	"errors"
	"fmt"
)

// ScopeKey identifies the authorization requirement of a single action,
// e.g. "calendar" or "gmail.send".
type ScopeKey string

// Scope keys for every supported action.
const (
	ScopeCalendar  ScopeKey = "calendar"
	ScopeGmailList ScopeKey = "gmail.list"
	ScopeGmailRead ScopeKey = "gmail.read"
	ScopeGmailSend ScopeKey = "gmail.send"
)

// Google OAuth scope URIs used by the registry.
const (
	scopeCalendarURI      = "https://www.googleapis.com/auth/calendar"
	scopeGmailReadonlyURI = "https://www.googleapis.com/auth/gmail.readonly"
	scopeGmailSendURI     = "https://www.googleapis.com/auth/gmail.send"
)

// ErrUnknownScope is returned when no scope mapping exists for an action.
var ErrUnknownScope = errors.New("unknown service/action for scope resolution")

// ScopeGroup describes one entry of the authorization audit: a set of scopes
// that is checked and reported as a unit by `auth check` and `auth setup`.
type ScopeGroup struct {
	Key     string
	Name    string
	Scopes  []string
	Actions string
}

// Registry is the closed, static table mapping actions to OAuth scopes.
// It is built once at process start and never mutated afterwards.
type Registry struct {
	scopes map[ScopeKey][]string
	names  map[string]string
	all    []string
	groups []ScopeGroup
}

// NewRegistry builds the scope registry. The table is closed; an empty scope
// set for a registered key is a programmer error and panics at construction.
func NewRegistry() *Registry {
	r := &Registry{
		// Only the minimal scopes per action; the broad consent request is
		// derived from the union below.
		scopes: map[ScopeKey][]string{
			ScopeCalendar:  {scopeCalendarURI},
			ScopeGmailList: {scopeGmailReadonlyURI},
			ScopeGmailRead: {scopeGmailReadonlyURI},
			ScopeGmailSend: {scopeGmailSendURI},
		},
		names: map[string]string{
			string(ScopeCalendar):  "Google Calendar (read/write events)",
			string(ScopeGmailList): "Gmail (read emails)",
			string(ScopeGmailRead): "Gmail (read emails)",
			string(ScopeGmailSend): "Gmail (send emails)",
			scopeCalendarURI:       "Google Calendar (read/write events)",
			scopeGmailReadonlyURI:  "Gmail (read emails)",
			scopeGmailSendURI:      "Gmail (send emails)",
		},
		groups: []ScopeGroup{
			{
				Key:     "calendar",
				Name:    "Google Calendar (read/write events)",
				Scopes:  []string{scopeCalendarURI},
				Actions: "calendar list, calendar create, calendar delete",
			},
			{
				Key:     "gmail-read",
				Name:    "Gmail (read emails)",
				Scopes:  []string{scopeGmailReadonlyURI},
				Actions: "gmail list, gmail read",
			},
			{
				Key:     "gmail-send",
				Name:    "Gmail (send emails)",
				Scopes:  []string{scopeGmailSendURI},
				Actions: "gmail send",
			},
		},
	}

	// Deduplicated union of every scope, in stable first-occurrence order.
	seen := make(map[string]bool)
	for _, key := range []ScopeKey{ScopeCalendar, ScopeGmailList, ScopeGmailRead, ScopeGmailSend} {
		set := r.scopes[key]
		if len(set) == 0 {
			panic(fmt.Sprintf("scope registry: key %q has no scopes", key))
		}
		for _, s := range set {
			if !seen[s] {
				seen[s] = true
				r.all = append(r.all, s)
			}
		}
	}

	return r
}

// ScopesFor returns the minimal scope set required for the given action key.
func (r *Registry) ScopesFor(key ScopeKey) ([]string, error) {
	set, ok := r.scopes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScope, key)
	}
	out := make([]string, len(set))
	copy(out, set)
	return out, nil
}

// AllScopes returns the deduplicated union of every registered scope.
func (r *Registry) AllScopes() []string {
	out := make([]string, len(r.all))
	copy(out, r.all)
	return out
}

// DisplayName returns the human-readable name for a scope URI or scope key,
// falling back to echoing the raw value when none is registered.
func (r *Registry) DisplayName(scopeOrKey string) string {
	if name, ok := r.names[scopeOrKey]; ok {
		return name
	}
	return scopeOrKey
}

// Groups returns the audit groups used by auth check and auth setup.
func (r *Registry) Groups() []ScopeGroup {
	out := make([]ScopeGroup, len(r.groups))
	copy(out, r.groups)
	return out
}

// Group looks up an audit group by its key.
func (r *Registry) Group(key string) (ScopeGroup, bool) {
	for _, g := range r.groups {
		if g.Key == key {
			return g, true
		}
	}
	return ScopeGroup{}, false
}

// GroupKeys returns the audit group keys in registry order.
func (r *Registry) GroupKeys() []string {
	keys := make([]string, 0, len(r.groups))
	for _, g := range r.groups {
		keys = append(keys, g.Key)
	}
	return keys
}
