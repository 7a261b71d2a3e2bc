package authproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tg2app/google-skill/internal/logging"
)

// ErrConsentPending signals that a consent URL was rendered and the user must
// authorize out of band before retrying. It is an expected stop, not a
// failure; the command layer maps it to a success exit status.
var ErrConsentPending = errors.New("waiting for user consent")

// Authorizer wraps the token broker with the fast-path/broad-path policy.
type Authorizer struct {
	broker   TokenRequester
	registry *Registry
	out      io.Writer
	logger   *slog.Logger
}

// NewAuthorizer creates an authorizer that renders consent guidance to out.
func NewAuthorizer(broker TokenRequester, registry *Registry, out io.Writer, logger *slog.Logger) *Authorizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authorizer{
		broker:   broker,
		registry: registry,
		out:      out,
		logger:   logger,
	}
}

// Authorize obtains an access token for the action identified by key.
//
// The fast path asks for only the action's own scopes, which succeeds
// without any prompt in the common already-authorized case. When the proxy
// answers with a consent URL instead, the narrow URL is NOT shown: the proxy
// replaces the user's stored grant wholesale on every authorization, so a
// second request is made for the entire scope universe and that consent URL
// is rendered. ErrConsentPending is returned after rendering.
func (a *Authorizer) Authorize(ctx context.Context, userID int64, key ScopeKey) (string, error) {
	actionScopes, err := a.registry.ScopesFor(key)
	if err != nil {
		return "", err
	}

	fast, err := a.broker.RequestToken(ctx, userID, actionScopes)
	if err != nil {
		return "", err
	}

	switch fast.Kind {
	case KindToken:
		a.logger.Debug("fast path authorized", logging.Scope(string(key)))
		return fast.AccessToken, nil
	case KindError:
		return "", errors.New(fast.Message)
	}

	// Consent needed for this action's scope.
	fmt.Fprintf(a.out, "Google authorization required for: **%s**\n\n", a.registry.DisplayName(string(key)))

	broad, err := a.broker.RequestToken(ctx, userID, a.registry.AllScopes())
	if err != nil {
		return "", err
	}

	switch broad.Kind {
	case KindToken:
		// Everything already authorized; nothing to prompt for. Unreachable
		// when the fast path needed consent, but handled rather than assumed.
		return broad.AccessToken, nil
	case KindError:
		return "", errors.New(broad.Message)
	}

	consentURL := broad.AuthURL
	if consentURL == "" {
		consentURL = fast.AuthURL
	}
	a.renderConsent(consentURL, actionScopes)

	return "", ErrConsentPending
}

// renderConsent prints the consent URL and enumerates the full scope
// universe, marking the scopes the current action actually needs.
func (a *Authorizer) renderConsent(consentURL string, actionScopes []string) {
	required := make(map[string]bool, len(actionScopes))
	for _, s := range actionScopes {
		required[s] = true
	}

	fmt.Fprintln(a.out, "Please click the link below to connect your Google account:")
	fmt.Fprintln(a.out, "(You can select which permissions to grant on the Google consent screen)")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, consentURL)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Available permissions:")
	for _, scope := range a.registry.AllScopes() {
		marker := " "
		if required[scope] {
			marker = "→"
		}
		fmt.Fprintf(a.out, "  %s %s\n", marker, a.registry.DisplayName(scope))
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "After authorizing, please try the command again.")
}
