// Package authproxy obtains per-user Google OAuth tokens from the
// token-issuing proxy.
//
// The package holds the scope registry (which actions need which scopes),
// the token broker (one POST to the proxy per request, mapped to a tagged
// result), and the authorizer implementing the two-phase policy: check the
// action's own scope first, and when consent is needed request the entire
// scope universe so that a new authorization does not overwrite scopes the
// user granted earlier. The proxy replaces the stored grant wholesale on
// every authorization, so the broad request is the only way to keep
// authorization monotonic for the user.
package authproxy
