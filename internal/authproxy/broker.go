package authproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tg2app/google-skill/internal/httpjson"
	"github.com/tg2app/google-skill/internal/logging"
)

// DefaultBotID is the application identifier sent with every token request.
const DefaultBotID = 100001

const tokenEndpointPath = "/v1/oauth/get_access_token"

// Kind discriminates the three broker outcomes. Exactly one applies per call.
type Kind int

const (
	// KindToken means the user is authorized and AccessToken is usable.
	KindToken Kind = iota
	// KindConsent means the user must visit AuthURL before retrying.
	KindConsent
	// KindError means the proxy reported a failure described by Message.
	KindError
)

// Result is the outcome of a single token request.
type Result struct {
	Kind        Kind
	AccessToken string
	AuthURL     string
	Message     string
}

// TokenRequester is implemented by the broker; the authorizer and the auth
// commands depend on this interface so tests can substitute a fake.
type TokenRequester interface {
	RequestToken(ctx context.Context, userID int64, scopes []string) (Result, error)
}

// Broker requests access tokens from the proxy's token endpoint.
type Broker struct {
	client  *httpjson.Client
	apiBase string
	botID   int64
	logger  *slog.Logger
}

// NewBroker creates a broker for the proxy at apiBase.
func NewBroker(client *httpjson.Client, apiBase string, logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		client:  client,
		apiBase: apiBase,
		botID:   DefaultBotID,
		logger:  logger,
	}
}

type tokenRequest struct {
	UserID       int64    `json:"userId"`
	ProviderName string   `json:"providerName"`
	Scopes       []string `json:"scopes"`
	BotID        int64    `json:"tg2appBotId"`
}

// RequestToken issues one POST to the proxy and maps the reply to a Result.
// A non-nil error means the proxy was unreachable; callers treat that as
// fatal and never retry.
func (b *Broker) RequestToken(ctx context.Context, userID int64, scopes []string) (Result, error) {
	body := tokenRequest{
		UserID:       userID,
		ProviderName: "google",
		Scopes:       scopes,
		BotID:        b.botID,
	}

	res, err := b.client.Post(ctx, b.apiBase+tokenEndpointPath, nil, body)
	if err != nil {
		return Result{}, err
	}

	if !res.OK() {
		raw := string(res.Body)
		if res.Status == 500 {
			// The proxy fails this way when its stored refresh token is dead.
			return Result{
				Kind: KindError,
				Message: fmt.Sprintf("Google authorization may have been revoked or expired.\n"+
					"The backend failed to refresh the token. Please try re-authorizing.\n"+
					"\nTechnical details: HTTP %d - %s", res.Status, httpjson.Truncate(raw, 200)),
			}, nil
		}
		return Result{
			Kind:    KindError,
			Message: fmt.Sprintf("OAuth endpoint returned HTTP %d: %s", res.Status, httpjson.Truncate(raw, 500)),
		}, nil
	}

	var fields map[string]json.RawMessage
	if err := res.Decode(&fields); err != nil {
		return Result{Kind: KindError, Message: protocolViolation(res.Body)}, nil
	}

	// The proxy speaks protobuf JSON (camelCase) but older deployments used
	// snake_case; look up each logical field through an ordered candidate list.
	if token := stringField(fields, "accessToken", "access_token"); token != "" {
		b.logger.Debug("token issued",
			logging.Operation("request_token"),
			slog.String("token", logging.SanitizeToken(token)))
		return Result{Kind: KindToken, AccessToken: token}, nil
	}

	if authURL := stringField(fields, "authUrl", "auth_url"); authURL != "" {
		b.logger.Debug("consent required", logging.Operation("request_token"))
		return Result{Kind: KindConsent, AuthURL: authURL}, nil
	}

	// The proxy contract guarantees one of the two fields; absence of both is
	// a broken collaborator, not "not authorized".
	return Result{Kind: KindError, Message: protocolViolation(res.Body)}, nil
}

func protocolViolation(body []byte) string {
	return fmt.Sprintf("Google authorization may have been revoked. "+
		"Please ask an admin to clear the old token, then try again.\n"+
		"\nTechnical details: response had no accessToken or authUrl: %s",
		httpjson.Truncate(string(body), 300))
}

// stringField returns the first non-empty string value among the candidate
// keys, in order.
func stringField(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if s != "" {
			return s
		}
	}
	return ""
}
