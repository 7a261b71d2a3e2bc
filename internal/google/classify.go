package google

import (
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// Failure is a classified Google API error.
type Failure struct {
	Code    int
	Message string

	// Stale marks a revoked, expired, or insufficient grant: the user must
	// re-authorize by re-running the same command.
	Stale bool
}

// Classify inspects an error returned by a Google API client. It returns nil
// when the error is not a Google API error or carries a code outside the
// classified set.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return nil
	}
	return classify(apiErr.Code, apiErr.Message)
}

// ClassifyResponse inspects a raw JSON response body for an embedded
// {"error": {"code": ..., "message": ...}} object.
func ClassifyResponse(body []byte) *Failure {
	var payload struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		return nil
	}
	return classify(payload.Error.Code, payload.Error.Message)
}

func classify(code int, message string) *Failure {
	switch {
	case code == 401 || (code == 403 && strings.Contains(strings.ToLower(message), "insufficient")):
		return &Failure{Code: code, Message: message, Stale: true}
	case code == 403 || code == 400:
		return &Failure{Code: code, Message: message}
	}
	return nil
}
