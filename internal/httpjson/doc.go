// Package httpjson is a minimal JSON-over-HTTP client.
//
// It separates the two failure modes the rest of the application cares
// about: a transport-level failure (connection refused, timeout) is returned
// as an error and treated as fatal by callers, while any HTTP response,
// including 4xx and 5xx, is returned as a Response value for the caller to
// interpret. No retries are performed at this layer or anywhere above it.
package httpjson
