// Package google inspects Google API failures for authorization problems.
//
// A stale or insufficient grant (401, or 403 with an insufficient-permission
// message) is distinguished from an ordinary request error (400, other 403)
// so the caller can tell the user to re-authorize instead of surfacing a raw
// API error. Anything else is not classified and the caller proceeds with
// the response as a normal payload.
package google
