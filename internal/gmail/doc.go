// Package gmail provides the Gmail actions of the skill: listing recent
// messages, reading a single message, and sending plain-text email.
//
// The client is built from a bearer token the authorization layer already
// obtained; no scope or consent logic lives here.
package gmail
