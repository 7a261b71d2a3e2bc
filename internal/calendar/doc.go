// Package calendar provides the Google Calendar actions of the skill.
//
// The client is built from a bearer token the authorization layer already
// obtained; no scope or consent logic lives here. Results are rendered as
// bot-readable markdown.
package calendar
