// Package cmd implements the google-skill command line interface.
//
// Commands are grouped by service (calendar, gmail, auth). Every service
// action resolves its scope key, obtains a bearer token through the
// authorization layer, performs the downstream call, and renders the result
// to stdout. Consent-required stops exit with status 0; classified errors
// exit with status 1.
package cmd
