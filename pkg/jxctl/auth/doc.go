// Package auth implements the interactive two-stage Jagex launcher
// authorization flow: a PKCE authorization-code hop through the account
// login page, followed by a consent hop that yields the id token traded
// for a durable game session. Redirect classification, CSRF state
// handling and the UI/worker bridge live here.
package auth
