// Package common holds constants and sentinel errors shared by the console
// and the backend. Match the errors with errors.Is.
package common

// AuthorizationHeader carries the raw access token on API requests.
// The token is sent as is, without a "Bearer" scheme.
const AuthorizationHeader = "Authorization"

// SessionKey is the key the console stores the access token under.
const SessionKey = "jwt"
