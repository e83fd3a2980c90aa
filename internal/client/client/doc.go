// Package client talks to the Resume Book API over HTTP/JSON and bootstraps
// the console's local SQLite store.
//
// # Endpoints
//
//   - POST {API_BASE}/registration/filter lists registrations with a résumé.
//   - GET {API_BASE}/s3/download/user/{id,id,...} resolves presigned
//     download URLs. The answer is decoded into models.DownloadLinks.
//   - GET <presigned url> fetches a file; no credentials are attached.
//
// Every API call takes the caller's *session.Session. The raw token goes
// into the Authorization header.
//
// # Errors
//
// Transport failures and 5xx answers map to ErrUnavailable, 401/403 to
// ErrUnauthorized. Both arrive wrapped in *StatusError when the server
// answered, so errors.Is and errors.As both work.
package client
