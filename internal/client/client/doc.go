// Package client is the transport layer of the exchange client.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the remote API operations used by the session
//     store and the CLI (login, register, profile, avatar, admin users).
//  2. HTTPClient, a JSON-over-HTTP implementation that attaches the
//     persisted bearer credential to every request and tags each request
//     with an X-Request-ID.
//
// # Error Handling
//
// Every failure is classified once, here:
//
//	401        -> *APIError{Kind: ErrUnauthorized}
//	403        -> *APIError{Kind: ErrForbidden}
//	>=500      -> *APIError{Kind: ErrServer}
//	other 4xx  -> *APIError{Kind: ErrApplication}
//	no answer  -> ErrUnavailable (network failure, timeout)
//
// Match with errors.Is. APIError.Message holds the server's "error" field.
//
// # Events
//
// Unauthorized, Forbidden, ServerError and Unreachable failures are also
// published to subscribers (see HTTPClient.Subscribe) so a single supervisor
// can tear down the session or show a notice, whichever operation issued the
// call. Application errors are only returned to the caller.
package client
