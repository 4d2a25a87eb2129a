// Package client is the CLI side of the passkeeper gRPC API.
//
// GRPCClient manages the connection, attaches the session token to every
// call as an "authorization: Bearer" header, applies a per-call deadline,
// and maps gRPC status codes back to sentinel errors that callers match
// with errors.Is: ErrUnavailable and ErrUnauthorized from this package, and
// the common.Err* values for domain failures (wrong master key, missing
// record, rate limiting, validation).
package client
