// Package common contains shared constants and sentinel errors used across
// passkeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// bearer token on outbound requests.
const AccessTokenHeaderName = "authorization"

// BearerPrefix precedes the token in the AccessTokenHeaderName value.
const BearerPrefix = "Bearer "
