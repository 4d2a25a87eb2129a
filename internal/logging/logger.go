// Package logging is the structured logger used by the server. Two
// backends implement Logger: SlogLogger over log/slog and ZerologLogger
// over rs/zerolog. New picks one from configuration.
package logging

import "context"

// Logger takes a message plus key/value pairs:
//
//	log.Info(ctx, "record created", "owner", ownerID, "record", id)
//
// Values logged under a secret key (see redact) are replaced before they
// reach the output.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
}
