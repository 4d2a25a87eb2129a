package logging

import (
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

var secretKeys = map[string]bool{
	"password":      true,
	"master_key":    true,
	"token":         true,
	"secret_key":    true,
	"authorization": true,
}

// redact returns args with the values of secret keys masked. args itself is
// left untouched.
func redact(args []any) []any {
	var out []any
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || !secretKeys[strings.ToLower(key)] {
			continue
		}
		if out == nil {
			out = slices.Clone(args)
		}
		out[i+1] = redacted
	}
	if out == nil {
		return args
	}
	return out
}
