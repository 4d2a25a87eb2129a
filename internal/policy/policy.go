// Package policy checks candidate account and master secrets against the
// password strength rules.
package policy

import "strings"

// MinLength is the shortest accepted secret, in characters.
const MinLength = 12

// Violation messages, in the order the rules are evaluated.
const (
	ViolationTooShort  = "password must be at least 12 characters long"
	ViolationUppercase = "password must contain at least one uppercase letter"
	ViolationLowercase = "password must contain at least one lowercase letter"
	ViolationDigit     = "password must contain at least one number"
	ViolationSpecial   = "password must contain at least one special character"
	ViolationCommon    = "password is too common, choose a stronger password"
)

// Denylist holds substrings that make a secret too guessable. Matching is
// case-insensitive.
var Denylist = []string{"password", "123456", "qwerty", "abc123", "password123"}

// Result is the outcome of Validate. Violations keeps rule order so callers
// can render stable messages.
type Result struct {
	Valid      bool
	Violations []string
}

// Validate runs every rule against candidate. It has no side effects.
func Validate(candidate string) Result {
	var violations []string

	if len([]rune(candidate)) < MinLength {
		violations = append(violations, ViolationTooShort)
	}

	var upper, lower, digit, special bool
	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	if !upper {
		violations = append(violations, ViolationUppercase)
	}
	if !lower {
		violations = append(violations, ViolationLowercase)
	}
	if !digit {
		violations = append(violations, ViolationDigit)
	}
	if !special {
		violations = append(violations, ViolationSpecial)
	}

	if containsCommon(candidate) {
		violations = append(violations, ViolationCommon)
	}

	return Result{Valid: len(violations) == 0, Violations: violations}
}

func containsCommon(candidate string) bool {
	lowered := strings.ToLower(candidate)
	for _, common := range Denylist {
		if strings.Contains(lowered, common) {
			return true
		}
	}
	return false
}
