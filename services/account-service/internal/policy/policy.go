// Package policy implements the password-strength rules applied at
// registration and password reset: minimum length, not entirely numeric, not
// a commonly used password, and not too similar to the user's own identity
// fields.
package policy

import (
	"strings"
	"unicode"
)

const minSimilarityLength = 4

// commonPasswords is a short list of the most frequently leaked passwords.
// Matching is case-insensitive.
var commonPasswords = map[string]bool{
	"password":    true,
	"password1":   true,
	"password123": true,
	"passw0rd":    true,
	"123456":      true,
	"1234567":     true,
	"12345678":    true,
	"123456789":   true,
	"1234567890":  true,
	"qwerty":      true,
	"qwerty123":   true,
	"qwertyuiop":  true,
	"abc123":      true,
	"iloveyou":    true,
	"letmein":     true,
	"welcome":     true,
	"welcome1":    true,
	"admin":       true,
	"monkey":      true,
	"dragon":      true,
	"sunshine":    true,
	"princess":    true,
	"football":    true,
	"baseball":    true,
	"superman":    true,
	"trustno1":    true,
	"111111":      true,
	"000000":      true,
}

// ValidationError lists every rule a candidate password violated.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Policy validates candidate passwords.
type Policy struct {
	MinLength int
}

// New returns a Policy with the default minimum length of 8.
func New() *Policy {
	return &Policy{MinLength: 8}
}

// Validate checks the password against every rule and returns a
// *ValidationError describing all violations, or nil if the password is
// acceptable. The similar values are identity fields (names, username,
// email) the password must not resemble.
func (p *Policy) Validate(password string, similar ...string) error {
	var violations []string

	if len(password) < p.MinLength {
		violations = append(violations, "password must be at least 8 characters long")
	}

	if password != "" && isEntirelyNumeric(password) {
		violations = append(violations, "password cannot be entirely numeric")
	}

	if commonPasswords[strings.ToLower(password)] {
		violations = append(violations, "password is too common")
	}

	if field := similarField(password, similar); field != "" {
		violations = append(violations, "password is too similar to "+field)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	return nil
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// similarField reports the first identity value the password resembles.
// A password is considered similar when it contains the value, or the value
// contains it, ignoring case. Email values are also compared against their
// local part.
func similarField(password string, similar []string) string {
	lowered := strings.ToLower(password)

	for _, value := range similar {
		candidates := []string{value}
		if at := strings.IndexByte(value, '@'); at > 0 {
			candidates = append(candidates, value[:at])
		}

		for _, candidate := range candidates {
			candidate = strings.ToLower(strings.TrimSpace(candidate))
			if len(candidate) < minSimilarityLength {
				continue
			}
			if strings.Contains(lowered, candidate) || strings.Contains(candidate, lowered) {
				return candidate
			}
		}
	}

	return ""
}
