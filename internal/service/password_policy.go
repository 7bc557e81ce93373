package service

import (
	"strings"
	"unicode"
)

// PasswordPolicy checks registration passwords against the account password
// rules before any hashing or persistence work happens.
type PasswordPolicy struct {
	MinLength int
}

// NewPasswordPolicy creates a policy with the default minimum length.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{MinLength: 8}
}

// Check returns one message per violated rule, or nil when the password
// satisfies the policy.
func (p *PasswordPolicy) Check(password string) []string {
	var failures []string

	if len(password) < p.MinLength {
		failures = append(failures, "password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		failures = append(failures, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		failures = append(failures, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		failures = append(failures, "password must contain at least one digit")
	}
	if !hasSpecial {
		failures = append(failures, "password must contain at least one special character")
	}

	return failures
}

// CheckError joins rule violations into a single message, or returns an empty
// string when the password is acceptable.
func (p *PasswordPolicy) CheckError(password string) string {
	failures := p.Check(password)
	if len(failures) == 0 {
		return ""
	}
	return strings.Join(failures, "; ")
}
