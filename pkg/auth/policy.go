package auth

import "strings"

// DefaultEmailDomain is used when no domain is configured.
const DefaultEmailDomain = "university.edu"

// NormalizeEmail is the single place emails are canonicalized before any
// lookup, insert or policy check (trim + lowercase). Signup and login must
// both go through it so that stray whitespace or casing at signup cannot
// lock a user out later.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailPolicy restricts signup to a single allowed email domain.
type EmailPolicy struct {
	domain string
}

// NewEmailPolicy returns a policy for the given domain. An empty domain
// falls back to DefaultEmailDomain.
func NewEmailPolicy(domain string) EmailPolicy {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return EmailPolicy{domain: domain}
}

// Domain returns the configured allowed domain.
func (p EmailPolicy) Domain() string { return p.domain }

// Allowed reports whether email belongs to the configured domain.
// Pure suffix check on the normalized address; no MX/DNS validation.
func (p EmailPolicy) Allowed(email string) bool {
	return strings.HasSuffix(NormalizeEmail(email), "@"+p.domain)
}
