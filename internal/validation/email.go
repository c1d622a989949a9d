package validation

import (
	"regexp"
	"strings"
)

const (
	ErrEmailMissingAt       = "Email must include an @ symbol"
	ErrEmailMissingUsername = "Email is missing a username before the @"
	ErrEmailMissingDomain   = "Email is missing a domain after the @"
	ErrEmailDomainNoDot     = "Email domain must include a dot (e.g. example.com)"
	ErrEmailTLDTooShort     = "Email domain ending is too short"
	ErrEmailInvalid         = "Please enter a valid email address"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// ValidateEmail runs the checks in order and reports the first failure.
// Empty input is valid.
func ValidateEmail(email string) Result {
	email = strings.TrimSpace(email)
	if email == "" {
		return ok()
	}
	if !strings.Contains(email, "@") {
		return fail(ErrEmailMissingAt)
	}
	// Everything after the first @ is the domain, even if it holds another @.
	local, domain, _ := strings.Cut(email, "@")
	if local == "" {
		return fail(ErrEmailMissingUsername)
	}
	if domain == "" {
		return fail(ErrEmailMissingDomain)
	}
	if !strings.Contains(domain, ".") {
		return fail(ErrEmailDomainNoDot)
	}
	if tld := domain[strings.LastIndex(domain, ".")+1:]; len(tld) < 2 {
		return fail(ErrEmailTLDTooShort)
	}
	if !emailPattern.MatchString(email) {
		return fail(ErrEmailInvalid)
	}
	return ok()
}

// MaskEmail keeps the first character of the username and the domain.
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(strings.TrimSpace(email), "@")
	if !found || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}
