package validation

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// ErrPhoneTooShort is reported when fewer than two characters remain after cleaning.
	ErrPhoneTooShort = "Phone number is too short"
	// ErrPhoneInvalid is reported for anything that is not an E.164 number.
	ErrPhoneInvalid = "Please enter a valid phone number (e.g. +1 555 123 4567)"
)

var e164Pattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// CleanPhone strips whitespace, hyphens, parentheses and dots. Every other
// character is kept so that validation can reject it.
func CleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '-', '(', ')', '.':
			return -1
		}
		return r
	}, phone)
}

// IsValidE164Phone reports whether phone is an E.164 number once formatting
// characters are removed.
func IsValidE164Phone(phone string) bool {
	return e164Pattern.MatchString(CleanPhone(phone))
}

// ValidatePhone treats an empty value as valid; callers that need the field
// must check for presence themselves.
func ValidatePhone(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return ok()
	}
	cleaned := CleanPhone(phone)
	if len(cleaned) < 2 {
		return fail(ErrPhoneTooShort)
	}
	if !e164Pattern.MatchString(cleaned) {
		return fail(ErrPhoneInvalid)
	}
	return ok()
}

// FormatPhoneForDisplay renders NANP numbers as +1 (AAA) PPP-LLLL: eleven
// digits starting with 1, or a bare ten digits without a leading +. Anything
// else is returned as entered with a leading +.
func FormatPhoneForDisplay(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return ""
	}
	cleaned := CleanPhone(trimmed)
	digits := strings.TrimPrefix(cleaned, "+")
	plus := len(digits) != len(cleaned)
	switch {
	case len(digits) == 11 && digits[0] == '1' && allDigits(digits):
		return nanp(digits[1:])
	case len(digits) == 10 && !plus && allDigits(digits):
		return nanp(digits)
	}
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}
	return "+" + trimmed
}

// FormatPhoneForAPI returns the canonical wire form: formatting removed and a
// leading +.
func FormatPhoneForAPI(phone string) string {
	cleaned := CleanPhone(phone)
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	return "+" + cleaned
}

// MaskPhone hides all but the last four digits for logging.
func MaskPhone(phone string) string {
	cleaned := strings.TrimPrefix(CleanPhone(phone), "+")
	if len(cleaned) <= 4 {
		return strings.Repeat("*", len(cleaned))
	}
	return strings.Repeat("*", len(cleaned)-4) + cleaned[len(cleaned)-4:]
}

func nanp(ten string) string {
	return "+1 (" + ten[0:3] + ") " + ten[3:6] + "-" + ten[6:]
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
