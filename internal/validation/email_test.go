package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		valid    bool
		contains string
	}{
		{"empty is optional", "", true, ""},
		{"whitespace is optional", "  \t", true, ""},
		{"valid", "jane@example.com", true, ""},
		{"valid subdomain", "jane.doe+tag@mail.example.co", true, ""},
		{"missing at", "userexample.com", false, "@"},
		{"missing domain", "user@", false, "domain"},
		{"missing username", "@example.com", false, "username"},
		{"missing dot", "user@example", false, "dot"},
		{"short ending", "user@example.c", false, "too short"},
		{"double at falls through to pattern", "user@@example.com", false, "valid email"},
		{"space inside", "jane doe@example.com", false, "valid email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmail(tt.email)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.contains == "" {
				assert.Empty(t, res.Error)
				return
			}
			assert.Contains(t, res.Error, tt.contains)
		})
	}
}

func TestValidateEmailShortCircuits(t *testing.T) {
	// No username and no dot: the username check runs first.
	res := ValidateEmail("@example")
	assert.Equal(t, ErrEmailMissingUsername, res.Error)

	// Missing @ wins over every later problem.
	res = ValidateEmail("nodomain")
	assert.Equal(t, ErrEmailMissingAt, res.Error)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("invalid"))
}
