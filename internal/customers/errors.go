package customers

import "errors"

var (
	// ErrMissingOrgID is returned when a request has no org scope.
	ErrMissingOrgID = errors.New("org_id is required")

	// ErrInvalidName is returned when the name is blank.
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are missing.
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrInvalidPhone wraps the phone validation message.
	ErrInvalidPhone = errors.New("invalid phone")

	// ErrInvalidEmail wraps the email validation message.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrCustomerNotFound is returned when no customer matches the org and id.
	ErrCustomerNotFound = errors.New("customer not found")
)

// IsValidationError reports whether err came from request validation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingOrgID) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrMissingContact) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrInvalidEmail)
}
