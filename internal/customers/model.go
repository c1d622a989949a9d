package customers

import (
	"fmt"
	"strings"
	"time"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/validation"
)

// Customer is a person a business sends reminders to.
type Customer struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCustomerRequest represents the request body for creating a customer.
type CreateCustomerRequest struct {
	OrgID string `json:"-"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// Validate checks the request. Phone and email are optional individually but
// at least one is required, and whichever is present must be valid.
func (r *CreateCustomerRequest) Validate() error {
	if strings.TrimSpace(r.OrgID) == "" {
		return ErrMissingOrgID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Phone) == "" && strings.TrimSpace(r.Email) == "" {
		return ErrMissingContact
	}
	if res := validation.ValidatePhone(r.Phone); !res.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidPhone, res.Error)
	}
	if res := validation.ValidateEmail(r.Email); !res.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, res.Error)
	}
	return nil
}

// normalize trims fields and converts the phone to API form. Call after Validate.
func (r *CreateCustomerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Phone = validation.FormatPhoneForAPI(r.Phone)
}

// ListFilter pages through an org's customers.
type ListFilter struct {
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 || f.Limit > MaxListLimit {
		f.Limit = DefaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
