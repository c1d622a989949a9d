// Package validation checks and formats the contact fields entered in the
// dashboard. Failures are returned as data, never as errors.
package validation

// Result is the outcome of validating a single field.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func ok() Result {
	return Result{Valid: true}
}

func fail(msg string) Result {
	return Result{Valid: false, Error: msg}
}
