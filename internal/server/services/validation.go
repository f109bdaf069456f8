package services

import (
	"regexp"
	"strings"
)

// FieldError describes a single validation failure on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in a request so the client
// can fix them all in one round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation error: " + strings.Join(msgs, "; ")
}

// Deliberately loose: one @, no whitespace, a dot in the domain part.
// Real deliverability is the mail system's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

// validateRegistration checks the registration input and returns a
// *ValidationError listing all violations, or nil when the input is valid.
// name is expected to be trimmed and email normalized by the caller.
func validateRegistration(name, email, password string) *ValidationError {
	var fields []FieldError

	if name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}
	if !emailPattern.MatchString(email) {
		fields = append(fields, FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if len(password) < minPasswordLength {
		fields = append(fields, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// normalizeEmail lower-cases and trims an email address so it can serve as
// the unique login key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
