// ABOUTME: Local input validation for login and enrollment forms
// ABOUTME: Advisory only; the server remains authoritative

package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Credentials are the email and password submitted at login
type Credentials struct {
	Email    string
	Password string
}

// Validate checks that email looks like an address and password is present
func (c Credentials) Validate() error {
	fields := map[string]string{}
	if msg := checkEmail(c.Email); msg != "" {
		fields["email"] = msg
	}
	if c.Password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateEmail checks a single email field, for form inputs
func ValidateEmail(email string) error {
	if msg := checkEmail(email); msg != "" {
		return &ValidationError{Fields: map[string]string{"email": msg}}
	}
	return nil
}

// ValidateEnrollment checks the admin enrollment form
func ValidateEnrollment(name, email string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if msg := checkEmail(email); msg != "" {
		fields["email"] = msg
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if err := validate.Var(email, "email"); err != nil {
		return "email is not a valid address"
	}
	return ""
}
