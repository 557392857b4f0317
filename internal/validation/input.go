package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4,8}$`)
)

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePIN checks the parent PIN is 4 to 8 digits
func ValidatePIN(pin string) error {
	if pin == "" {
		return ValidationError{Field: "pin", Message: "pin is required"}
	}
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "pin must be 4 to 8 digits"}
	}
	return nil
}
