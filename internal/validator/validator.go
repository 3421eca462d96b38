package validator

import (
	"errors"
	"net/mail"
	"regexp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	nameRegex     = regexp.MustCompile(`^[\p{L} .'-]{2,64}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{6,19}$`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("Username is required.")
	}
	if len(username) < 4 {
		return errors.New("Username must be at least 4 characters.")
	}
	if len(username) > 32 {
		return errors.New("Username must be less than 32 characters.")
	}
	if first := username[0]; !(('A' <= first && first <= 'Z') || ('a' <= first && first <= 'z')) {
		return errors.New("Username must start with a letter.")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("Username can only contain letters, numbers, and underscores.")
	}
	return nil
}

func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("Invalid email address.")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters.")
	}
	if len(password) > 72 {
		return errors.New("Password must be less than 72 characters.")
	}
	if !upperRegex.MatchString(password) || !lowerRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return errors.New("Password must contain upper and lower case letters and a number.")
	}
	return nil
}

func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return errors.New("Name must be 2-64 letters.")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.New("Invalid phone number.")
	}
	return nil
}

// InRange reports whether val lies within [min, max].
func InRange(val, min, max float64) bool {
	return val >= min && val <= max
}

// LengthBetween reports whether the byte length of s lies within [min, max].
func LengthBetween(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// OneOf reports whether val is a member of allowed.
func OneOf(val string, allowed ...string) bool {
	for _, a := range allowed {
		if val == a {
			return true
		}
	}
	return false
}
