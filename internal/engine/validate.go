package engine

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}

// ValidatePassword checks the signup password policy, reporting the first rule broken.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ValidationError{Field: "password", Message: "Password must be at least 8 characters long"}
	}
	var upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	if !upper {
		return ValidationError{Field: "password", Message: "Password must contain at least one uppercase letter"}
	}
	if !digit {
		return ValidationError{Field: "password", Message: "Password must contain at least one number"}
	}
	if !special {
		return ValidationError{Field: "password", Message: "Password must contain at least one special character"}
	}
	return nil
}

// SignupInput is the signup form. Password is checked for policy only and never stored.
type SignupInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// Validate applies the signup rules in order: email, password policy,
// confirmation, username length.
func (in SignupInput) Validate() error {
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	if in.Password != in.ConfirmPassword {
		return ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	if len([]rune(in.Username)) < MinUsernameLength {
		return ValidationError{Field: "username", Message: "Username must be at least 3 characters long"}
	}
	return nil
}

// NormalizeTitle trims a task title and rejects an empty one.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Message: "title is required"}
	}
	return t, nil
}
