package helpers

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxEmailLength    = 254
	maxNameLength     = 150
	minPasswordLength = 8
	maxPasswordLength = 128
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if len(email) > maxEmailLength {
		return errors.New("must not exceed 254 characters")
	}
	if strings.ContainsFunc(email, unicode.IsSpace) {
		return errors.New("invalid email format")
	}
	atIndex := strings.LastIndex(email, "@")
	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return errors.New("invalid email format")
	}
	if strings.Contains(email[:atIndex], "@") {
		return errors.New("invalid email format")
	}
	domainPart := email[atIndex+1:]
	if !strings.Contains(domainPart, ".") || strings.HasPrefix(domainPart, ".") || strings.HasSuffix(domainPart, ".") {
		return errors.New("invalid email format")
	}
	return nil
}

// ValidateUsername accepts letters, digits and @ . + - _ up to 150 characters.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("is required")
	}
	if utf8.RuneCountInString(username) > maxNameLength {
		return errors.New("must not exceed 150 characters")
	}
	for _, char := range username {
		if !unicode.IsLetter(char) &&
			!unicode.IsDigit(char) &&
			!strings.ContainsRune("@.+-_", char) {
			return errors.New("can only contain letters, digits and @/./+/-/_ characters")
		}
	}
	return nil
}

func ValidateName(name string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return errors.New("must not exceed 150 characters")
	}
	for _, char := range name {
		if unicode.IsControl(char) {
			return errors.New("must not contain control characters")
		}
	}
	return nil
}

// ValidatePassword checks the password on its own and against the other identity
// attributes, which it must not contain.
func ValidatePassword(password string, attributes ...string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLength {
		return errors.New("must be at least 8 characters")
	}
	if length > maxPasswordLength {
		return errors.New("must not exceed 128 characters")
	}
	if len(password) > maxPasswordBytes {
		return errors.New("must not exceed 72 bytes")
	}
	allDigits := true
	charset := make(map[rune]bool)
	for _, char := range password {
		if unicode.IsSpace(char) {
			return errors.New("must not contain any whitespace")
		}
		if !unicode.IsDigit(char) {
			allDigits = false
		}
		charset[char] = true
	}
	if allDigits {
		return errors.New("must not be entirely numeric")
	}
	if len(charset) < 4 {
		return errors.New("uses too few unique characters")
	}
	lowered := strings.ToLower(password)
	for _, attr := range attributes {
		attr = strings.ToLower(attr)
		if at := strings.Index(attr, "@"); at > 0 {
			attr = attr[:at]
		}
		if len(attr) >= 3 && strings.Contains(lowered, attr) {
			return errors.New("is too similar to your personal information")
		}
	}
	return nil
}
