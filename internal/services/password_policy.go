package services

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var ErrWeakPassword = errors.New("weak password")

const (
	// PasswordHashCost matches the bcrypt cost of existing account hashes.
	PasswordHashCost  = bcrypt.DefaultCost
	minPasswordLength = 8
)

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash. Placeholder users
// have an empty hash and never match.
func VerifyPassword(plaintext string, hash string) bool {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// ValidatePasswordStrength requires at least minPasswordLength characters
// mixing upper case, lower case and digits.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrWeakPassword
	}

	const (
		upper = 1 << iota
		lower
		digit
	)
	var classes int
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			classes |= upper
		case unicode.IsLower(char):
			classes |= lower
		case unicode.IsDigit(char):
			classes |= digit
		}
	}
	if classes != upper|lower|digit {
		return ErrWeakPassword
	}
	return nil
}
