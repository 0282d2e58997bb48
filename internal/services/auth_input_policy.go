package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrInvalidEmail           = errors.New("invalid email")
	ErrInvalidName            = errors.New("invalid name")
	ErrInvalidPhone           = errors.New("invalid phone")
)

const (
	maxPersonNameLength = 80
	maxPhoneLength      = 32
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// NormalizePersonName trims a first or last name and rejects blank or
// overlong values.
func NormalizePersonName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxPersonNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeOptionalPhone returns nil for a blank phone number.
func NormalizeOptionalPhone(raw string) (*string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(phone) > maxPhoneLength {
		return nil, ErrInvalidPhone
	}
	for _, char := range phone {
		if !strings.ContainsRune("0123456789+-() .", char) {
			return nil, ErrInvalidPhone
		}
	}
	return &phone, nil
}
