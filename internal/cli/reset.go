package cli

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"github.com/terraincognita07/cradle/internal/models"
	"github.com/terraincognita07/cradle/internal/security"
	"github.com/terraincognita07/cradle/internal/services"
)

const temporaryPasswordLength = 12

var errPasswordConfirmationMismatch = errors.New("passwords do not match")

// PasswordResetter is satisfied by services.AuthService.
type PasswordResetter interface {
	ResetPassword(email string, password string) (models.User, error)
}

var readPassword = readSecret

// RunResetPasswordCommand sets a new password for the account with the given
// e-mail. On a terminal the operator is prompted twice without echo; an empty
// answer, or a non-interactive stdin, gets a generated temporary password.
func RunResetPasswordCommand(resetter PasswordResetter, email string, stdin *os.File, stdout io.Writer) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	password, generated, err := choosePassword(stdin, stdout)
	if err != nil {
		return err
	}

	user, err := resetter.ResetPassword(normalizedEmail, password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found: %w", normalizedEmail, err)
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(stdout, "Password reset for %s\n", user.Email)
	if generated {
		fmt.Fprintf(stdout, "Temporary password: %s\n", password)
		fmt.Fprintln(stdout, "Share it privately and ask the user to sign in.")
	}
	return nil
}

func choosePassword(stdin *os.File, stdout io.Writer) (string, bool, error) {
	fmt.Fprint(stdout, "New password (leave empty to generate): ")
	first, err := readPassword(stdin)
	fmt.Fprintln(stdout)
	if err != nil && !errors.Is(err, errNotTerminal) {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	if len(first) == 0 {
		password, genErr := generateTemporaryPassword(temporaryPasswordLength)
		if genErr != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", genErr)
		}
		return password, true, nil
	}

	fmt.Fprint(stdout, "Confirm password: ")
	second, err := readPassword(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", false, fmt.Errorf("read password confirmation: %w", err)
	}
	if string(first) != string(second) {
		return "", false, errPasswordConfirmationMismatch
	}
	if err := services.ValidatePasswordStrength(string(first)); err != nil {
		return "", false, err
	}
	return string(first), false, nil
}

// generateTemporaryPassword retries until the result satisfies the password
// policy, so the user can sign in with it directly.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for attempt := 0; attempt < 32; attempt++ {
		password, err := security.RandomString(length, security.PasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
	return "", errors.New("could not generate a password that satisfies the policy")
}
