package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrCreateUserFailed   = errors.New("create user failed")
)

type AuthUserRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
}

type AuthService struct {
	users   AuthUserRepository
	options serviceOptions
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

func NewAuthService(users AuthUserRepository, opts ...Option) *AuthService {
	return &AuthService{users: users, options: buildServiceOptions(opts)}
}

// CreateUser registers a new account. When a placeholder user created by a
// caregiver invitation already holds the e-mail, that user is activated in
// place so existing baby access carries over.
func (service *AuthService) CreateUser(input RegisterInput) (models.User, error) {
	email := NormalizeAuthEmail(input.Email)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	firstName, err := NormalizePersonName(input.FirstName)
	if err != nil {
		return models.User{}, err
	}
	lastName, err := NormalizePersonName(input.LastName)
	if err != nil {
		return models.User{}, err
	}
	phone, err := NormalizeOptionalPhone(input.Phone)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}

	existing, err := service.users.FindByNormalizedEmail(email)
	switch {
	case err == nil && existing.IsActivated():
		return models.User{}, ErrEmailAlreadyExists
	case err == nil:
		updates := map[string]any{
			"password_hash": passwordHash,
			"first_name":    firstName,
			"last_name":     lastName,
			"phone":         phone,
		}
		if err := service.users.UpdateByID(existing.ID, updates); err != nil {
			return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
		}
		existing.PasswordHash = passwordHash
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.Phone = phone
		service.options.logger.Info("placeholder user activated", "user_id", existing.ID)
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		CreatedAt:    service.options.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrCreateUserFailed, err)
	}
	return user, nil
}

// VerifyLogin checks credentials and returns the profile without the hash.
// Unknown e-mail and wrong password are indistinguishable to the caller.
func (service *AuthService) VerifyLogin(emailRaw string, password string) (*models.UserProfile, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || strings.TrimSpace(password) == "" {
		service.options.metrics.IncrementLoginFailures()
		return nil, ErrAuthCredentialsInvalid
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			service.options.metrics.IncrementLoginFailures()
			return nil, ErrAuthCredentialsInvalid
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		service.options.metrics.IncrementLoginFailures()
		return nil, ErrAuthCredentialsInvalid
	}

	profile := user.Profile()
	return &profile, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ResetPassword replaces the password hash of the user with the given e-mail.
// Placeholder users become able to log in.
func (service *AuthService) ResetPassword(emailRaw string, password string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdateByID(user.ID, map[string]any{"password_hash": passwordHash}); err != nil {
		return models.User{}, err
	}
	user.PasswordHash = passwordHash
	return user, nil
}
