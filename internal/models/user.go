package models

import (
	"strings"
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null;default:''"`
	FirstName    string  `gorm:"not null;default:''"`
	LastName     string  `gorm:"not null;default:''"`
	Phone        *string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

// UserProfile is the credential-free view of a User handed out after login.
type UserProfile struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
}

// IsActivated reports whether the account has credentials. Users created
// implicitly by a caregiver invitation carry an empty hash until they register.
func (user User) IsActivated() bool {
	return strings.TrimSpace(user.PasswordHash) != ""
}

func (user User) Profile() UserProfile {
	return UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
	}
}

func (user User) DisplayName() string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Email
	}
	return name
}
