package services

import "github.com/terraincognita07/cradle/internal/models"

type BabyRepository interface {
	Create(baby *models.Baby) error
	FindByID(babyID uint) (models.Baby, error)
	ListForUser(userID uint) ([]models.Baby, error)
	UpdateOwner(babyID uint, ownerID uint) (int64, error)
}

type CaregiverRepository interface {
	Create(caregiver *models.BabyCaregiver) error
	Exists(babyID uint, userID uint) (bool, error)
	Delete(babyID uint, userID uint) (int64, error)
	ListByBaby(babyID uint) ([]models.BabyCaregiver, error)
}

type InviteRepository interface {
	Create(invite *models.ParentInvite) error
	FindPending(babyID uint, email string, relationship string) (models.ParentInvite, error)
	ListByBaby(babyID uint) ([]models.ParentInvite, error)
}

type CareUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	Create(user *models.User) error
}

// CareRepositories groups the stores touched by baby, caregiver and invite
// workflows.
type CareRepositories struct {
	Users      CareUserRepository
	Babies     BabyRepository
	Caregivers CaregiverRepository
	Invites    InviteRepository
}

// CareTransactor runs fn with CareRepositories bound to one transaction.
type CareTransactor func(fn func(CareRepositories) error) error
