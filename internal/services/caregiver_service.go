package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCaregiverAlreadyExists = errors.New("caregiver already exists")
	ErrCaregiverNotFound      = errors.New("caregiver not found")
	ErrInvalidRelationship    = errors.New("invalid relationship")
	ErrInvalidPermission      = errors.New("invalid permission")
	ErrAddCaregiverFailed     = errors.New("add caregiver failed")
	ErrRemoveCaregiverFailed  = errors.New("remove caregiver failed")
)

type CaregiverInput struct {
	Email        string
	FirstName    string
	LastName     string
	Relationship string
}

type CaregiverService struct {
	repos    CareRepositories
	transact CareTransactor
	options  serviceOptions
}

func NewCaregiverService(repos CareRepositories, transact CareTransactor, opts ...Option) *CaregiverService {
	return &CaregiverService{repos: repos, transact: transact, options: buildServiceOptions(opts)}
}

// AddCaregiver grants the user access to the baby. Without explicit
// permissions the caregiver may view and log.
func (service *CaregiverService) AddCaregiver(babyID uint, userID uint, relationship string, permissions ...string) (*models.BabyCaregiver, error) {
	caregiver, err := buildCaregiverRow(babyID, userID, relationship, permissions)
	if err != nil {
		return nil, err
	}
	if err := createCaregiverRow(service.repos.Caregivers, &caregiver); err != nil {
		return nil, err
	}
	service.options.logger.Info("caregiver added", "baby_id", babyID, "user_id", userID)
	return &caregiver, nil
}

// AddCaregiverByEmail grants access to the user with the given e-mail,
// creating a user without credentials when none exists.
func (service *CaregiverService) AddCaregiverByEmail(babyID uint, input CaregiverInput) (*models.BabyCaregiver, error) {
	email := NormalizeAuthEmail(input.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	relationship := strings.ToUpper(strings.TrimSpace(input.Relationship))
	if relationship == "" {
		relationship = models.RelationshipCaregiver
	}

	var caregiver models.BabyCaregiver
	err := service.transact(func(tx CareRepositories) error {
		user, err := findOrCreatePlaceholderUser(tx.Users, email, strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAddCaregiverFailed, err)
		}
		caregiver, err = buildCaregiverRow(babyID, user.ID, relationship, nil)
		if err != nil {
			return err
		}
		return createCaregiverRow(tx.Caregivers, &caregiver)
	})
	if err != nil {
		return nil, err
	}

	service.options.logger.Info("caregiver added by email", "baby_id", babyID, "user_id", caregiver.UserID)
	return &caregiver, nil
}

// RemoveCaregiver revokes access for the pair. It does not protect the
// owner's own row; callers decide who may remove whom.
func (service *CaregiverService) RemoveCaregiver(babyID uint, userID uint) error {
	affected, err := service.repos.Caregivers.Delete(babyID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoveCaregiverFailed, err)
	}
	if affected == 0 {
		return ErrCaregiverNotFound
	}
	service.options.logger.Info("caregiver removed", "baby_id", babyID, "user_id", userID)
	return nil
}

func buildCaregiverRow(babyID uint, userID uint, relationship string, permissions []string) (models.BabyCaregiver, error) {
	relationship = strings.ToUpper(strings.TrimSpace(relationship))
	if !models.IsKnownRelationship(relationship) {
		return models.BabyCaregiver{}, ErrInvalidRelationship
	}
	if len(permissions) == 0 {
		permissions = models.DefaultCaregiverPermissions()
	}
	for _, permission := range permissions {
		switch permission {
		case models.PermissionAll, models.PermissionView, models.PermissionLog:
		default:
			return models.BabyCaregiver{}, ErrInvalidPermission
		}
	}

	return models.BabyCaregiver{
		BabyID:       babyID,
		UserID:       userID,
		Relationship: relationship,
		Permissions:  append([]string(nil), permissions...),
	}, nil
}

func createCaregiverRow(caregivers CaregiverRepository, caregiver *models.BabyCaregiver) error {
	exists, err := caregivers.Exists(caregiver.BabyID, caregiver.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAddCaregiverFailed, err)
	}
	if exists {
		return ErrCaregiverAlreadyExists
	}
	if err := caregivers.Create(caregiver); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCaregiverAlreadyExists
		}
		return fmt.Errorf("%w: %v", ErrAddCaregiverFailed, err)
	}
	return nil
}
