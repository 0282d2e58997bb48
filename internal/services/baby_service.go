package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cradle/internal/mail"
	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBabyNotFound        = errors.New("baby not found")
	ErrInvalidDateOfBirth  = errors.New("invalid date of birth")
	ErrInvalidGender       = errors.New("invalid gender")
	ErrCreateBabyFailed    = errors.New("create baby failed")
	ErrTransferOwnerFailed = errors.New("transfer owner failed")
)

const dateOfBirthLayout = "2006-01-02"

type BabyInput struct {
	FirstName        string
	LastName         string
	DateOfBirth      string
	Gender           string
	AdditionalParent *AdditionalParentInput
}

type AdditionalParentInput struct {
	Email     string
	FirstName string
	LastName  string
}

type BabyService struct {
	repos    CareRepositories
	transact CareTransactor
	options  serviceOptions
}

func NewBabyService(repos CareRepositories, transact CareTransactor, opts ...Option) *BabyService {
	return &BabyService{repos: repos, transact: transact, options: buildServiceOptions(opts)}
}

// CreateBaby stores the baby together with the owner's caregiver row and,
// when requested, a second parent. The second parent is found or created by
// e-mail and notified after the transaction commits.
func (service *BabyService) CreateBaby(ctx context.Context, ownerID uint, input BabyInput) (*models.Baby, error) {
	firstName, err := NormalizePersonName(input.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := NormalizePersonName(input.LastName)
	if err != nil {
		return nil, err
	}
	dateOfBirth, err := service.parseDateOfBirth(input.DateOfBirth)
	if err != nil {
		return nil, err
	}
	gender, err := normalizeGender(input.Gender)
	if err != nil {
		return nil, err
	}

	var parentEmail string
	var parentFirstName, parentLastName string
	if input.AdditionalParent != nil {
		parentEmail = NormalizeAuthEmail(input.AdditionalParent.Email)
		if parentEmail == "" {
			return nil, ErrInvalidEmail
		}
		parentFirstName = strings.TrimSpace(input.AdditionalParent.FirstName)
		parentLastName = strings.TrimSpace(input.AdditionalParent.LastName)
	}

	baby := models.Baby{
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
		OwnerID:     ownerID,
	}

	var additionalParent *models.User
	err = service.transact(func(tx CareRepositories) error {
		if err := tx.Babies.Create(&baby); err != nil {
			return err
		}
		ownerRow := models.BabyCaregiver{
			BabyID:       baby.ID,
			UserID:       ownerID,
			Relationship: models.RelationshipParent,
			Permissions:  models.OwnerPermissions(),
		}
		if err := tx.Caregivers.Create(&ownerRow); err != nil {
			return err
		}

		if parentEmail == "" {
			return nil
		}
		parent, err := findOrCreatePlaceholderUser(tx.Users, parentEmail, parentFirstName, parentLastName)
		if err != nil {
			return err
		}
		exists, err := tx.Caregivers.Exists(baby.ID, parent.ID)
		if err != nil || exists {
			return err
		}
		parentRow := models.BabyCaregiver{
			BabyID:       baby.ID,
			UserID:       parent.ID,
			Relationship: models.RelationshipParent,
			Permissions:  models.OwnerPermissions(),
		}
		if err := tx.Caregivers.Create(&parentRow); err != nil {
			return err
		}
		additionalParent = &parent
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateBabyFailed, err)
	}

	service.options.metrics.IncrementBabiesCreated()
	service.options.logger.Info("baby created", "baby_id", baby.ID, "owner_id", ownerID)

	if additionalParent != nil {
		service.notifyAdditionalParent(ctx, &baby, ownerID, *additionalParent)
	}

	created, err := service.repos.Babies.FindByID(baby.ID)
	if err != nil {
		return &baby, nil
	}
	return &created, nil
}

func (service *BabyService) GetBaby(babyID uint) (*models.Baby, error) {
	baby, err := service.repos.Babies.FindByID(babyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBabyNotFound
		}
		return nil, err
	}
	return &baby, nil
}

func (service *BabyService) GetUserBabies(userID uint) ([]models.Baby, error) {
	return service.repos.Babies.ListForUser(userID)
}

// AddBabyOwner reassigns ownership. Caregiver rows are left untouched.
func (service *BabyService) AddBabyOwner(babyID uint, userID uint) error {
	if _, err := service.repos.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrTransferOwnerFailed, err)
	}

	affected, err := service.repos.Babies.UpdateOwner(babyID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransferOwnerFailed, err)
	}
	if affected == 0 {
		return ErrBabyNotFound
	}
	service.options.logger.Info("baby owner changed", "baby_id", babyID, "owner_id", userID)
	return nil
}

func (service *BabyService) ListInvites(babyID uint) ([]models.ParentInvite, error) {
	return service.repos.Invites.ListByBaby(babyID)
}

func (service *BabyService) parseDateOfBirth(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateOfBirthLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDateOfBirth
	}
	today := service.options.now().UTC()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(todayDate) {
		return time.Time{}, ErrInvalidDateOfBirth
	}
	return parsed, nil
}

func (service *BabyService) notifyAdditionalParent(ctx context.Context, baby *models.Baby, ownerID uint, parent models.User) {
	inviterName := ""
	if owner, err := service.repos.Users.FindByID(ownerID); err == nil {
		inviterName = owner.DisplayName()
	}

	invitation := mail.Invitation{
		ToEmail:      parent.Email,
		ToName:       strings.TrimSpace(parent.FirstName + " " + parent.LastName),
		InviterName:  inviterName,
		BabyName:     baby.FullName(),
		Relationship: models.RelationshipParent,
		SignupURL:    signupURL(service.options.baseURL),
	}
	if err := service.options.mailer.SendInvitation(ctx, invitation); err != nil {
		service.options.logger.Warn("additional parent e-mail failed", "baby_id", baby.ID, "error", err)
	}
}

func normalizeGender(raw string) (*string, error) {
	gender := strings.ToLower(strings.TrimSpace(raw))
	if gender == "" {
		return nil, nil
	}
	if !models.IsKnownGender(gender) {
		return nil, ErrInvalidGender
	}
	return &gender, nil
}

// findOrCreatePlaceholderUser returns the user with the given e-mail, creating
// one without credentials when none exists.
func findOrCreatePlaceholderUser(users CareUserRepository, email string, firstName string, lastName string) (models.User, error) {
	existing, err := users.FindByNormalizedEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	user := models.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}
	if err := users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func signupURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/register"
}
