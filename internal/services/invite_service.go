package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/terraincognita07/cradle/internal/mail"
	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

var (
	ErrInviteSelf         = errors.New("cannot invite yourself")
	ErrCreateInviteFailed = errors.New("create invite failed")
)

type InviteInput struct {
	Email     string
	FirstName string
	LastName  string
}

type InviteService struct {
	repos   CareRepositories
	options serviceOptions
}

func NewInviteService(repos CareRepositories, opts ...Option) *InviteService {
	return &InviteService{repos: repos, options: buildServiceOptions(opts)}
}

func (service *InviteService) InviteNewParent(ctx context.Context, babyID uint, senderID uint, input InviteInput) (*models.ParentInvite, error) {
	return service.invite(ctx, babyID, senderID, models.RelationshipParent, input)
}

func (service *InviteService) InviteNewCaregiver(ctx context.Context, babyID uint, senderID uint, input InviteInput) (*models.ParentInvite, error) {
	return service.invite(ctx, babyID, senderID, models.RelationshipCaregiver, input)
}

// invite records a pending invitation. It never grants access by itself: no
// caregiver row is created until the invitation is converted.
func (service *InviteService) invite(ctx context.Context, babyID uint, senderID uint, relationship string, input InviteInput) (*models.ParentInvite, error) {
	email := NormalizeAuthEmail(input.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	baby, err := service.repos.Babies.FindByID(babyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBabyNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateInviteFailed, err)
	}
	sender, err := service.repos.Users.FindByID(senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateInviteFailed, err)
	}
	if strings.EqualFold(sender.Email, email) {
		return nil, ErrInviteSelf
	}

	existing, err := service.repos.Invites.FindPending(babyID, email, relationship)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrCreateInviteFailed, err)
	}

	invite := models.ParentInvite{
		BabyID:       babyID,
		Email:        email,
		SenderID:     senderID,
		Relationship: relationship,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Token:        uuid.NewString(),
		Status:       models.InviteStatusPending,
		CreatedAt:    service.options.now().UTC(),
	}
	if err := service.repos.Invites.Create(&invite); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateInviteFailed, err)
	}

	service.options.metrics.IncrementInvitesCreated(relationship)
	service.options.logger.Info("invite created", "baby_id", babyID, "relationship", relationship)

	invitation := mail.Invitation{
		ToEmail:      email,
		ToName:       strings.TrimSpace(invite.FirstName + " " + invite.LastName),
		InviterName:  sender.DisplayName(),
		BabyName:     baby.FullName(),
		Relationship: relationship,
		SignupURL:    signupURL(service.options.baseURL),
	}
	if err := service.options.mailer.SendInvitation(ctx, invitation); err != nil {
		service.options.logger.Warn("invitation e-mail failed", "invite_id", invite.ID, "error", err)
	}

	return &invite, nil
}
