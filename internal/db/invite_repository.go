package db

import (
	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

type InviteRepository struct {
	database *gorm.DB
}

func NewInviteRepository(database *gorm.DB) *InviteRepository {
	return &InviteRepository{database: database}
}

func (repo *InviteRepository) Create(invite *models.ParentInvite) error {
	return repo.database.Create(invite).Error
}

func (repo *InviteRepository) FindPending(babyID uint, email string, relationship string) (models.ParentInvite, error) {
	var invite models.ParentInvite
	err := repo.database.
		Where("baby_id = ? AND lower(email) = ? AND relationship = ? AND status = ?", babyID, email, relationship, models.InviteStatusPending).
		Order("id ASC").
		First(&invite).Error
	if err != nil {
		return models.ParentInvite{}, err
	}
	return invite, nil
}

func (repo *InviteRepository) ListByBaby(babyID uint) ([]models.ParentInvite, error) {
	invites := make([]models.ParentInvite, 0)
	if err := repo.database.
		Where("baby_id = ?", babyID).
		Order("created_at DESC, id DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}
