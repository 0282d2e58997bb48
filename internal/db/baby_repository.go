package db

import (
	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

type BabyRepository struct {
	database *gorm.DB
}

func NewBabyRepository(database *gorm.DB) *BabyRepository {
	return &BabyRepository{database: database}
}

func (repo *BabyRepository) Create(baby *models.Baby) error {
	return repo.database.Omit("Owner", "Caregivers").Create(baby).Error
}

func (repo *BabyRepository) FindByID(babyID uint) (models.Baby, error) {
	var baby models.Baby
	err := repo.database.
		Preload("Owner").
		Preload("Caregivers", func(query *gorm.DB) *gorm.DB {
			return query.Order("baby_caregivers.id ASC")
		}).
		Preload("Caregivers.User").
		First(&baby, babyID).Error
	if err != nil {
		return models.Baby{}, err
	}
	return baby, nil
}

// ListForUser returns the babies the user owns or cares for, youngest first.
func (repo *BabyRepository) ListForUser(userID uint) ([]models.Baby, error) {
	babies := make([]models.Baby, 0)
	err := repo.database.
		Where("owner_id = ?", userID).
		Or("id IN (?)", repo.database.Model(&models.BabyCaregiver{}).Select("baby_id").Where("user_id = ?", userID)).
		Order("date_of_birth DESC, id DESC").
		Find(&babies).Error
	if err != nil {
		return nil, err
	}
	return babies, nil
}

func (repo *BabyRepository) UpdateOwner(babyID uint, ownerID uint) (int64, error) {
	result := repo.database.Model(&models.Baby{}).Where("id = ?", babyID).Update("owner_id", ownerID)
	return result.RowsAffected, result.Error
}
