package db

import (
	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

type CaregiverRepository struct {
	database *gorm.DB
}

func NewCaregiverRepository(database *gorm.DB) *CaregiverRepository {
	return &CaregiverRepository{database: database}
}

func (repo *CaregiverRepository) Create(caregiver *models.BabyCaregiver) error {
	return repo.database.Omit("User").Create(caregiver).Error
}

func (repo *CaregiverRepository) Exists(babyID uint, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.BabyCaregiver{}).
		Where("baby_id = ? AND user_id = ?", babyID, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CaregiverRepository) Delete(babyID uint, userID uint) (int64, error) {
	result := repo.database.
		Where("baby_id = ? AND user_id = ?", babyID, userID).
		Delete(&models.BabyCaregiver{})
	return result.RowsAffected, result.Error
}

func (repo *CaregiverRepository) ListByBaby(babyID uint) ([]models.BabyCaregiver, error) {
	caregivers := make([]models.BabyCaregiver, 0)
	if err := repo.database.
		Preload("User").
		Where("baby_id = ?", babyID).
		Order("id ASC").
		Find(&caregivers).Error; err != nil {
		return nil, err
	}
	return caregivers, nil
}
