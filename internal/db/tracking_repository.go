package db

import (
	"context"

	"github.com/terraincognita07/cradle/internal/models"
	"gorm.io/gorm"
)

type TrackingRepository struct {
	database *gorm.DB
}

func NewTrackingRepository(database *gorm.DB) *TrackingRepository {
	return &TrackingRepository{database: database}
}

func (repo *TrackingRepository) CreateElimination(entry *models.Elimination) error {
	return repo.database.Create(entry).Error
}

func (repo *TrackingRepository) CreateFeeding(entry *models.Feeding) error {
	return repo.database.Create(entry).Error
}

func (repo *TrackingRepository) CreateSleep(entry *models.Sleep) error {
	return repo.database.Create(entry).Error
}

func (repo *TrackingRepository) FindElimination(id uint) (models.Elimination, error) {
	var entry models.Elimination
	if err := repo.database.First(&entry, id).Error; err != nil {
		return models.Elimination{}, err
	}
	return entry, nil
}

func (repo *TrackingRepository) FindFeeding(id uint) (models.Feeding, error) {
	var entry models.Feeding
	if err := repo.database.First(&entry, id).Error; err != nil {
		return models.Feeding{}, err
	}
	return entry, nil
}

func (repo *TrackingRepository) FindSleep(id uint) (models.Sleep, error) {
	var entry models.Sleep
	if err := repo.database.First(&entry, id).Error; err != nil {
		return models.Sleep{}, err
	}
	return entry, nil
}

// Update methods take a column map so explicit nil values clear the column.
func (repo *TrackingRepository) UpdateElimination(id uint, updates map[string]any) (int64, error) {
	return repo.update(&models.Elimination{}, id, updates)
}

func (repo *TrackingRepository) UpdateFeeding(id uint, updates map[string]any) (int64, error) {
	return repo.update(&models.Feeding{}, id, updates)
}

func (repo *TrackingRepository) UpdateSleep(id uint, updates map[string]any) (int64, error) {
	return repo.update(&models.Sleep{}, id, updates)
}

func (repo *TrackingRepository) update(model any, id uint, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		var matched int64
		err := repo.database.Model(model).Where("id = ?", id).Count(&matched).Error
		return matched, err
	}
	result := repo.database.Model(model).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

func (repo *TrackingRepository) ListRecentEliminations(ctx context.Context, babyID uint, limit int) ([]models.Elimination, error) {
	entries := make([]models.Elimination, 0, limit)
	err := repo.database.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("eliminations.timestamp DESC, eliminations.id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *TrackingRepository) ListRecentFeedings(ctx context.Context, babyID uint, limit int) ([]models.Feeding, error) {
	entries := make([]models.Feeding, 0, limit)
	err := repo.database.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("start_time DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *TrackingRepository) ListRecentSleeps(ctx context.Context, babyID uint, limit int) ([]models.Sleep, error) {
	entries := make([]models.Sleep, 0, limit)
	err := repo.database.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("start_time DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
