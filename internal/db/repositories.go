package db

import "gorm.io/gorm"

type Repositories struct {
	database *gorm.DB

	Users      *UserRepository
	Babies     *BabyRepository
	Caregivers *CaregiverRepository
	Invites    *InviteRepository
	Tracking   *TrackingRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:   database,
		Users:      NewUserRepository(database),
		Babies:     NewBabyRepository(database),
		Caregivers: NewCaregiverRepository(database),
		Invites:    NewInviteRepository(database),
		Tracking:   NewTrackingRepository(database),
	}
}

// Transact runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (repos *Repositories) Transact(fn func(*Repositories) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
