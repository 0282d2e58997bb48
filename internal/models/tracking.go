package models

import "time"

const (
	EliminationWet   = "wet"
	EliminationDirty = "dirty"
	EliminationMixed = "mixed"

	FeedingBreast = "breast"
	FeedingBottle = "bottle"
	FeedingSolid  = "solid"

	FeedingSideLeft  = "left"
	FeedingSideRight = "right"

	SleepNap   = "nap"
	SleepNight = "night"
)

type Elimination struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BabyID    uint      `gorm:"not null;index" json:"babyId"`
	Type      string    `gorm:"not null" json:"type"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Weight    *float64  `json:"weight"`
	Location  *string   `json:"location"`
	Notes     *string   `json:"notes"`
	Success   bool      `gorm:"not null;default:true" json:"success"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Feeding struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	BabyID    uint       `gorm:"not null;index" json:"babyId"`
	Type      string     `gorm:"not null" json:"type"`
	StartTime time.Time  `gorm:"not null;index" json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Side      *string    `json:"side"`
	Amount    *float64   `json:"amount"`
	Food      *string    `json:"food"`
	Notes     *string    `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Sleep struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BabyID          uint       `gorm:"not null;index" json:"babyId"`
	Type            string     `gorm:"not null" json:"type"`
	StartTime       time.Time  `gorm:"not null;index" json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	How             *string    `json:"how"`
	WhereFellAsleep *string    `json:"whereFellAsleep"`
	WhereSlept      *string    `json:"whereSlept"`
	Quality         *int       `json:"quality"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Sleep) TableName() string {
	return "sleeps"
}

type RecentTrackingEvents struct {
	Eliminations  []Elimination `json:"eliminations"`
	Feedings      []Feeding     `json:"feedings"`
	SleepSessions []Sleep       `json:"sleepSessions"`
}
