package models

import (
	"strings"
	"time"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Baby struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"not null" json:"firstName"`
	LastName    string    `gorm:"not null" json:"lastName"`
	DateOfBirth time.Time `gorm:"type:date;not null;index" json:"dateOfBirth"`
	Gender      *string   `json:"gender,omitempty"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner      *User           `gorm:"foreignKey:OwnerID" json:"-"`
	Caregivers []BabyCaregiver `gorm:"foreignKey:BabyID" json:"caregivers,omitempty"`
}

func (baby Baby) FullName() string {
	return strings.TrimSpace(baby.FirstName + " " + baby.LastName)
}

func IsKnownGender(value string) bool {
	switch value {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}
