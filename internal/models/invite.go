package models

import "time"

const InviteStatusPending = "PENDING"

type ParentInvite struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BabyID       uint      `gorm:"not null;index" json:"babyId"`
	Email        string    `gorm:"not null;index" json:"email"`
	SenderID     uint      `gorm:"not null" json:"senderId"`
	Relationship string    `gorm:"not null" json:"relationship"`
	FirstName    string    `gorm:"not null;default:''" json:"firstName"`
	LastName     string    `gorm:"not null;default:''" json:"lastName"`
	Token        string    `gorm:"uniqueIndex;not null" json:"-"`
	Status       string    `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
