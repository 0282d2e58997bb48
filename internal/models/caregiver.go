package models

import "time"

const (
	RelationshipParent    = "PARENT"
	RelationshipCaregiver = "CAREGIVER"
)

const (
	PermissionAll  = "all"
	PermissionView = "view"
	PermissionLog  = "log"
)

type BabyCaregiver struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BabyID       uint      `gorm:"not null;uniqueIndex:uidx_baby_caregiver" json:"babyId"`
	UserID       uint      `gorm:"not null;uniqueIndex:uidx_baby_caregiver;index" json:"userId"`
	Relationship string    `gorm:"not null" json:"relationship"`
	Permissions  []string  `gorm:"serializer:json" json:"permissions"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func OwnerPermissions() []string {
	return []string{PermissionAll}
}

func DefaultCaregiverPermissions() []string {
	return []string{PermissionView, PermissionLog}
}

func (caregiver BabyCaregiver) HasPermission(permission string) bool {
	for _, granted := range caregiver.Permissions {
		if granted == PermissionAll || granted == permission {
			return true
		}
	}
	return false
}

func IsKnownRelationship(value string) bool {
	return value == RelationshipParent || value == RelationshipCaregiver
}
