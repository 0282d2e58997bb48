package services

import "github.com/terraincognita07/cradle/internal/models"

// CanAccessBaby reports whether the user owns the baby or appears among its
// caregivers. The baby must have its Caregivers loaded.
func CanAccessBaby(baby *models.Baby, userID uint) bool {
	if baby == nil || userID == 0 {
		return false
	}
	if baby.OwnerID == userID {
		return true
	}
	return FindCaregiver(baby, userID) != nil
}

func IsBabyOwner(baby *models.Baby, userID uint) bool {
	return baby != nil && userID != 0 && baby.OwnerID == userID
}

func FindCaregiver(baby *models.Baby, userID uint) *models.BabyCaregiver {
	if baby == nil {
		return nil
	}
	for index := range baby.Caregivers {
		if baby.Caregivers[index].UserID == userID {
			return &baby.Caregivers[index]
		}
	}
	return nil
}

// CanLogForBaby reports whether the user may record tracking events.
func CanLogForBaby(baby *models.Baby, userID uint) bool {
	if IsBabyOwner(baby, userID) {
		return true
	}
	caregiver := FindCaregiver(baby, userID)
	return caregiver != nil && caregiver.HasPermission(models.PermissionLog)
}
